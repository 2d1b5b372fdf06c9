package model

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validMemberPayload() MemberPayload {
	return MemberPayload{
		FirstName:         "Jane",
		LastName:          "Doe",
		Email:             "jane.doe@example.com",
		Phone:             "+15551234567",
		DateOfBirth:       "1990-04-12",
		MembershipDate:    "2024-01-15",
		MembershipExpiry:  "2030-01-15",
		MembershipStatus:  "active",
		MaxBooksAllowed:   5,
		MaxRenewalAllowed: 2,
	}
}

func TestMemberPayloadValidate(t *testing.T) {
	t.Run("valid payload", func(t *testing.T) {
		assert.Empty(t, validMemberPayload().Validate())
	})

	t.Run("missing required fields accumulate in order", func(t *testing.T) {
		p := MemberPayload{MaxBooksAllowed: 5, MaxRenewalAllowed: 2}
		errs := p.Validate()
		require.Len(t, errs, 6)
		assert.Equal(t, "First name is required", errs[0])
		assert.Equal(t, "Last name is required", errs[1])
		assert.Equal(t, "Email is required", errs[2])
		assert.Equal(t, "Date of birth is required", errs[3])
		assert.Equal(t, "Membership date is required", errs[4])
		assert.Equal(t, "Expiry date is required", errs[5])
	})

	t.Run("name length limits", func(t *testing.T) {
		p := validMemberPayload()
		p.FirstName = strings.Repeat("a", 101)
		errs := p.Validate()
		require.Len(t, errs, 1)
		assert.Equal(t, "First name must be 100 characters or less", errs[0])
	})

	t.Run("invalid email format", func(t *testing.T) {
		for _, email := range []string{"not-an-email", "missing@domain", "@nouser.com"} {
			p := validMemberPayload()
			p.Email = email
			errs := p.Validate()
			require.Len(t, errs, 1, "email %q", email)
			assert.Equal(t, "Invalid email format", errs[0])
		}
	})

	t.Run("invalid phone format", func(t *testing.T) {
		p := validMemberPayload()
		p.Phone = "call me maybe"
		errs := p.Validate()
		require.Len(t, errs, 1)
		assert.Equal(t, "Invalid phone number format", errs[0])
	})

	t.Run("blank phone is allowed", func(t *testing.T) {
		p := validMemberPayload()
		p.Phone = ""
		assert.Empty(t, p.Validate())
	})

	t.Run("date of birth must be at least one year back", func(t *testing.T) {
		p := validMemberPayload()
		p.DateOfBirth = time.Now().AddDate(0, -6, 0).Format("2006-01-02")
		errs := p.Validate()
		require.Len(t, errs, 1)
		assert.Equal(t, "Date of birth must be at least 1 year ago", errs[0])
	})

	t.Run("membership date cannot be in the future", func(t *testing.T) {
		p := validMemberPayload()
		p.MembershipDate = time.Now().AddDate(0, 0, 3).Format("2006-01-02")
		errs := p.Validate()
		require.Len(t, errs, 1)
		assert.Equal(t, "Membership date cannot be in the future", errs[0])
	})

	t.Run("expiry before membership date rejected", func(t *testing.T) {
		p := validMemberPayload()
		p.MembershipExpiry = "2024-01-14"
		errs := p.Validate()
		require.Len(t, errs, 1)
		assert.Equal(t, "Expiry date must be after membership date", errs[0])
	})

	t.Run("expiry equal to membership date accepted", func(t *testing.T) {
		p := validMemberPayload()
		p.MembershipExpiry = p.MembershipDate
		assert.Empty(t, p.Validate())
	})

	t.Run("unknown membership status", func(t *testing.T) {
		p := validMemberPayload()
		p.MembershipStatus = "frozen"
		errs := p.Validate()
		require.Len(t, errs, 1)
		assert.Equal(t, "Membership status must be one of: active, expired, suspended, cancelled", errs[0])
	})

	t.Run("loan and renewal limits", func(t *testing.T) {
		tests := []struct {
			books, renewals int
			want            string
		}{
			{0, 2, "Maximum books allowed must be between 1 and 20"},
			{21, 2, "Maximum books allowed must be between 1 and 20"},
			{5, -1, "Maximum renewals allowed must be between 0 and 10"},
			{5, 11, "Maximum renewals allowed must be between 0 and 10"},
		}
		for _, tt := range tests {
			p := validMemberPayload()
			p.MaxBooksAllowed = tt.books
			p.MaxRenewalAllowed = tt.renewals
			errs := p.Validate()
			require.Len(t, errs, 1, "books=%d renewals=%d", tt.books, tt.renewals)
			assert.Equal(t, tt.want, errs[0])
		}
	})
}

func TestMemberPayloadToEntity(t *testing.T) {
	p := validMemberPayload()
	p.MembershipStatus = ""
	p.Address = "  "
	p.MemberNotes = "prefers email"

	m := p.ToEntity()

	assert.Equal(t, "active", m.MembershipStatus)
	assert.Nil(t, m.Address)
	require.NotNil(t, m.MemberNotes)
	assert.Equal(t, "prefers email", *m.MemberNotes)
	assert.Equal(t, 1990, m.DateOfBirth.Year())
	assert.True(t, m.IsActive)
}

func TestRenewRequestValidate(t *testing.T) {
	t.Run("future date is valid", func(t *testing.T) {
		r := RenewRequest{MembershipExpiry: time.Now().AddDate(1, 0, 0).Format("2006-01-02")}
		assert.Empty(t, r.Validate())
	})

	t.Run("missing date", func(t *testing.T) {
		r := RenewRequest{}
		errs := r.Validate()
		require.Len(t, errs, 1)
		assert.Equal(t, "Expiry date is required", errs[0])
	})

	t.Run("past date", func(t *testing.T) {
		r := RenewRequest{MembershipExpiry: "2020-01-01"}
		errs := r.Validate()
		require.Len(t, errs, 1)
		assert.Equal(t, "Expiry date must be in the future", errs[0])
	})

	t.Run("malformed date", func(t *testing.T) {
		r := RenewRequest{MembershipExpiry: "next year"}
		errs := r.Validate()
		require.Len(t, errs, 1)
		assert.Equal(t, "Invalid expiry date format, expected YYYY-MM-DD", errs[0])
	})
}
