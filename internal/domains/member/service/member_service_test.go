package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/member/model"
	"library-backend/internal/shared"
)

// fakeMemberRepo keeps members in memory keyed by id.
type fakeMemberRepo struct {
	members  map[int64]*model.Member
	nextID   int64
	snapshot *model.EligibilitySnapshot
}

func newFakeMemberRepo() *fakeMemberRepo {
	return &fakeMemberRepo{members: map[int64]*model.Member{}, nextID: 1}
}

func (f *fakeMemberRepo) List(ctx context.Context, filter *model.MemberFilter) ([]model.MemberRow, error) {
	return nil, nil
}

func (f *fakeMemberRepo) GetByID(ctx context.Context, id int64) (*model.Member, error) {
	m, ok := f.members[id]
	if !ok {
		return nil, model.ErrMemberNotFound
	}
	return m, nil
}

func (f *fakeMemberRepo) Create(ctx context.Context, member *model.Member) (int64, error) {
	id := f.nextID
	f.nextID++
	member.ID = id
	f.members[id] = member
	return id, nil
}

func (f *fakeMemberRepo) Update(ctx context.Context, id int64, member *model.Member) error {
	if _, ok := f.members[id]; !ok {
		return model.ErrMemberNotFound
	}
	member.ID = id
	f.members[id] = member
	return nil
}

func (f *fakeMemberRepo) Delete(ctx context.Context, id int64) error {
	delete(f.members, id)
	return nil
}

func (f *fakeMemberRepo) Renew(ctx context.Context, id int64, expiry time.Time) error {
	m, ok := f.members[id]
	if !ok {
		return model.ErrMemberNotFound
	}
	m.MembershipExpiry = expiry
	m.MembershipStatus = model.StatusActive
	return nil
}

func (f *fakeMemberRepo) CountMemberNumber(ctx context.Context, memberNumber string, excludeID int64) (int, error) {
	count := 0
	for id, m := range f.members {
		if m.MemberNumber == memberNumber && id != excludeID {
			count++
		}
	}
	return count, nil
}

func (f *fakeMemberRepo) CountEmail(ctx context.Context, email string, excludeID int64) (int, error) {
	count := 0
	for id, m := range f.members {
		if m.Email == email && id != excludeID {
			count++
		}
	}
	return count, nil
}

func (f *fakeMemberRepo) LatestMemberNumber(ctx context.Context, prefix string) (string, error) {
	latest := ""
	for _, m := range f.members {
		if len(m.MemberNumber) >= len(prefix) && m.MemberNumber[:len(prefix)] == prefix && m.MemberNumber > latest {
			latest = m.MemberNumber
		}
	}
	return latest, nil
}

func (f *fakeMemberRepo) GetLoans(ctx context.Context, memberID int64) ([]model.MemberLoan, error) {
	return nil, nil
}

func (f *fakeMemberRepo) GetFines(ctx context.Context, memberID int64) ([]model.MemberFine, error) {
	return nil, nil
}

func (f *fakeMemberRepo) EligibilitySnapshot(ctx context.Context, memberID int64) (*model.EligibilitySnapshot, error) {
	if f.snapshot == nil {
		return nil, model.ErrMemberNotFound
	}
	return f.snapshot, nil
}

func (f *fakeMemberRepo) Stats(ctx context.Context) (*model.MembershipStats, error) {
	return &model.MembershipStats{TotalMembers: len(f.members)}, nil
}

func validPayload() *model.MemberPayload {
	return &model.MemberPayload{
		FirstName:         "Jane",
		LastName:          "Doe",
		Email:             "jane.doe@example.com",
		DateOfBirth:       "1990-04-12",
		MembershipDate:    "2024-01-15",
		MembershipExpiry:  "2030-01-15",
		MaxBooksAllowed:   5,
		MaxRenewalAllowed: 2,
	}
}

func TestAddMember(t *testing.T) {
	ctx := context.Background()

	t.Run("generates a member number when blank", func(t *testing.T) {
		repo := newFakeMemberRepo()
		svc := NewService(repo)

		member, err := svc.AddMember(ctx, validPayload())
		require.NoError(t, err)

		year := time.Now().Year()
		assert.Equal(t, model.FormatMemberNumber(year, 1), member.MemberNumber)
	})

	t.Run("increments past the highest assigned number", func(t *testing.T) {
		repo := newFakeMemberRepo()
		svc := NewService(repo)

		year := time.Now().Year()
		first, err := svc.AddMember(ctx, validPayload())
		require.NoError(t, err)
		assert.Equal(t, model.FormatMemberNumber(year, 1), first.MemberNumber)

		p := validPayload()
		p.Email = "john.doe@example.com"
		second, err := svc.AddMember(ctx, p)
		require.NoError(t, err)
		assert.Equal(t, model.FormatMemberNumber(year, 2), second.MemberNumber)
	})

	t.Run("keeps an explicit member number", func(t *testing.T) {
		repo := newFakeMemberRepo()
		svc := NewService(repo)

		p := validPayload()
		p.MemberNumber = "MEM-2020-0099"
		member, err := svc.AddMember(ctx, p)
		require.NoError(t, err)
		assert.Equal(t, "MEM-2020-0099", member.MemberNumber)
	})

	t.Run("duplicate email joins the validation messages", func(t *testing.T) {
		repo := newFakeMemberRepo()
		svc := NewService(repo)

		_, err := svc.AddMember(ctx, validPayload())
		require.NoError(t, err)

		p := validPayload()
		p.FirstName = ""
		_, err = svc.AddMember(ctx, p)
		require.Error(t, err)

		var verrs shared.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Contains(t, verrs.Messages(), "First name is required")
		assert.Contains(t, verrs.Messages(), "Email already exists")
	})

	t.Run("duplicate member number rejected", func(t *testing.T) {
		repo := newFakeMemberRepo()
		svc := NewService(repo)

		p := validPayload()
		p.MemberNumber = "MEM-2020-0001"
		_, err := svc.AddMember(ctx, p)
		require.NoError(t, err)

		p2 := validPayload()
		p2.MemberNumber = "MEM-2020-0001"
		p2.Email = "other@example.com"
		_, err = svc.AddMember(ctx, p2)
		require.Error(t, err)

		var verrs shared.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Contains(t, verrs.Messages(), "Member number already exists")
	})
}

func TestUpdateMember(t *testing.T) {
	ctx := context.Background()

	t.Run("own number and email do not count as duplicates", func(t *testing.T) {
		repo := newFakeMemberRepo()
		svc := NewService(repo)

		created, err := svc.AddMember(ctx, validPayload())
		require.NoError(t, err)

		p := validPayload()
		p.MemberNumber = created.MemberNumber
		p.Phone = "+15559876543"
		updated, err := svc.UpdateMember(ctx, created.ID, p)
		require.NoError(t, err)
		require.NotNil(t, updated.Phone)
		assert.Equal(t, "+15559876543", *updated.Phone)
	})

	t.Run("blank member number rejected on update", func(t *testing.T) {
		repo := newFakeMemberRepo()
		svc := NewService(repo)

		created, err := svc.AddMember(ctx, validPayload())
		require.NoError(t, err)

		_, err = svc.UpdateMember(ctx, created.ID, validPayload())
		require.Error(t, err)

		var verrs shared.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Contains(t, verrs.Messages(), "Member number is required")
	})
}

func TestRenewMembership(t *testing.T) {
	ctx := context.Background()
	repo := newFakeMemberRepo()
	svc := NewService(repo)

	created, err := svc.AddMember(ctx, validPayload())
	require.NoError(t, err)
	repo.members[created.ID].MembershipStatus = model.StatusExpired

	expiry := time.Now().AddDate(1, 0, 0).Format("2006-01-02")
	renewed, err := svc.RenewMembership(ctx, created.ID, &model.RenewRequest{MembershipExpiry: expiry})
	require.NoError(t, err)

	assert.Equal(t, model.StatusActive, renewed.MembershipStatus)
	assert.Equal(t, expiry, renewed.MembershipExpiry.Format("2006-01-02"))
}

func TestCheckEligibility(t *testing.T) {
	ctx := context.Background()

	t.Run("missing member is an ineligible verdict, not an error", func(t *testing.T) {
		repo := newFakeMemberRepo()
		svc := NewService(repo)

		verdict, err := svc.CheckEligibility(ctx, 404)
		require.NoError(t, err)
		assert.False(t, verdict.Eligible)
		assert.Equal(t, "Member not found or inactive", verdict.Reason)
	})

	t.Run("snapshot drives the verdict", func(t *testing.T) {
		repo := newFakeMemberRepo()
		repo.snapshot = &model.EligibilitySnapshot{
			MembershipStatus: model.StatusActive,
			MaxBooksAllowed:  5,
			ActiveLoans:      1,
			TotalFines:       decimal.Zero,
		}
		svc := NewService(repo)

		verdict, err := svc.CheckEligibility(ctx, 1)
		require.NoError(t, err)
		assert.True(t, verdict.Eligible)
	})
}

// sanity check on the generated prefix shape used by the fake above
func TestGeneratedNumberShape(t *testing.T) {
	year := time.Now().Year()
	assert.Equal(t, fmt.Sprintf("MEM-%d-0007", year), model.FormatMemberNumber(year, 7))
}
