package model

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"library-backend/internal/shared"
)

const dateLayout = "2006-01-02"

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^\+?1?\d{9,15}$`)
)

var membershipStatuses = []interface{}{
	StatusActive, StatusExpired, StatusSuspended, StatusCancelled,
}

// MemberPayload is the write-side shape. Dates arrive as ISO strings so a
// malformed date is a validation message, not a bind failure. A blank
// member number means one is generated on create.
type MemberPayload struct {
	MemberNumber          string `json:"member_number"`
	FirstName             string `json:"first_name"`
	LastName              string `json:"last_name"`
	Email                 string `json:"email"`
	Phone                 string `json:"phone"`
	DateOfBirth           string `json:"date_of_birth"`
	Address               string `json:"address"`
	MembershipDate        string `json:"membership_date"`
	MembershipExpiry      string `json:"membership_expiry"`
	MembershipStatus      string `json:"membership_status"`
	MaxBooksAllowed       int    `json:"max_books_allowed"`
	MaxRenewalAllowed     int    `json:"max_renewal_allowed"`
	EmergencyContactName  string `json:"emergency_contact_name"`
	EmergencyContactPhone string `json:"emergency_contact_phone"`
	MemberNotes           string `json:"member_notes"`
}

// Validate runs every field rule and accumulates the first failure of each
// field in declaration order.
func (p MemberPayload) Validate() shared.ValidationErrors {
	var errs shared.ValidationErrors

	collect := func(value interface{}, rules ...validation.Rule) {
		if err := validation.Validate(value, rules...); err != nil {
			errs = append(errs, err.Error())
		}
	}

	firstName := strings.TrimSpace(p.FirstName)
	lastName := strings.TrimSpace(p.LastName)
	email := strings.TrimSpace(p.Email)
	phone := strings.TrimSpace(p.Phone)

	collect(firstName,
		validation.Required.Error("First name is required"),
		validation.Length(0, 100).Error("First name must be 100 characters or less"),
	)
	collect(lastName,
		validation.Required.Error("Last name is required"),
		validation.Length(0, 100).Error("Last name must be 100 characters or less"),
	)
	collect(email,
		validation.Required.Error("Email is required"),
		validation.Length(0, 255).Error("Email must be 255 characters or less"),
		validation.Match(emailRegex).Error("Invalid email format"),
	)
	if phone != "" {
		collect(phone, validation.Match(phoneRegex).Error("Invalid phone number format"))
	}

	today := time.Now().Truncate(24 * time.Hour)

	dob, dobErr := parseDate(p.DateOfBirth)
	switch {
	case strings.TrimSpace(p.DateOfBirth) == "":
		errs = append(errs, "Date of birth is required")
	case dobErr != nil:
		errs = append(errs, "Invalid date of birth format, expected YYYY-MM-DD")
	case dob.After(today.AddDate(-1, 0, 0)):
		errs = append(errs, "Date of birth must be at least 1 year ago")
	}

	memDate, memErr := parseDate(p.MembershipDate)
	switch {
	case strings.TrimSpace(p.MembershipDate) == "":
		errs = append(errs, "Membership date is required")
	case memErr != nil:
		errs = append(errs, "Invalid membership date format, expected YYYY-MM-DD")
	case memDate.After(today):
		errs = append(errs, "Membership date cannot be in the future")
	}

	expiry, expErr := parseDate(p.MembershipExpiry)
	switch {
	case strings.TrimSpace(p.MembershipExpiry) == "":
		errs = append(errs, "Expiry date is required")
	case expErr != nil:
		errs = append(errs, "Invalid expiry date format, expected YYYY-MM-DD")
	case memErr == nil && strings.TrimSpace(p.MembershipDate) != "" && expiry.Before(memDate):
		errs = append(errs, "Expiry date must be after membership date")
	}

	if p.MembershipStatus != "" {
		collect(strings.ToLower(p.MembershipStatus),
			validation.In(membershipStatuses...).Error(
				fmt.Sprintf("Membership status must be one of: %s, %s, %s, %s",
					StatusActive, StatusExpired, StatusSuspended, StatusCancelled)),
		)
	}

	// plain comparisons, zero is out of range here and must not be skipped
	if p.MaxBooksAllowed < 1 || p.MaxBooksAllowed > 20 {
		errs = append(errs, "Maximum books allowed must be between 1 and 20")
	}
	if p.MaxRenewalAllowed < 0 || p.MaxRenewalAllowed > 10 {
		errs = append(errs, "Maximum renewals allowed must be between 0 and 10")
	}

	return errs
}

// ToEntity converts a validated payload. Dates must have passed Validate.
func (p MemberPayload) ToEntity() *Member {
	dob, _ := parseDate(p.DateOfBirth)
	memDate, _ := parseDate(p.MembershipDate)
	expiry, _ := parseDate(p.MembershipExpiry)

	status := strings.ToLower(strings.TrimSpace(p.MembershipStatus))
	if status == "" {
		status = StatusActive
	}

	return &Member{
		MemberNumber:          strings.TrimSpace(p.MemberNumber),
		FirstName:             strings.TrimSpace(p.FirstName),
		LastName:              strings.TrimSpace(p.LastName),
		Email:                 strings.TrimSpace(p.Email),
		Phone:                 nullIfEmpty(p.Phone),
		DateOfBirth:           dob,
		Address:               nullIfEmpty(p.Address),
		MembershipDate:        memDate,
		MembershipExpiry:      expiry,
		MembershipStatus:      status,
		MaxBooksAllowed:       p.MaxBooksAllowed,
		MaxRenewalAllowed:     p.MaxRenewalAllowed,
		EmergencyContactName:  nullIfEmpty(p.EmergencyContactName),
		EmergencyContactPhone: nullIfEmpty(p.EmergencyContactPhone),
		MemberNotes:           nullIfEmpty(p.MemberNotes),
		IsActive:              true,
	}
}

// RenewRequest carries the new expiry for a membership renewal.
type RenewRequest struct {
	MembershipExpiry string `json:"membership_expiry"`
}

// Validate checks the renewal expiry parses and lies in the future.
func (r RenewRequest) Validate() shared.ValidationErrors {
	var errs shared.ValidationErrors

	expiry, err := parseDate(r.MembershipExpiry)
	switch {
	case strings.TrimSpace(r.MembershipExpiry) == "":
		errs = append(errs, "Expiry date is required")
	case err != nil:
		errs = append(errs, "Invalid expiry date format, expected YYYY-MM-DD")
	case !expiry.After(time.Now().Truncate(24 * time.Hour)):
		errs = append(errs, "Expiry date must be in the future")
	}

	return errs
}

// Expiry returns the parsed renewal date. Call after Validate.
func (r RenewRequest) Expiry() time.Time {
	expiry, _ := parseDate(r.MembershipExpiry)
	return expiry
}

func parseDate(raw string) (time.Time, error) {
	return time.Parse(dateLayout, strings.TrimSpace(raw))
}

func nullIfEmpty(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
