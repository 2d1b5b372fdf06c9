package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"library-backend/internal/shared/utils"
)

// Membership statuses.
const (
	StatusActive    = "active"
	StatusExpired   = "expired"
	StatusSuspended = "suspended"
	StatusCancelled = "cancelled"
)

// Member is the full entity as stored. Loans and fines are separate
// read-only aggregates, never embedded here.
type Member struct {
	ID                    int64      `json:"member_id" db:"member_id"`
	MemberNumber          string     `json:"member_number" db:"member_number"`
	FirstName             string     `json:"first_name" db:"first_name"`
	LastName              string     `json:"last_name" db:"last_name"`
	Email                 string     `json:"email" db:"email"`
	Phone                 *string    `json:"phone,omitempty" db:"phone"`
	DateOfBirth           time.Time  `json:"date_of_birth" db:"date_of_birth"`
	Address               *string    `json:"address,omitempty" db:"address"`
	MembershipDate        time.Time  `json:"membership_date" db:"membership_date"`
	MembershipExpiry      time.Time  `json:"membership_expiry" db:"membership_expiry"`
	MembershipStatus      string     `json:"membership_status" db:"membership_status"`
	MaxBooksAllowed       int        `json:"max_books_allowed" db:"max_books_allowed"`
	MaxRenewalAllowed     int        `json:"max_renewal_allowed" db:"max_renewal_allowed"`
	EmergencyContactName  *string    `json:"emergency_contact_name,omitempty" db:"emergency_contact_name"`
	EmergencyContactPhone *string    `json:"emergency_contact_phone,omitempty" db:"emergency_contact_phone"`
	MemberNotes           *string    `json:"member_notes,omitempty" db:"member_notes"`
	IsActive              bool       `json:"is_active" db:"is_active"`
	CreatedAt             time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt             *time.Time `json:"updated_at,omitempty" db:"updated_at"`
}

// MemberRow is one line of the member list: core columns plus the loan and
// fine aggregates the overview table shows.
type MemberRow struct {
	ID                    int64           `json:"member_id"`
	MemberNumber          string          `json:"member_number"`
	FirstName             string          `json:"first_name"`
	LastName              string          `json:"last_name"`
	Email                 string          `json:"email"`
	Phone                 *string         `json:"phone,omitempty"`
	MembershipStatus      string          `json:"membership_status"`
	MembershipDate        time.Time       `json:"membership_date"`
	MembershipExpiry      time.Time       `json:"membership_expiry"`
	ActiveLoans           int             `json:"active_loans"`
	TotalOutstandingFines decimal.Decimal `json:"total_outstanding_fines"`
	LastActivity          *time.Time      `json:"last_activity,omitempty"`
}

// MemberLoan is a read-only loan history line joined through copies to the
// book title.
type MemberLoan struct {
	LoanID       int64      `json:"loan_id"`
	BookTitle    string     `json:"book_title"`
	LoanDate     time.Time  `json:"loan_date"`
	DueDate      time.Time  `json:"due_date"`
	ReturnDate   *time.Time `json:"return_date,omitempty"`
	LoanStatus   string     `json:"loan_status"`
	RenewalCount int        `json:"renewal_count"`
}

// MemberFine is one pending fine.
type MemberFine struct {
	FineID      int64           `json:"fine_id"`
	Amount      decimal.Decimal `json:"amount"`
	FineDate    time.Time       `json:"fine_date"`
	FineStatus  string          `json:"fine_status"`
	Description *string         `json:"description,omitempty"`
}

// Eligibility is derived on demand, never stored.
type Eligibility struct {
	Eligible bool   `json:"eligible"`
	Reason   string `json:"reason"`
}

// EligibilitySnapshot is the raw data eligibility is derived from.
type EligibilitySnapshot struct {
	MembershipStatus string
	MaxBooksAllowed  int
	ActiveLoans      int
	TotalFines       decimal.Decimal
}

// MembershipStats summarizes the active membership base.
type MembershipStats struct {
	TotalMembers   int `json:"total_members"`
	ActiveMembers  int `json:"active_members"`
	ExpiringSoon   int `json:"expiring_soon"`
	ExpiredMembers int `json:"expired_members"`
}

// MemberFilter carries the optional list predicates.
type MemberFilter struct {
	Search         string
	Status         string
	MembershipType string
	SortBy         string
	SortOrder      string
}

// memberSortColumns maps whitelisted sort keys to the ORDER BY expression.
// Plain columns keep their table prefix; aggregate columns sort by their
// select alias.
var memberSortColumns = map[string]string{
	"member_id":               "m.member_id",
	"member_number":           "m.member_number",
	"first_name":              "m.first_name",
	"last_name":               "m.last_name",
	"email":                   "m.email",
	"phone":                   "m.phone",
	"membership_status":       "m.membership_status",
	"membership_date":         "m.membership_date",
	"membership_expiry":       "m.membership_expiry",
	"active_loans":            "active_loans",
	"total_outstanding_fines": "total_outstanding_fines",
	"last_activity":           "last_activity",
}

// WhereClause builds the parameterized predicate for the member list. The
// search term matches across name, email, member number and phone with one
// bound argument.
func (f *MemberFilter) WhereClause() (string, []interface{}) {
	conditions := []string{"m.is_active = true"}
	args := []interface{}{}
	argIndex := 1

	if f.Search != "" {
		or := []string{
			fmt.Sprintf("m.first_name ILIKE $%d", argIndex),
			fmt.Sprintf("m.last_name ILIKE $%d", argIndex),
			fmt.Sprintf("m.email ILIKE $%d", argIndex),
			fmt.Sprintf("m.member_number ILIKE $%d", argIndex),
			fmt.Sprintf("m.phone ILIKE $%d", argIndex),
		}
		conditions = append(conditions, "("+utils.JoinWithOr(or)+")")
		args = append(args, utils.LikePattern(f.Search))
		argIndex++
	}

	if f.Status != "" {
		conditions = append(conditions, fmt.Sprintf("m.membership_status = $%d", argIndex))
		args = append(args, f.Status)
		argIndex++
	}

	if f.MembershipType != "" {
		conditions = append(conditions, fmt.Sprintf("m.membership_type = $%d", argIndex))
		args = append(args, f.MembershipType)
		argIndex++
	}

	return utils.JoinWithAnd(conditions), args
}

// OrderByClause validates the sort key against the whitelist and falls back
// to last name ascending.
func (f *MemberFilter) OrderByClause() string {
	column, ok := memberSortColumns[f.SortBy]
	if !ok {
		column = "m.last_name"
	}

	order := strings.ToUpper(f.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "ASC"
	}

	return column + " " + order
}

// FormatMemberNumber renders MEM-<year>-<NNNN>.
func FormatMemberNumber(year, sequence int) string {
	return fmt.Sprintf("MEM-%d-%04d", year, sequence)
}

// SequenceOf extracts the numeric suffix of a member number. Returns 0 when
// the suffix is not parseable.
func SequenceOf(memberNumber string) int {
	idx := strings.LastIndex(memberNumber, "-")
	if idx < 0 {
		return 0
	}
	seq, err := strconv.Atoi(memberNumber[idx+1:])
	if err != nil {
		return 0
	}
	return seq
}
