package model

import (
	"time"
)

// Condition and status vocabularies for a physical copy.
const (
	ConditionExcellent = "excellent"
	ConditionGood      = "good"
	ConditionFair      = "fair"
	ConditionPoor      = "poor"

	StatusAvailable = "available"
	StatusLoaned    = "loaned"
	StatusReserved  = "reserved"
	StatusLost      = "lost"
)

// BookCopy is one physical copy of a book. Active copies of the same book
// never share a copy number.
type BookCopy struct {
	ID               int64      `json:"copy_id" db:"copy_id"`
	BookID           int64      `json:"book_id" db:"book_id"`
	CopyNumber       string     `json:"copy_number" db:"copy_number"`
	AcquisitionDate  time.Time  `json:"acquisition_date" db:"acquisition_date"`
	CurrentCondition string     `json:"current_condition" db:"current_condition"`
	Status           string     `json:"status" db:"status"`
	IsActive         bool       `json:"is_active" db:"is_active"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt        *time.Time `json:"updated_at,omitempty" db:"updated_at"`
}
