package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"library-backend/internal/shared"
)

const dateLayout = "2006-01-02"

// CopyPayload is the field map for creating or updating a copy. The date
// arrives as an ISO string from the date picker.
type CopyPayload struct {
	CopyNumber       string `json:"copy_number"`
	AcquisitionDate  string `json:"acquisition_date"`
	CurrentCondition string `json:"current_condition"`
	Status           string `json:"status"`
}

// Validate accumulates every rule failure in declaration order.
func (r CopyPayload) Validate() shared.ValidationErrors {
	var errs shared.ValidationErrors
	collect := func(value interface{}, rules ...validation.Rule) {
		if err := validation.Validate(value, rules...); err != nil {
			errs = append(errs, err.Error())
		}
	}

	collect(strings.TrimSpace(r.CopyNumber),
		validation.Required.Error("Copy number is required"),
		validation.Length(0, 50).Error("Copy number must be 50 characters or less"),
	)

	if r.AcquisitionDate == "" {
		errs = append(errs, "Acquisition date is required")
	} else if acquired, err := time.Parse(dateLayout, r.AcquisitionDate); err != nil {
		errs = append(errs, "Invalid acquisition date format")
	} else if acquired.After(time.Now()) {
		errs = append(errs, "Acquisition date cannot be in the future")
	}

	if r.CurrentCondition != "" {
		collect(strings.ToLower(r.CurrentCondition),
			validation.In(ConditionExcellent, ConditionGood, ConditionFair, ConditionPoor).
				Error("Condition must be excellent, good, fair, or poor"),
		)
	}
	if r.Status != "" {
		collect(strings.ToLower(r.Status),
			validation.In(StatusAvailable, StatusLoaned, StatusReserved, StatusLost).
				Error("Status must be available, loaned, reserved, or lost"),
		)
	}

	return errs
}

// ToEntity builds the copy entity. Callers must have validated the payload:
// the date is assumed parseable here.
func (r CopyPayload) ToEntity(bookID int64) *BookCopy {
	acquired, _ := time.Parse(dateLayout, r.AcquisitionDate)
	return &BookCopy{
		BookID:           bookID,
		CopyNumber:       strings.TrimSpace(r.CopyNumber),
		AcquisitionDate:  acquired,
		CurrentCondition: strings.ToLower(r.CurrentCondition),
		Status:           strings.ToLower(r.Status),
		IsActive:         true,
	}
}
