package model

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCopyPayload() CopyPayload {
	return CopyPayload{
		CopyNumber:       "C-001",
		AcquisitionDate:  "2020-06-15",
		CurrentCondition: "good",
		Status:           "available",
	}
}

func TestCopyPayloadValidate(t *testing.T) {
	t.Run("valid payload", func(t *testing.T) {
		assert.Empty(t, validCopyPayload().Validate())
	})

	t.Run("missing copy number and date accumulate", func(t *testing.T) {
		p := CopyPayload{}
		errs := p.Validate()
		require.Len(t, errs, 2)
		assert.Equal(t, "Copy number is required", errs[0])
		assert.Equal(t, "Acquisition date is required", errs[1])
	})

	t.Run("copy number over 50 characters", func(t *testing.T) {
		p := validCopyPayload()
		p.CopyNumber = strings.Repeat("x", 51)
		errs := p.Validate()
		require.Len(t, errs, 1)
		assert.Equal(t, "Copy number must be 50 characters or less", errs[0])
	})

	t.Run("malformed date", func(t *testing.T) {
		p := validCopyPayload()
		p.AcquisitionDate = "15/06/2020"
		errs := p.Validate()
		require.Len(t, errs, 1)
		assert.Equal(t, "Invalid acquisition date format", errs[0])
	})

	t.Run("future date", func(t *testing.T) {
		p := validCopyPayload()
		p.AcquisitionDate = time.Now().AddDate(0, 0, 7).Format("2006-01-02")
		errs := p.Validate()
		require.Len(t, errs, 1)
		assert.Equal(t, "Acquisition date cannot be in the future", errs[0])
	})

	t.Run("unknown condition and status", func(t *testing.T) {
		p := validCopyPayload()
		p.CurrentCondition = "pristine"
		p.Status = "burned"
		errs := p.Validate()
		require.Len(t, errs, 2)
		assert.Equal(t, "Condition must be excellent, good, fair, or poor", errs[0])
		assert.Equal(t, "Status must be available, loaned, reserved, or lost", errs[1])
	})

	t.Run("enums are case insensitive", func(t *testing.T) {
		p := validCopyPayload()
		p.CurrentCondition = "Excellent"
		p.Status = "AVAILABLE"
		assert.Empty(t, p.Validate())
	})
}

func TestCopyPayloadToEntity(t *testing.T) {
	p := validCopyPayload()
	p.CurrentCondition = "Fair"

	entity := p.ToEntity(42)

	assert.Equal(t, int64(42), entity.BookID)
	assert.Equal(t, "C-001", entity.CopyNumber)
	assert.Equal(t, "fair", entity.CurrentCondition)
	assert.Equal(t, "available", entity.Status)
	assert.Equal(t, 2020, entity.AcquisitionDate.Year())
	assert.True(t, entity.IsActive)
}
