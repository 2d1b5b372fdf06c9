package model

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validBookPayload() BookPayload {
	return BookPayload{
		Title:           "The Go Programming Language",
		Author:          "Alan Donovan",
		ISBN:            "978-0-13-419044-0",
		PublicationYear: 2015,
		Pages:           380,
	}
}

func TestBookPayloadValidate(t *testing.T) {
	t.Run("valid payload has no errors", func(t *testing.T) {
		errs := validBookPayload().Validate()
		assert.Empty(t, errs)
	})

	t.Run("missing title and author accumulate in order", func(t *testing.T) {
		p := BookPayload{}
		errs := p.Validate()
		require.Len(t, errs, 2)
		assert.Equal(t, "Title is required", errs[0])
		assert.Equal(t, "Author is required", errs[1])
	})

	t.Run("whitespace only title is required", func(t *testing.T) {
		p := validBookPayload()
		p.Title = "   "
		errs := p.Validate()
		require.Len(t, errs, 1)
		assert.Equal(t, "Title is required", errs[0])
	})

	t.Run("title over 255 characters", func(t *testing.T) {
		p := validBookPayload()
		p.Title = strings.Repeat("a", 256)
		errs := p.Validate()
		require.Len(t, errs, 1)
		assert.Equal(t, "Title must be 255 characters or less", errs[0])
	})

	t.Run("publication year bounds", func(t *testing.T) {
		maxYear := time.Now().Year() + 1
		wantMsg := fmt.Sprintf("Publication year must be between 1000 and %d", maxYear)

		for _, year := range []int{999, maxYear + 1} {
			p := validBookPayload()
			p.PublicationYear = year
			errs := p.Validate()
			require.Len(t, errs, 1, "year %d", year)
			assert.Equal(t, wantMsg, errs[0])
		}

		p := validBookPayload()
		p.PublicationYear = maxYear
		assert.Empty(t, p.Validate())
	})

	t.Run("blank publication year is allowed", func(t *testing.T) {
		p := validBookPayload()
		p.PublicationYear = 0
		assert.Empty(t, p.Validate())
	})

	t.Run("negative pages", func(t *testing.T) {
		p := validBookPayload()
		p.Pages = -1
		errs := p.Validate()
		require.Len(t, errs, 1)
		assert.Equal(t, "Pages must be greater than 0", errs[0])
	})

	t.Run("description over 1000 characters", func(t *testing.T) {
		p := validBookPayload()
		p.Description = strings.Repeat("d", 1001)
		errs := p.Validate()
		require.Len(t, errs, 1)
		assert.Equal(t, "Description must be 1000 characters or less", errs[0])
	})

	t.Run("invalid isbn reported once", func(t *testing.T) {
		p := validBookPayload()
		p.ISBN = "978-0-13-419044-1"
		errs := p.Validate()
		require.Len(t, errs, 1)
		assert.Equal(t, "ISBN must be a valid 10 or 13 digit ISBN", errs[0])
	})
}

func TestValidISBN(t *testing.T) {
	valid := []string{
		"0306406152",
		"0-306-40615-2",
		"080442957X",
		"0 8044 2957 X",
		"9780306406157",
		"978-0-306-40615-7",
		"978-0-13-419044-0",
	}
	for _, isbn := range valid {
		assert.True(t, ValidISBN(isbn), "expected %q to be valid", isbn)
	}

	invalid := []string{
		"",
		"030640615",        // 9 digits
		"0306406153",       // bad check digit
		"030640615x",       // check digit should be 2
		"9780306406158",    // bad check digit
		"97803064061570",   // 14 digits
		"03064o6152",       // letter in body
		"978030640615X",    // X not allowed for 13 digit form
		"hello world isbn",
	}
	for _, isbn := range invalid {
		assert.False(t, ValidISBN(isbn), "expected %q to be invalid", isbn)
	}
}

func TestBookPayloadToEntity(t *testing.T) {
	p := validBookPayload()
	p.Subtitle = "  "
	p.Publisher = "Addison-Wesley"

	b := p.ToEntity()

	assert.Equal(t, "The Go Programming Language", b.Title)
	assert.Nil(t, b.Subtitle)
	require.NotNil(t, b.Publisher)
	assert.Equal(t, "Addison-Wesley", *b.Publisher)
	require.NotNil(t, b.ISBN)
	assert.Equal(t, "978-0-13-419044-0", *b.ISBN)
	assert.True(t, b.IsActive)
}
