package model

import (
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"library-backend/internal/shared"
)

// BookPayload is the fully-formed field map the presentation layer submits
// for both create and update. Numeric fields arrive already coerced; zero
// means the field was left blank.
type BookPayload struct {
	Title           string `json:"title"`
	Subtitle        string `json:"subtitle"`
	Author          string `json:"author"`
	ISBN            string `json:"isbn"`
	PublicationYear int    `json:"publication_year"`
	Publisher       string `json:"publisher"`
	Pages           int    `json:"pages"`
	Language        string `json:"language"`
	Genre           string `json:"genre"`
	Description     string `json:"description"`
}

// Validate runs every rule and accumulates all failures in declaration
// order. An empty result means the payload is valid.
func (r BookPayload) Validate() shared.ValidationErrors {
	var errs shared.ValidationErrors
	collect := func(value interface{}, rules ...validation.Rule) {
		if err := validation.Validate(value, rules...); err != nil {
			errs = append(errs, err.Error())
		}
	}

	maxYear := time.Now().Year() + 1

	collect(strings.TrimSpace(r.Title),
		validation.Required.Error("Title is required"),
		validation.Length(0, 255).Error("Title must be 255 characters or less"),
	)
	collect(r.Subtitle,
		validation.Length(0, 255).Error("Subtitle must be 255 characters or less"),
	)
	collect(strings.TrimSpace(r.Author),
		validation.Required.Error("Author is required"),
		validation.Length(0, 255).Error("Author must be 255 characters or less"),
	)
	if r.ISBN != "" {
		collect(r.ISBN,
			validation.By(isbnRule),
		)
	}
	if r.PublicationYear != 0 {
		collect(r.PublicationYear,
			validation.Min(1001).Error(fmt.Sprintf("Publication year must be between 1000 and %d", maxYear)),
			validation.Max(maxYear).Error(fmt.Sprintf("Publication year must be between 1000 and %d", maxYear)),
		)
	}
	collect(r.Publisher,
		validation.Length(0, 255).Error("Publisher must be 255 characters or less"),
	)
	if r.Pages != 0 {
		collect(r.Pages,
			validation.Min(1).Error("Pages must be greater than 0"),
		)
	}
	collect(r.Description,
		validation.Length(0, 1000).Error("Description must be 1000 characters or less"),
	)

	return errs
}

// ToEntity builds the Book entity for persistence. Blank optional fields
// become NULLs.
func (r BookPayload) ToEntity() *Book {
	return &Book{
		Title:           strings.TrimSpace(r.Title),
		Subtitle:        NullIfEmpty(strings.TrimSpace(r.Subtitle)),
		Author:          strings.TrimSpace(r.Author),
		ISBN:            NullIfEmpty(strings.TrimSpace(r.ISBN)),
		PublicationYear: NullIfZero(r.PublicationYear),
		Publisher:       NullIfEmpty(strings.TrimSpace(r.Publisher)),
		Pages:           NullIfZero(r.Pages),
		Language:        NullIfEmpty(strings.TrimSpace(r.Language)),
		Genre:           NullIfEmpty(strings.TrimSpace(r.Genre)),
		Description:     NullIfEmpty(strings.TrimSpace(r.Description)),
		IsActive:        true,
	}
}

func isbnRule(value interface{}) error {
	s, _ := value.(string)
	if !ValidISBN(s) {
		return fmt.Errorf("ISBN must be a valid 10 or 13 digit ISBN")
	}
	return nil
}

// ValidISBN strips separators and verifies the check digit. Length 10 uses
// the mod-11 weighted sum ('X' stands for 10 in the check position), length
// 13 the 1/3-alternating mod-10 sum. Any other length is invalid.
func ValidISBN(raw string) bool {
	s := strings.NewReplacer("-", "", " ", "").Replace(raw)

	switch len(s) {
	case 10:
		sum := 0
		for i := 0; i < 9; i++ {
			c := s[i]
			if c < '0' || c > '9' {
				return false
			}
			sum += int(c-'0') * (10 - i)
		}
		check := (11 - sum%11) % 11
		last := s[9]
		if last == 'X' || last == 'x' {
			return check == 10
		}
		if last < '0' || last > '9' {
			return false
		}
		return check == int(last-'0')

	case 13:
		sum := 0
		for i := 0; i < 12; i++ {
			c := s[i]
			if c < '0' || c > '9' {
				return false
			}
			weight := 1
			if i%2 == 1 {
				weight = 3
			}
			sum += int(c-'0') * weight
		}
		check := (10 - sum%10) % 10
		last := s[12]
		if last < '0' || last > '9' {
			return false
		}
		return check == int(last-'0')

	default:
		return false
	}
}
