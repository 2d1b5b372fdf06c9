package model

import (
	"fmt"
	"strings"
	"time"

	"library-backend/internal/shared/utils"
)

// Book is the catalog entity. Rows are never physically removed: delete
// flips IsActive and every read filters on it.
type Book struct {
	ID              int64      `json:"book_id" db:"book_id"`
	Title           string     `json:"title" db:"title"`
	Subtitle        *string    `json:"subtitle,omitempty" db:"subtitle"`
	Author          string     `json:"author" db:"author"`
	ISBN            *string    `json:"isbn,omitempty" db:"isbn"`
	PublicationYear *int       `json:"publication_year,omitempty" db:"publication_year"`
	Publisher       *string    `json:"publisher,omitempty" db:"publisher"`
	Pages           *int       `json:"pages,omitempty" db:"pages"`
	Language        *string    `json:"language,omitempty" db:"language"`
	Genre           *string    `json:"genre,omitempty" db:"genre"`
	Description     *string    `json:"description,omitempty" db:"description"`
	IsActive        bool       `json:"is_active" db:"is_active"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty" db:"updated_at"`
}

// BookFilter carries the optional list predicates. Zero values mean
// "no filter".
type BookFilter struct {
	Search    string
	Genre     string
	YearMin   int
	YearMax   int
	SortBy    string
	SortOrder string
}

// bookSortColumns is the whitelist for ORDER BY substitution. Anything not
// in this set falls back to the default instead of reaching the SQL text.
var bookSortColumns = map[string]bool{
	"book_id":          true,
	"title":            true,
	"author":           true,
	"isbn":             true,
	"publication_year": true,
	"publisher":        true,
	"pages":            true,
	"genre":            true,
}

// WhereClause builds the parameterized predicate for List. The search term
// matches across title/author/isbn/genre with a single bound argument.
func (f *BookFilter) WhereClause() (string, []interface{}) {
	conditions := []string{"is_active = true"}
	args := []interface{}{}
	argIndex := 1

	if f.Search != "" {
		or := []string{
			fmt.Sprintf("title ILIKE $%d", argIndex),
			fmt.Sprintf("author ILIKE $%d", argIndex),
			fmt.Sprintf("isbn ILIKE $%d", argIndex),
			fmt.Sprintf("genre ILIKE $%d", argIndex),
		}
		conditions = append(conditions, "("+utils.JoinWithOr(or)+")")
		args = append(args, utils.LikePattern(f.Search))
		argIndex++
	}

	if f.Genre != "" {
		conditions = append(conditions, fmt.Sprintf("genre = $%d", argIndex))
		args = append(args, f.Genre)
		argIndex++
	}

	if f.YearMin > 0 {
		conditions = append(conditions, fmt.Sprintf("publication_year >= $%d", argIndex))
		args = append(args, f.YearMin)
		argIndex++
	}

	if f.YearMax > 0 {
		conditions = append(conditions, fmt.Sprintf("publication_year <= $%d", argIndex))
		args = append(args, f.YearMax)
		argIndex++
	}

	return utils.JoinWithAnd(conditions), args
}

// OrderByClause validates the requested sort column and direction against
// the whitelist and returns the clause body. Invalid input degrades to
// "title ASC" rather than erroring.
func (f *BookFilter) OrderByClause() string {
	column := f.SortBy
	if !bookSortColumns[column] {
		column = "title"
	}

	order := strings.ToUpper(f.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "ASC"
	}

	return column + " " + order
}
