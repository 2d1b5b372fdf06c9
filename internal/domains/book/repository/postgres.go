package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"library-backend/internal/domains/book/model"
)

const bookColumns = `book_id, title, subtitle, author, isbn, publication_year, publisher,
	pages, language, genre, description, is_active, created_at, updated_at`

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

// List returns active books matching the filter, ordered by the
// whitelist-validated sort column.
func (r *postgresRepository) List(ctx context.Context, filter *model.BookFilter) ([]model.Book, error) {
	whereClause, args := filter.WhereClause()

	query := fmt.Sprintf(`
		SELECT %s
		FROM books
		WHERE %s
		ORDER BY %s
	`, bookColumns, whereClause, filter.OrderByClause())

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		log.Error().Err(err).Msg("List books query failed")
		return nil, fmt.Errorf("list books query failed: %w", err)
	}

	books, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Book])
	if err != nil {
		return nil, fmt.Errorf("collect rows failed: %w", err)
	}

	return books, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.Book, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM books
		WHERE book_id = $1 AND is_active = true
	`, bookColumns)

	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("get book query failed: %w", err)
	}

	book, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Book])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrBookNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get book: %w", err)
	}

	return &book, nil
}

func (r *postgresRepository) Create(ctx context.Context, book *model.Book) (int64, error) {
	query := `
		INSERT INTO books (
			title, subtitle, author, isbn, publication_year, publisher,
			pages, language, genre, description, is_active, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, true, CURRENT_TIMESTAMP)
		RETURNING book_id
	`

	var id int64
	err := r.pool.QueryRow(ctx, query,
		book.Title, book.Subtitle, book.Author, book.ISBN, book.PublicationYear,
		book.Publisher, book.Pages, book.Language, book.Genre, book.Description,
	).Scan(&id)

	if err != nil {
		if isUniqueViolation(err) {
			return 0, model.ErrDuplicateBook
		}
		return 0, fmt.Errorf("failed to insert book: %w", err)
	}

	return id, nil
}

// Update replaces every mutable field of an active book. A missing or
// already-deleted id surfaces as not found, not as an exception.
func (r *postgresRepository) Update(ctx context.Context, id int64, book *model.Book) error {
	query := `
		UPDATE books
		SET title = $1,
		    subtitle = $2,
		    author = $3,
		    isbn = $4,
		    publication_year = $5,
		    publisher = $6,
		    pages = $7,
		    language = $8,
		    genre = $9,
		    description = $10,
		    updated_at = CURRENT_TIMESTAMP
		WHERE book_id = $11 AND is_active = true
	`

	result, err := r.pool.Exec(ctx, query,
		book.Title, book.Subtitle, book.Author, book.ISBN, book.PublicationYear,
		book.Publisher, book.Pages, book.Language, book.Genre, book.Description,
		id,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrDuplicateBook
		}
		return fmt.Errorf("failed to update book: %w", err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}
	return nil
}

// SoftDelete flips the active flag. It deliberately does not filter on
// is_active so a repeat call on an already-deleted row succeeds.
func (r *postgresRepository) SoftDelete(ctx context.Context, id int64) error {
	query := `
		UPDATE books
		SET is_active = false,
		    updated_at = CURRENT_TIMESTAMP
		WHERE book_id = $1
	`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}
	return nil
}

// isUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
