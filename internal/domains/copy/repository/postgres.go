package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-backend/internal/domains/copy/model"
)

const copyColumns = `copy_id, book_id, copy_number, acquisition_date, current_condition,
	status, is_active, created_at, updated_at`

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) ListByBook(ctx context.Context, bookID int64) ([]model.BookCopy, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM book_copies
		WHERE book_id = $1 AND is_active = true
		ORDER BY copy_number
	`, copyColumns)

	rows, err := r.pool.Query(ctx, query, bookID)
	if err != nil {
		return nil, fmt.Errorf("list copies query failed: %w", err)
	}

	copies, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.BookCopy])
	if err != nil {
		return nil, fmt.Errorf("collect rows failed: %w", err)
	}

	return copies, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.BookCopy, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM book_copies
		WHERE copy_id = $1 AND is_active = true
	`, copyColumns)

	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("get copy query failed: %w", err)
	}

	copy, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.BookCopy])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrCopyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get copy: %w", err)
	}

	return &copy, nil
}

// CopyNumberExists probes for an active copy of the book with the same
// number. Used before insert to give a friendlier message than the
// constraint violation.
func (r *postgresRepository) CopyNumberExists(ctx context.Context, bookID int64, copyNumber string) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM book_copies
			WHERE book_id = $1 AND copy_number = $2 AND is_active = true
		)
	`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, bookID, copyNumber).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check copy number: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) Create(ctx context.Context, copy *model.BookCopy) (int64, error) {
	query := `
		INSERT INTO book_copies (
			book_id, copy_number, acquisition_date, current_condition,
			status, is_active, created_at
		)
		VALUES ($1, $2, $3, $4, $5, true, CURRENT_TIMESTAMP)
		RETURNING copy_id
	`

	var id int64
	err := r.pool.QueryRow(ctx, query,
		copy.BookID, copy.CopyNumber, copy.AcquisitionDate,
		copy.CurrentCondition, copy.Status,
	).Scan(&id)

	if err != nil {
		if isUniqueViolation(err) {
			return 0, model.ErrDuplicateCopy
		}
		return 0, fmt.Errorf("failed to insert copy: %w", err)
	}

	return id, nil
}

func (r *postgresRepository) Update(ctx context.Context, id int64, copy *model.BookCopy) error {
	query := `
		UPDATE book_copies
		SET copy_number = $1,
		    acquisition_date = $2,
		    current_condition = $3,
		    status = $4,
		    updated_at = CURRENT_TIMESTAMP
		WHERE copy_id = $5 AND is_active = true
	`

	result, err := r.pool.Exec(ctx, query,
		copy.CopyNumber, copy.AcquisitionDate, copy.CurrentCondition, copy.Status, id,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrDuplicateCopy
		}
		return fmt.Errorf("failed to update copy: %w", err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrCopyNotFound
	}
	return nil
}

// SoftDelete flips the active flag without filtering on it, so repeating
// the call is harmless. There is deliberately no active-loan guard here.
func (r *postgresRepository) SoftDelete(ctx context.Context, id int64) error {
	query := `
		UPDATE book_copies
		SET is_active = false,
		    updated_at = CURRENT_TIMESTAMP
		WHERE copy_id = $1
	`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete copy: %w", err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrCopyNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
