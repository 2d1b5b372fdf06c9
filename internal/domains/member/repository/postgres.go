package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"library-backend/internal/domains/member/model"
	"library-backend/internal/infrastructure/database"
)

const memberColumns = `member_id, member_number, first_name, last_name, email, phone,
	date_of_birth, address, membership_date, membership_expiry, membership_status,
	max_books_allowed, max_renewal_allowed, emergency_contact_name,
	emergency_contact_phone, member_notes, is_active, created_at, updated_at`

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// memberListQuery computes each aggregate in its own correlated subquery.
// Joining loans and fines side by side would cross-multiply the rows and
// inflate the fine sum. The sum is cast to text because pgx has no native
// numeric-to-decimal scan.
const memberListQuery = `
	SELECT m.member_id, m.member_number, m.first_name, m.last_name, m.email, m.phone,
	       m.membership_status, m.membership_date, m.membership_expiry,
	       (SELECT COUNT(*) FROM loans l
	        WHERE l.member_id = m.member_id AND l.loan_status = 'active') AS active_loans,
	       (SELECT COALESCE(SUM(f.amount), 0) FROM fines f
	        WHERE f.member_id = m.member_id AND f.fine_status = 'pending')::text AS total_outstanding_fines,
	       (SELECT MAX(l.loan_date) FROM loans l
	        WHERE l.member_id = m.member_id) AS last_activity
	FROM members m
	WHERE %s
	ORDER BY %s`

// List returns the member overview rows with their loan and fine aggregates.
func (r *PostgresRepository) List(ctx context.Context, filter *model.MemberFilter) ([]model.MemberRow, error) {
	where, args := filter.WhereClause()

	query := fmt.Sprintf(memberListQuery, where, filter.OrderByClause())

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	members := []model.MemberRow{}
	for rows.Next() {
		var m model.MemberRow
		var fines string
		if err := rows.Scan(
			&m.ID, &m.MemberNumber, &m.FirstName, &m.LastName, &m.Email, &m.Phone,
			&m.MembershipStatus, &m.MembershipDate, &m.MembershipExpiry,
			&m.ActiveLoans, &fines, &m.LastActivity,
		); err != nil {
			return nil, fmt.Errorf("failed to scan member row: %w", err)
		}
		m.TotalOutstandingFines, err = decimal.NewFromString(fines)
		if err != nil {
			return nil, fmt.Errorf("failed to parse fine total: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*model.Member, error) {
	query := fmt.Sprintf(`SELECT %s FROM members WHERE member_id = $1 AND is_active = true`, memberColumns)

	rows, err := r.db.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	member, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Member])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to collect member: %w", err)
	}
	return &member, nil
}

func (r *PostgresRepository) Create(ctx context.Context, member *model.Member) (int64, error) {
	query := `
		INSERT INTO members (member_number, first_name, last_name, email, phone,
			date_of_birth, address, membership_date, membership_expiry,
			membership_status, max_books_allowed, max_renewal_allowed,
			emergency_contact_name, emergency_contact_phone, member_notes, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, true)
		RETURNING member_id`

	var id int64
	err := r.db.QueryRow(ctx, query,
		member.MemberNumber, member.FirstName, member.LastName, member.Email, member.Phone,
		member.DateOfBirth, member.Address, member.MembershipDate, member.MembershipExpiry,
		member.MembershipStatus, member.MaxBooksAllowed, member.MaxRenewalAllowed,
		member.EmergencyContactName, member.EmergencyContactPhone, member.MemberNotes,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, model.ErrMemberExists
		}
		return 0, fmt.Errorf("failed to create member: %w", err)
	}
	return id, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id int64, member *model.Member) error {
	query := `
		UPDATE members
		SET member_number = $1, first_name = $2, last_name = $3, email = $4, phone = $5,
		    date_of_birth = $6, address = $7, membership_date = $8, membership_expiry = $9,
		    membership_status = $10, max_books_allowed = $11, max_renewal_allowed = $12,
		    emergency_contact_name = $13, emergency_contact_phone = $14, member_notes = $15,
		    updated_at = CURRENT_TIMESTAMP
		WHERE member_id = $16 AND is_active = true`

	tag, err := r.db.Exec(ctx, query,
		member.MemberNumber, member.FirstName, member.LastName, member.Email, member.Phone,
		member.DateOfBirth, member.Address, member.MembershipDate, member.MembershipExpiry,
		member.MembershipStatus, member.MaxBooksAllowed, member.MaxRenewalAllowed,
		member.EmergencyContactName, member.EmergencyContactPhone, member.MemberNotes,
		id,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrMemberExists
		}
		return fmt.Errorf("failed to update member: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrMemberNotFound
	}
	return nil
}

// Delete soft-deletes a member after verifying no active loans remain. The
// check and the flag flip run in one transaction. The delete itself does not
// filter on is_active so repeating it succeeds.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	return database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		var activeLoans int
		err := tx.QueryRow(ctx,
			`SELECT COUNT(*) FROM loans WHERE member_id = $1 AND loan_status = 'active'`,
			id,
		).Scan(&activeLoans)
		if err != nil {
			return fmt.Errorf("failed to count active loans: %w", err)
		}
		if activeLoans > 0 {
			return model.ErrMemberHasActiveLoans
		}

		_, err = tx.Exec(ctx,
			`UPDATE members SET is_active = false, updated_at = CURRENT_TIMESTAMP WHERE member_id = $1`,
			id,
		)
		if err != nil {
			return fmt.Errorf("failed to delete member: %w", err)
		}
		return nil
	})
}

// Renew extends the membership and flips the status back to active.
func (r *PostgresRepository) Renew(ctx context.Context, id int64, expiry time.Time) error {
	query := `
		UPDATE members
		SET membership_expiry = $1, membership_status = 'active', updated_at = CURRENT_TIMESTAMP
		WHERE member_id = $2 AND is_active = true`

	tag, err := r.db.Exec(ctx, query, expiry, id)
	if err != nil {
		return fmt.Errorf("failed to renew membership: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrMemberNotFound
	}
	return nil
}

func (r *PostgresRepository) CountMemberNumber(ctx context.Context, memberNumber string, excludeID int64) (int, error) {
	query := `SELECT COUNT(*) FROM members WHERE member_number = $1 AND is_active = true`
	args := []interface{}{memberNumber}
	if excludeID > 0 {
		query += ` AND member_id != $2`
		args = append(args, excludeID)
	}

	var count int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count member number: %w", err)
	}
	return count, nil
}

func (r *PostgresRepository) CountEmail(ctx context.Context, email string, excludeID int64) (int, error) {
	query := `SELECT COUNT(*) FROM members WHERE email = $1 AND is_active = true`
	args := []interface{}{email}
	if excludeID > 0 {
		query += ` AND member_id != $2`
		args = append(args, excludeID)
	}

	var count int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count email: %w", err)
	}
	return count, nil
}

// LatestMemberNumber returns the highest assigned number with the given
// prefix, or empty when none exists yet.
func (r *PostgresRepository) LatestMemberNumber(ctx context.Context, prefix string) (string, error) {
	query := `
		SELECT member_number FROM members
		WHERE member_number LIKE $1
		ORDER BY member_number DESC
		LIMIT 1`

	var number string
	err := r.db.QueryRow(ctx, query, prefix+"%").Scan(&number)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("failed to query latest member number: %w", err)
	}
	return number, nil
}

func (r *PostgresRepository) GetLoans(ctx context.Context, memberID int64) ([]model.MemberLoan, error) {
	query := `
		SELECT l.loan_id, b.title, l.loan_date, l.due_date, l.return_date,
		       l.loan_status, l.renewal_count
		FROM loans l
		JOIN book_copies bc ON bc.copy_id = l.copy_id
		JOIN books b ON b.book_id = bc.book_id
		WHERE l.member_id = $1
		ORDER BY l.loan_date DESC`

	rows, err := r.db.Query(ctx, query, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to list member loans: %w", err)
	}
	defer rows.Close()

	loans := []model.MemberLoan{}
	for rows.Next() {
		var l model.MemberLoan
		if err := rows.Scan(&l.LoanID, &l.BookTitle, &l.LoanDate, &l.DueDate,
			&l.ReturnDate, &l.LoanStatus, &l.RenewalCount); err != nil {
			return nil, fmt.Errorf("failed to scan loan row: %w", err)
		}
		loans = append(loans, l)
	}
	return loans, rows.Err()
}

func (r *PostgresRepository) GetFines(ctx context.Context, memberID int64) ([]model.MemberFine, error) {
	query := `
		SELECT fine_id, amount::text, fine_date, fine_status, description
		FROM fines
		WHERE member_id = $1 AND fine_status = 'pending'
		ORDER BY fine_date DESC`

	rows, err := r.db.Query(ctx, query, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to list member fines: %w", err)
	}
	defer rows.Close()

	fines := []model.MemberFine{}
	for rows.Next() {
		var f model.MemberFine
		var amount string
		if err := rows.Scan(&f.FineID, &amount, &f.FineDate, &f.FineStatus, &f.Description); err != nil {
			return nil, fmt.Errorf("failed to scan fine row: %w", err)
		}
		f.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("failed to parse fine amount: %w", err)
		}
		fines = append(fines, f)
	}
	return fines, rows.Err()
}

// EligibilitySnapshot fetches the facts borrowing eligibility is derived
// from. A missing or inactive member yields ErrMemberNotFound.
func (r *PostgresRepository) EligibilitySnapshot(ctx context.Context, memberID int64) (*model.EligibilitySnapshot, error) {
	query := `
		SELECT m.membership_status, m.max_books_allowed,
		       (SELECT COUNT(*) FROM loans l
		        WHERE l.member_id = m.member_id AND l.loan_status = 'active'),
		       (SELECT COALESCE(SUM(f.amount), 0)::text FROM fines f
		        WHERE f.member_id = m.member_id AND f.fine_status = 'pending')
		FROM members m
		WHERE m.member_id = $1 AND m.is_active = true`

	var snap model.EligibilitySnapshot
	var fines string
	err := r.db.QueryRow(ctx, query, memberID).Scan(
		&snap.MembershipStatus, &snap.MaxBooksAllowed, &snap.ActiveLoans, &fines,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to load eligibility snapshot: %w", err)
	}
	snap.TotalFines, err = decimal.NewFromString(fines)
	if err != nil {
		return nil, fmt.Errorf("failed to parse fine total: %w", err)
	}
	return &snap, nil
}

func (r *PostgresRepository) Stats(ctx context.Context) (*model.MembershipStats, error) {
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE membership_status = 'active'),
		       COUNT(*) FILTER (WHERE membership_status = 'active'
		                        AND membership_expiry BETWEEN CURRENT_DATE AND CURRENT_DATE + INTERVAL '30 days'),
		       COUNT(*) FILTER (WHERE membership_status = 'expired' OR membership_expiry < CURRENT_DATE)
		FROM members
		WHERE is_active = true`

	var stats model.MembershipStats
	err := r.db.QueryRow(ctx, query).Scan(
		&stats.TotalMembers, &stats.ActiveMembers, &stats.ExpiringSoon, &stats.ExpiredMembers,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load membership stats: %w", err)
	}
	return &stats, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
