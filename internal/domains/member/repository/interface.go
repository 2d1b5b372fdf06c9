package repository

import (
	"context"
	"time"

	"library-backend/internal/domains/member/model"
)

type RepositoryInterface interface {
	List(ctx context.Context, filter *model.MemberFilter) ([]model.MemberRow, error)
	GetByID(ctx context.Context, id int64) (*model.Member, error)
	Create(ctx context.Context, member *model.Member) (int64, error)
	Update(ctx context.Context, id int64, member *model.Member) error
	Delete(ctx context.Context, id int64) error
	Renew(ctx context.Context, id int64, expiry time.Time) error

	CountMemberNumber(ctx context.Context, memberNumber string, excludeID int64) (int, error)
	CountEmail(ctx context.Context, email string, excludeID int64) (int, error)
	LatestMemberNumber(ctx context.Context, prefix string) (string, error)

	GetLoans(ctx context.Context, memberID int64) ([]model.MemberLoan, error)
	GetFines(ctx context.Context, memberID int64) ([]model.MemberFine, error)
	EligibilitySnapshot(ctx context.Context, memberID int64) (*model.EligibilitySnapshot, error)
	Stats(ctx context.Context) (*model.MembershipStats, error)
}
