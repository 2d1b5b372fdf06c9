package repository

import (
	"context"

	"library-backend/internal/domains/copy/model"
)

// RepositoryInterface is the copy record store contract.
type RepositoryInterface interface {
	ListByBook(ctx context.Context, bookID int64) ([]model.BookCopy, error)
	GetByID(ctx context.Context, id int64) (*model.BookCopy, error)
	CopyNumberExists(ctx context.Context, bookID int64, copyNumber string) (bool, error)
	Create(ctx context.Context, copy *model.BookCopy) (int64, error)
	Update(ctx context.Context, id int64, copy *model.BookCopy) error
	SoftDelete(ctx context.Context, id int64) error
}
