package repository

import (
	"context"

	"library-backend/internal/domains/book/model"
)

// RepositoryInterface is the book record store contract.
type RepositoryInterface interface {
	List(ctx context.Context, filter *model.BookFilter) ([]model.Book, error)
	GetByID(ctx context.Context, id int64) (*model.Book, error)
	Create(ctx context.Context, book *model.Book) (int64, error)
	Update(ctx context.Context, id int64, book *model.Book) error
	SoftDelete(ctx context.Context, id int64) error
}
