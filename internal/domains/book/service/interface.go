package service

import (
	"context"
	"io"

	"library-backend/internal/domains/book/model"
)

// ServiceInterface is the book business-logic contract consumed by the
// HTTP handlers.
type ServiceInterface interface {
	ListBooks(ctx context.Context, filter *model.BookFilter) ([]model.Book, error)
	GetBook(ctx context.Context, id int64) (*model.Book, error)
	CreateBook(ctx context.Context, req model.BookPayload) (int64, error)
	UpdateBook(ctx context.Context, id int64, req model.BookPayload) error
	DeleteBook(ctx context.Context, id int64) error
}

// ImportServiceInterface handles bulk catalog import from CSV.
type ImportServiceInterface interface {
	ImportBooks(ctx context.Context, file io.Reader) (*model.ImportResult, error)
}
