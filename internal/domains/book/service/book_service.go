package service

import (
	"context"

	"library-backend/internal/domains/book/model"
	"library-backend/internal/domains/book/repository"
)

type bookService struct {
	repo repository.RepositoryInterface
}

func NewService(repo repository.RepositoryInterface) ServiceInterface {
	return &bookService{repo: repo}
}

func (s *bookService) ListBooks(ctx context.Context, filter *model.BookFilter) ([]model.Book, error) {
	return s.repo.List(ctx, filter)
}

func (s *bookService) GetBook(ctx context.Context, id int64) (*model.Book, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateBook validates first; the storage layer is never reached with an
// invalid payload.
func (s *bookService) CreateBook(ctx context.Context, req model.BookPayload) (int64, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return 0, errs
	}
	return s.repo.Create(ctx, req.ToEntity())
}

func (s *bookService) UpdateBook(ctx context.Context, id int64, req model.BookPayload) error {
	if errs := req.Validate(); len(errs) > 0 {
		return errs
	}
	return s.repo.Update(ctx, id, req.ToEntity())
}

func (s *bookService) DeleteBook(ctx context.Context, id int64) error {
	return s.repo.SoftDelete(ctx, id)
}
