package service

import (
	"context"
	"strings"

	"library-backend/internal/domains/copy/model"
	"library-backend/internal/domains/copy/repository"
)

// ServiceInterface is the copy business-logic contract.
type ServiceInterface interface {
	ListCopies(ctx context.Context, bookID int64) ([]model.BookCopy, error)
	GetCopy(ctx context.Context, id int64) (*model.BookCopy, error)
	AddCopy(ctx context.Context, bookID int64, req model.CopyPayload) (int64, error)
	UpdateCopy(ctx context.Context, id int64, req model.CopyPayload) error
	DeleteCopy(ctx context.Context, id int64) error
}

type copyService struct {
	repo repository.RepositoryInterface
}

func NewService(repo repository.RepositoryInterface) ServiceInterface {
	return &copyService{repo: repo}
}

func (s *copyService) ListCopies(ctx context.Context, bookID int64) ([]model.BookCopy, error) {
	return s.repo.ListByBook(ctx, bookID)
}

func (s *copyService) GetCopy(ctx context.Context, id int64) (*model.BookCopy, error) {
	return s.repo.GetByID(ctx, id)
}

// AddCopy pre-checks the (book, copy_number) pair among active copies so
// the caller gets a specific message; the storage unique constraint remains
// the backstop for races.
func (s *copyService) AddCopy(ctx context.Context, bookID int64, req model.CopyPayload) (int64, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return 0, errs
	}

	exists, err := s.repo.CopyNumberExists(ctx, bookID, strings.TrimSpace(req.CopyNumber))
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, model.ErrDuplicateCopyNumber
	}

	return s.repo.Create(ctx, req.ToEntity(bookID))
}

// UpdateCopy relies on the unique constraint alone to catch duplicate
// copy numbers.
func (s *copyService) UpdateCopy(ctx context.Context, id int64, req model.CopyPayload) error {
	if errs := req.Validate(); len(errs) > 0 {
		return errs
	}
	return s.repo.Update(ctx, id, req.ToEntity(0))
}

func (s *copyService) DeleteCopy(ctx context.Context, id int64) error {
	return s.repo.SoftDelete(ctx, id)
}
