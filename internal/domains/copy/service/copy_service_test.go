package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/copy/model"
	"library-backend/internal/shared"
)

type fakeCopyRepo struct {
	copies map[int64]*model.BookCopy
	nextID int64
}

func newFakeCopyRepo() *fakeCopyRepo {
	return &fakeCopyRepo{copies: map[int64]*model.BookCopy{}, nextID: 1}
}

func (f *fakeCopyRepo) ListByBook(ctx context.Context, bookID int64) ([]model.BookCopy, error) {
	out := []model.BookCopy{}
	for _, c := range f.copies {
		if c.BookID == bookID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeCopyRepo) GetByID(ctx context.Context, id int64) (*model.BookCopy, error) {
	c, ok := f.copies[id]
	if !ok {
		return nil, model.ErrCopyNotFound
	}
	return c, nil
}

func (f *fakeCopyRepo) CopyNumberExists(ctx context.Context, bookID int64, copyNumber string) (bool, error) {
	for _, c := range f.copies {
		if c.BookID == bookID && c.CopyNumber == copyNumber {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCopyRepo) Create(ctx context.Context, copy *model.BookCopy) (int64, error) {
	id := f.nextID
	f.nextID++
	copy.ID = id
	f.copies[id] = copy
	return id, nil
}

func (f *fakeCopyRepo) Update(ctx context.Context, id int64, copy *model.BookCopy) error {
	if _, ok := f.copies[id]; !ok {
		return model.ErrCopyNotFound
	}
	copy.ID = id
	f.copies[id] = copy
	return nil
}

func (f *fakeCopyRepo) SoftDelete(ctx context.Context, id int64) error {
	delete(f.copies, id)
	return nil
}

func TestAddCopy(t *testing.T) {
	ctx := context.Background()

	t.Run("valid copy is stored", func(t *testing.T) {
		repo := newFakeCopyRepo()
		svc := NewService(repo)

		id, err := svc.AddCopy(ctx, 7, model.CopyPayload{
			CopyNumber:      "C-001",
			AcquisitionDate: "2021-03-01",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), id)

		stored := repo.copies[id]
		assert.Equal(t, int64(7), stored.BookID)
		assert.Equal(t, "C-001", stored.CopyNumber)
	})

	t.Run("invalid payload never reaches the repository", func(t *testing.T) {
		repo := newFakeCopyRepo()
		svc := NewService(repo)

		_, err := svc.AddCopy(ctx, 7, model.CopyPayload{})
		require.Error(t, err)

		var verrs shared.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Empty(t, repo.copies)
	})

	t.Run("duplicate copy number within the same book", func(t *testing.T) {
		repo := newFakeCopyRepo()
		svc := NewService(repo)

		payload := model.CopyPayload{CopyNumber: "C-001", AcquisitionDate: "2021-03-01"}
		_, err := svc.AddCopy(ctx, 7, payload)
		require.NoError(t, err)

		_, err = svc.AddCopy(ctx, 7, payload)
		assert.ErrorIs(t, err, model.ErrDuplicateCopyNumber)
	})

	t.Run("same copy number on another book is fine", func(t *testing.T) {
		repo := newFakeCopyRepo()
		svc := NewService(repo)

		payload := model.CopyPayload{CopyNumber: "C-001", AcquisitionDate: "2021-03-01"}
		_, err := svc.AddCopy(ctx, 7, payload)
		require.NoError(t, err)

		_, err = svc.AddCopy(ctx, 8, payload)
		assert.NoError(t, err)
	})
}

func TestUpdateCopy(t *testing.T) {
	ctx := context.Background()
	repo := newFakeCopyRepo()
	svc := NewService(repo)

	id, err := svc.AddCopy(ctx, 7, model.CopyPayload{
		CopyNumber:       "C-001",
		AcquisitionDate:  "2021-03-01",
		CurrentCondition: "excellent",
	})
	require.NoError(t, err)

	err = svc.UpdateCopy(ctx, id, model.CopyPayload{
		CopyNumber:       "C-001",
		AcquisitionDate:  "2021-03-01",
		CurrentCondition: "poor",
		Status:           "lost",
	})
	require.NoError(t, err)

	assert.Equal(t, "poor", repo.copies[id].CurrentCondition)
	assert.Equal(t, "lost", repo.copies[id].Status)
}
