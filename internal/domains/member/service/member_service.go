package service

import (
	"context"
	"errors"
	"time"

	"library-backend/internal/domains/member/model"
	"library-backend/internal/domains/member/repository"
	"library-backend/internal/shared"
)

// maxNumberAttempts bounds the retry loop when a freshly generated member
// number collides with a concurrent insert.
const maxNumberAttempts = 5

type Service struct {
	repo repository.RepositoryInterface
}

func NewService(repo repository.RepositoryInterface) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListMembers(ctx context.Context, filter *model.MemberFilter) ([]model.MemberRow, error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) GetMember(ctx context.Context, id int64) (*model.Member, error) {
	return s.repo.GetByID(ctx, id)
}

// AddMember validates the payload, then appends uniqueness failures to the
// same message list so the caller sees every problem at once. A blank member
// number gets a generated one after validation passes.
func (s *Service) AddMember(ctx context.Context, payload *model.MemberPayload) (*model.Member, error) {
	errs := payload.Validate()

	member := payload.ToEntity()
	if member.MemberNumber != "" {
		count, err := s.repo.CountMemberNumber(ctx, member.MemberNumber, 0)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			errs = append(errs, "Member number already exists")
		}
	}
	if member.Email != "" {
		count, err := s.repo.CountEmail(ctx, member.Email, 0)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			errs = append(errs, "Email already exists")
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}

	if member.MemberNumber == "" {
		number, err := s.generateMemberNumber(ctx)
		if err != nil {
			return nil, err
		}
		member.MemberNumber = number
	}

	id, err := s.repo.Create(ctx, member)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) UpdateMember(ctx context.Context, id int64, payload *model.MemberPayload) (*model.Member, error) {
	errs := payload.Validate()

	member := payload.ToEntity()
	if member.MemberNumber == "" {
		errs = append(errs, "Member number is required")
	} else {
		count, err := s.repo.CountMemberNumber(ctx, member.MemberNumber, id)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			errs = append(errs, "Member number already exists")
		}
	}
	if member.Email != "" {
		count, err := s.repo.CountEmail(ctx, member.Email, id)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			errs = append(errs, "Email already exists")
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}

	if err := s.repo.Update(ctx, id, member); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) DeleteMember(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) RenewMembership(ctx context.Context, id int64, req *model.RenewRequest) (*model.Member, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return nil, errs
	}
	if err := s.repo.Renew(ctx, id, req.Expiry()); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetMemberLoans(ctx context.Context, id int64) ([]model.MemberLoan, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.GetLoans(ctx, id)
}

func (s *Service) GetMemberFines(ctx context.Context, id int64) ([]model.MemberFine, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.GetFines(ctx, id)
}

// CheckEligibility derives the borrowing verdict from the current snapshot.
// A missing member is reported as an ineligible verdict, not an error.
func (s *Service) CheckEligibility(ctx context.Context, id int64) (*model.Eligibility, error) {
	snap, err := s.repo.EligibilitySnapshot(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrMemberNotFound) {
			verdict := model.DeriveEligibility(nil)
			return &verdict, nil
		}
		return nil, err
	}
	verdict := model.DeriveEligibility(snap)
	return &verdict, nil
}

func (s *Service) GetStats(ctx context.Context) (*model.MembershipStats, error) {
	return s.repo.Stats(ctx)
}

// generateMemberNumber produces the next MEM-<year>-<NNNN> number by
// incrementing the highest assigned suffix for the current year, re-checking
// for a collision on each attempt.
func (s *Service) generateMemberNumber(ctx context.Context) (string, error) {
	year := time.Now().Year()
	prefix := model.FormatMemberNumber(year, 0)
	prefix = prefix[:len(prefix)-4]

	latest, err := s.repo.LatestMemberNumber(ctx, prefix)
	if err != nil {
		return "", err
	}
	next := model.SequenceOf(latest) + 1

	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		candidate := model.FormatMemberNumber(year, next+attempt)
		count, err := s.repo.CountMemberNumber(ctx, candidate, 0)
		if err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
	}
	return "", shared.ValidationErrors{"Unable to allocate a member number, please retry"}
}
