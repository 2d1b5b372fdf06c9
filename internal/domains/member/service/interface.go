package service

import (
	"context"

	"library-backend/internal/domains/member/model"
)

type ServiceInterface interface {
	ListMembers(ctx context.Context, filter *model.MemberFilter) ([]model.MemberRow, error)
	GetMember(ctx context.Context, id int64) (*model.Member, error)
	AddMember(ctx context.Context, payload *model.MemberPayload) (*model.Member, error)
	UpdateMember(ctx context.Context, id int64, payload *model.MemberPayload) (*model.Member, error)
	DeleteMember(ctx context.Context, id int64) error
	RenewMembership(ctx context.Context, id int64, req *model.RenewRequest) (*model.Member, error)
	GetMemberLoans(ctx context.Context, id int64) ([]model.MemberLoan, error)
	GetMemberFines(ctx context.Context, id int64) ([]model.MemberFine, error)
	CheckEligibility(ctx context.Context, id int64) (*model.Eligibility, error)
	GetStats(ctx context.Context) (*model.MembershipStats, error)
}
