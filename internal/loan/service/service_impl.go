package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/parima/rentledger/internal/clock"
	"github.com/parima/rentledger/internal/loan/domain"
	"github.com/parima/rentledger/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("loan.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateLoanRequest) (domain.Loan, error) {
	tenantID, err := snowflake.ParseString(strings.TrimSpace(req.TenantID))
	if err != nil || tenantID == 0 {
		return domain.Loan{}, domain.ErrInvalidTenantID
	}
	if req.PrincipalCents <= 0 {
		return domain.Loan{}, domain.ErrInvalidPrincipal
	}

	now := s.clock.Now()
	issuedOn := now
	if req.IssuedOn != nil && !req.IssuedOn.IsZero() {
		issuedOn = req.IssuedOn.UTC()
	}

	loan := domain.Loan{
		ID:             s.genID.Generate(),
		TenantID:       tenantID,
		PrincipalCents: req.PrincipalCents,
		IssuedOn:       issuedOn,
		Note:           strings.TrimSpace(req.Note),
		CreatedAt:      now,
	}

	if err := s.repo.Insert(ctx, s.db, &loan); err != nil {
		return domain.Loan{}, err
	}

	s.log.Info("loan issued",
		zap.String("tenant_id", tenantID.String()),
		zap.Int64("principal_cents", loan.PrincipalCents),
	)
	return loan, nil
}

func (s *Service) List(ctx context.Context, req domain.ListLoanRequest) (domain.ListLoanResponse, error) {
	filter := domain.ListLoanFilter{
		TenantID: strings.TrimSpace(req.TenantID),
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.List(ctx, s.db, filter, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  int(pageSize),
	})
	if err != nil {
		return domain.ListLoanResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, int(pageSize), func(loan *domain.Loan) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        loan.ID.String(),
			CreatedAt: loan.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > int(pageSize) {
		items = items[:pageSize]
	}

	loans := make([]domain.Loan, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		loans = append(loans, *item)
	}

	resp := domain.ListLoanResponse{Loans: loans}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}

	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetLoanRequest) (domain.Loan, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil || id == 0 {
		return domain.Loan{}, domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Loan{}, err
	}
	if item == nil {
		return domain.Loan{}, domain.ErrNotFound
	}

	return *item, nil
}
