package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/parima/rentledger/internal/clock"
	"github.com/parima/rentledger/internal/maintenance/domain"
	"github.com/parima/rentledger/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
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
		log:   p.Log.Named("maintenance.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateChargeRequest) (domain.MaintenanceCharge, error) {
	tenantID, err := snowflake.ParseString(strings.TrimSpace(req.TenantID))
	if err != nil || tenantID == 0 {
		return domain.MaintenanceCharge{}, domain.ErrInvalidTenantID
	}
	if req.CostCents <= 0 {
		return domain.MaintenanceCharge{}, domain.ErrInvalidCost
	}

	costType, err := parseCostType(req.CostType)
	if err != nil {
		return domain.MaintenanceCharge{}, err
	}

	now := s.clock.Now()
	occurredOn := now
	if req.OccurredOn != nil && !req.OccurredOn.IsZero() {
		occurredOn = req.OccurredOn.UTC()
	}

	metadata := datatypes.JSONMap{}
	for k, v := range req.Metadata {
		metadata[k] = v
	}

	charge := domain.MaintenanceCharge{
		ID:          s.genID.Generate(),
		TenantID:    tenantID,
		CostCents:   req.CostCents,
		CostType:    costType,
		OccurredOn:  occurredOn,
		Description: strings.TrimSpace(req.Description),
		Metadata:    metadata,
		CreatedAt:   now,
	}

	if err := s.repo.Insert(ctx, s.db, &charge); err != nil {
		return domain.MaintenanceCharge{}, err
	}

	return charge, nil
}

func (s *Service) List(ctx context.Context, req domain.ListChargeRequest) (domain.ListChargeResponse, error) {
	filter := domain.ListChargeFilter{
		TenantID: strings.TrimSpace(req.TenantID),
		CostType: strings.ToLower(strings.TrimSpace(req.CostType)),
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
		return domain.ListChargeResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, int(pageSize), func(charge *domain.MaintenanceCharge) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        charge.ID.String(),
			CreatedAt: charge.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > int(pageSize) {
		items = items[:pageSize]
	}

	charges := make([]domain.MaintenanceCharge, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		charges = append(charges, *item)
	}

	resp := domain.ListChargeResponse{Charges: charges}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}

	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetChargeRequest) (domain.MaintenanceCharge, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil || id == 0 {
		return domain.MaintenanceCharge{}, domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.MaintenanceCharge{}, err
	}
	if item == nil {
		return domain.MaintenanceCharge{}, domain.ErrNotFound
	}

	return *item, nil
}

func parseCostType(value string) (domain.CostType, error) {
	switch domain.CostType(strings.ToLower(strings.TrimSpace(value))) {
	case domain.CostTypeTenant:
		return domain.CostTypeTenant, nil
	case domain.CostTypeOwner:
		return domain.CostTypeOwner, nil
	default:
		return "", domain.ErrInvalidCostType
	}
}
