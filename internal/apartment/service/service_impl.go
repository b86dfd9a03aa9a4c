package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/parima/rentledger/internal/apartment/domain"
	"github.com/parima/rentledger/internal/config"
	"github.com/parima/rentledger/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	Cfg   config.Config
	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	cfg   config.Config
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		cfg:   p.Cfg,
		db:    p.DB,
		log:   p.Log.Named("apartment.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateApartmentRequest) (domain.Apartment, error) {
	label := strings.TrimSpace(req.Label)
	if label == "" {
		return domain.Apartment{}, domain.ErrInvalidLabel
	}
	if req.RentAmountCents < 0 {
		return domain.Apartment{}, domain.ErrInvalidRent
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = s.cfg.Currency
	}

	now := time.Now().UTC()
	apartment := domain.Apartment{
		ID:              s.genID.Generate(),
		Label:           label,
		RentAmountCents: req.RentAmountCents,
		Currency:        currency,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Insert(ctx, s.db, &apartment); err != nil {
		return domain.Apartment{}, err
	}

	return apartment, nil
}

func (s *Service) List(ctx context.Context, req domain.ListApartmentRequest) (domain.ListApartmentResponse, error) {
	filter := domain.ListApartmentFilter{
		TenantID:     strings.TrimSpace(req.TenantID),
		AssignedOnly: req.AssignedOnly,
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
		return domain.ListApartmentResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, int(pageSize), func(apartment *domain.Apartment) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        apartment.ID.String(),
			CreatedAt: apartment.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > int(pageSize) {
		items = items[:pageSize]
	}

	apartments := make([]domain.Apartment, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		apartments = append(apartments, *item)
	}

	resp := domain.ListApartmentResponse{Apartments: apartments}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}

	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetApartmentRequest) (domain.Apartment, error) {
	id, err := parseID(req.ID)
	if err != nil {
		return domain.Apartment{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Apartment{}, err
	}
	if item == nil {
		return domain.Apartment{}, domain.ErrNotFound
	}

	return *item, nil
}

// AssignTenant binds a tenant to the unit. One active tenant per
// apartment and one apartment per tenant at a time.
func (s *Service) AssignTenant(ctx context.Context, req domain.AssignTenantRequest) (domain.Apartment, error) {
	id, err := parseID(req.ApartmentID)
	if err != nil {
		return domain.Apartment{}, err
	}
	tenantID, err := snowflake.ParseString(strings.TrimSpace(req.TenantID))
	if err != nil || tenantID == 0 {
		return domain.Apartment{}, domain.ErrInvalidTenantID
	}

	existing, err := s.repo.FindByTenantID(ctx, s.db, tenantID)
	if err != nil {
		return domain.Apartment{}, err
	}
	if existing != nil && existing.ID != id {
		return domain.Apartment{}, domain.ErrTenantAssigned
	}

	apartment, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Apartment{}, err
	}
	if apartment == nil {
		return domain.Apartment{}, domain.ErrNotFound
	}

	apartment.TenantID = &tenantID
	apartment.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, s.db, apartment); err != nil {
		return domain.Apartment{}, err
	}

	s.log.Info("tenant assigned",
		zap.String("apartment_id", apartment.ID.String()),
		zap.String("tenant_id", tenantID.String()),
	)
	return *apartment, nil
}

func (s *Service) UnassignTenant(ctx context.Context, req domain.UnassignTenantRequest) (domain.Apartment, error) {
	id, err := parseID(req.ApartmentID)
	if err != nil {
		return domain.Apartment{}, err
	}

	apartment, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Apartment{}, err
	}
	if apartment == nil {
		return domain.Apartment{}, domain.ErrNotFound
	}

	apartment.TenantID = nil
	apartment.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, s.db, apartment); err != nil {
		return domain.Apartment{}, err
	}

	return *apartment, nil
}

func (s *Service) UpdateRent(ctx context.Context, req domain.UpdateRentRequest) (domain.Apartment, error) {
	id, err := parseID(req.ApartmentID)
	if err != nil {
		return domain.Apartment{}, err
	}
	if req.RentAmountCents < 0 {
		return domain.Apartment{}, domain.ErrInvalidRent
	}

	apartment, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Apartment{}, err
	}
	if apartment == nil {
		return domain.Apartment{}, domain.ErrNotFound
	}

	apartment.RentAmountCents = req.RentAmountCents
	apartment.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, s.db, apartment); err != nil {
		return domain.Apartment{}, err
	}

	return *apartment, nil
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
