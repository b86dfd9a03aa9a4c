package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/parima/rentledger/internal/clock"
	"github.com/parima/rentledger/internal/meterreading/domain"
	"github.com/parima/rentledger/internal/observability/metrics"
	"github.com/parima/rentledger/pkg/db"
	"github.com/parima/rentledger/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Clock   clock.Clock
	Repo    domain.Repository
	Metrics *metrics.Metrics `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	clock   clock.Clock
	repo    domain.Repository
	metrics *metrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("meterreading.service"),
		genID:   p.GenID,
		clock:   p.Clock,
		repo:    p.Repo,
		metrics: p.Metrics,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateReadingRequest) (domain.MeterReading, error) {
	apartmentID, err := snowflake.ParseString(strings.TrimSpace(req.ApartmentID))
	if err != nil || apartmentID == 0 {
		return domain.MeterReading{}, domain.ErrInvalidApartmentID
	}
	// Counters are cumulative and can never be negative. Monotonicity
	// against the previous reading is not enforced here.
	if req.EBSReading < 0 || req.SWMReading < 0 {
		return domain.MeterReading{}, domain.ErrInvalidReading
	}

	now := s.clock.Now()
	readingDate := now
	if req.ReadingDate != nil && !req.ReadingDate.IsZero() {
		readingDate = req.ReadingDate.UTC()
	}

	reading := domain.MeterReading{
		ID:          s.genID.Generate(),
		ApartmentID: apartmentID,
		ReadingDate: readingDate,
		EBSReading:  req.EBSReading,
		SWMReading:  req.SWMReading,
		CreatedAt:   now,
	}

	if err := s.repo.Insert(ctx, s.db, &reading); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.MeterReading{}, domain.ErrDuplicateReading
		}
		return domain.MeterReading{}, err
	}

	s.metrics.RecordReadingIngested(ctx)
	return reading, nil
}

func (s *Service) List(ctx context.Context, req domain.ListReadingRequest) (domain.ListReadingResponse, error) {
	filter := domain.ListReadingFilter{
		ApartmentID: strings.TrimSpace(req.ApartmentID),
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
		return domain.ListReadingResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, int(pageSize), func(reading *domain.MeterReading) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        reading.ID.String(),
			CreatedAt: reading.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > int(pageSize) {
		items = items[:pageSize]
	}

	readings := make([]domain.MeterReading, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		readings = append(readings, *item)
	}

	resp := domain.ListReadingResponse{Readings: readings}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}

	return resp, nil
}
