package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	meterdomain "github.com/parima/rentledger/internal/meterreading/domain"
	"github.com/parima/rentledger/internal/observability/metrics"
	"github.com/parima/rentledger/internal/tariff"
	"github.com/parima/rentledger/internal/tariff/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	Holder   *tariff.Holder
	Readings meterdomain.Repository
	Metrics  *metrics.Metrics `optional:"true"`
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	holder   *tariff.Holder
	readings meterdomain.Repository
	metrics  *metrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("tariff.service"),
		holder:   p.Holder,
		readings: p.Readings,
		metrics:  p.Metrics,
	}
}

// ApartmentUtilityCosts walks the unit's reading history in date order
// and prices each consumption delta against the current brackets. The
// first reading has no predecessor, so its usage is zero. A counter
// that moves backwards (meter swap, correction) clamps to zero usage
// rather than producing a negative charge.
func (s *Service) ApartmentUtilityCosts(ctx context.Context, req domain.ApartmentUtilityCostsRequest) (domain.ApartmentUtilityCostsResponse, error) {
	apartmentID, err := snowflake.ParseString(strings.TrimSpace(req.ApartmentID))
	if err != nil || apartmentID == 0 {
		return domain.ApartmentUtilityCostsResponse{}, domain.ErrInvalidApartmentID
	}

	readings, err := s.readings.ListByApartment(ctx, s.db, apartmentID)
	if err != nil {
		return domain.ApartmentUtilityCostsResponse{}, err
	}

	tables := s.holder.Get()
	costs := make([]domain.ReadingCost, 0, len(readings))

	var prev *meterdomain.MeterReading
	for _, reading := range readings {
		if reading == nil {
			continue
		}

		var ebsUsage, swmUsage int64
		if prev != nil {
			ebsUsage = reading.EBSReading - prev.EBSReading
			swmUsage = reading.SWMReading - prev.SWMReading
		}
		if ebsUsage < 0 || swmUsage < 0 {
			s.log.Warn("meter counter decreased, clamping usage to zero",
				zap.String("apartment_id", apartmentID.String()),
				zap.String("reading_id", reading.ID.String()),
			)
			if ebsUsage < 0 {
				ebsUsage = 0
			}
			if swmUsage < 0 {
				swmUsage = 0
			}
		}

		costs = append(costs, domain.ReadingCost{
			ReadingID:   reading.ID,
			ReadingDate: reading.ReadingDate,
			EBS: domain.UtilityCost{
				Utility:   domain.UtilityEBS,
				Usage:     ebsUsage,
				CostCents: domain.Cost(tables.EBS, ebsUsage),
			},
			SWM: domain.UtilityCost{
				Utility:   domain.UtilitySWM,
				Usage:     swmUsage,
				CostCents: domain.Cost(tables.SWM, swmUsage),
			},
		})
		prev = reading
	}

	s.metrics.RecordTariffEvaluation(ctx, string(domain.UtilityEBS))
	s.metrics.RecordTariffEvaluation(ctx, string(domain.UtilitySWM))

	return domain.ApartmentUtilityCostsResponse{
		ApartmentID: apartmentID,
		Costs:       costs,
	}, nil
}

func (s *Service) Tables(ctx context.Context) domain.TariffConfig {
	_ = ctx
	return s.holder.Get()
}
