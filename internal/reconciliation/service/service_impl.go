package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	apartmentdomain "github.com/parima/rentledger/internal/apartment/domain"
	"github.com/parima/rentledger/internal/clock"
	"github.com/parima/rentledger/internal/config"
	loandomain "github.com/parima/rentledger/internal/loan/domain"
	maintenancedomain "github.com/parima/rentledger/internal/maintenance/domain"
	"github.com/parima/rentledger/internal/observability/metrics"
	paymentdomain "github.com/parima/rentledger/internal/payment/domain"
	"github.com/parima/rentledger/internal/reconciliation/domain"
	tenantdomain "github.com/parima/rentledger/internal/tenant/domain"
	"github.com/parima/rentledger/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Cfg     config.Config
	Log     *zap.Logger
	Clock   clock.Clock
	Metrics *metrics.Metrics `optional:"true"`

	Tenants    repository.Repository[tenantdomain.Tenant]
	Apartments repository.Repository[apartmentdomain.Apartment]
	Payments   repository.Repository[paymentdomain.RentPayment]
	Charges    repository.Repository[maintenancedomain.MaintenanceCharge]
	Loans      repository.Repository[loandomain.Loan]
}

type Service struct {
	cfg     config.Config
	log     *zap.Logger
	clock   clock.Clock
	metrics *metrics.Metrics

	tenants    repository.Repository[tenantdomain.Tenant]
	apartments repository.Repository[apartmentdomain.Apartment]
	payments   repository.Repository[paymentdomain.RentPayment]
	charges    repository.Repository[maintenancedomain.MaintenanceCharge]
	loans      repository.Repository[loandomain.Loan]
}

func New(p Params) domain.Service {
	return &Service{
		cfg:        p.Cfg,
		log:        p.Log.Named("reconciliation.service"),
		clock:      p.Clock,
		metrics:    p.Metrics,
		tenants:    p.Tenants,
		apartments: p.Apartments,
		payments:   p.Payments,
		charges:    p.Charges,
		loans:      p.Loans,
	}
}

func (s *Service) Periods(ctx context.Context, req domain.PeriodsRequest) (domain.PeriodsResponse, error) {
	if req.Year < 1 {
		return domain.PeriodsResponse{}, domain.ErrInvalidYear
	}

	payments, err := s.fetchPayments(ctx)
	if err != nil {
		return domain.PeriodsResponse{}, err
	}

	return domain.PeriodsResponse{
		Year:    req.Year,
		Periods: domain.PeriodsToDisplay(req.Year, s.clock.Now(), payments),
	}, nil
}

func (s *Service) Invoice(ctx context.Context, req domain.InvoiceRequest) (domain.InvoiceSnapshot, error) {
	tenantID, err := parseTenantID(req.TenantID)
	if err != nil {
		return domain.InvoiceSnapshot{}, err
	}
	if req.Year < 1 {
		return domain.InvoiceSnapshot{}, domain.ErrInvalidYear
	}
	if req.Month < 1 || req.Month > 12 {
		return domain.InvoiceSnapshot{}, domain.ErrInvalidMonth
	}

	rs, err := s.fetchRecords(ctx)
	if err != nil {
		return domain.InvoiceSnapshot{}, err
	}

	invoice := domain.DeriveInvoice(tenantID, req.Year, req.Month, rs)
	s.metrics.RecordInvoiceDerivation(ctx, string(invoice.Status))
	return invoice, nil
}

func (s *Service) Balance(ctx context.Context, req domain.BalanceRequest) (domain.CumulativeBalance, error) {
	tenantID, err := parseTenantID(req.TenantID)
	if err != nil {
		return domain.CumulativeBalance{}, err
	}
	if req.ThroughYear < 1 {
		return domain.CumulativeBalance{}, domain.ErrInvalidYear
	}
	if req.ThroughMonth < 1 || req.ThroughMonth > 12 {
		return domain.CumulativeBalance{}, domain.ErrInvalidMonth
	}

	apartments, err := s.fetchApartments(ctx)
	if err != nil {
		return domain.CumulativeBalance{}, err
	}
	payments, err := s.fetchPayments(ctx)
	if err != nil {
		return domain.CumulativeBalance{}, err
	}

	var rentAmountCents int64
	for _, apt := range apartments {
		if apt.TenantID != nil && *apt.TenantID == tenantID {
			rentAmountCents = apt.RentAmountCents
			break
		}
	}

	baselineYear := s.cfg.BaselineYear
	if req.BaselineYear > 0 {
		baselineYear = req.BaselineYear
	}
	if baselineYear < 1 || baselineYear > req.ThroughYear {
		baselineYear = req.ThroughYear
	}

	balance := domain.ComputeCumulativeBalance(tenantID, baselineYear, req.ThroughYear, req.ThroughMonth, rentAmountCents, payments)
	s.metrics.RecordBalanceWalk(ctx)
	return balance, nil
}

func (s *Service) Summary(ctx context.Context, req domain.SummaryRequest) (domain.YearSummary, error) {
	if req.Year < 1 {
		return domain.YearSummary{}, domain.ErrInvalidYear
	}

	rs, err := s.fetchRecords(ctx)
	if err != nil {
		return domain.YearSummary{}, err
	}

	periods := domain.PeriodsToDisplay(req.Year, s.clock.Now(), rs.Payments)
	return domain.ComputeYearSummary(req.Year, periods, rs), nil
}

// fetchRecords pulls the complete record snapshot once. Every
// derivation in the request runs against this snapshot; concurrent
// writes stay invisible until the next fetch.
func (s *Service) fetchRecords(ctx context.Context) (domain.RecordSet, error) {
	rs := domain.RecordSet{}

	tenants, err := s.tenants.Find(ctx, &tenantdomain.Tenant{})
	if err != nil {
		return rs, err
	}
	apartments, err := s.apartments.Find(ctx, &apartmentdomain.Apartment{})
	if err != nil {
		return rs, err
	}
	payments, err := s.payments.Find(ctx, &paymentdomain.RentPayment{})
	if err != nil {
		return rs, err
	}
	charges, err := s.charges.Find(ctx, &maintenancedomain.MaintenanceCharge{})
	if err != nil {
		return rs, err
	}
	loans, err := s.loans.Find(ctx, &loandomain.Loan{})
	if err != nil {
		return rs, err
	}

	for _, t := range tenants {
		if t != nil {
			rs.Tenants = append(rs.Tenants, *t)
		}
	}
	for _, a := range apartments {
		if a != nil {
			rs.Apartments = append(rs.Apartments, *a)
		}
	}
	for _, p := range payments {
		if p != nil {
			rs.Payments = append(rs.Payments, *p)
		}
	}
	for _, c := range charges {
		if c != nil {
			rs.Charges = append(rs.Charges, *c)
		}
	}
	for _, l := range loans {
		if l != nil {
			rs.Loans = append(rs.Loans, *l)
		}
	}

	return rs, nil
}

func (s *Service) fetchPayments(ctx context.Context) ([]paymentdomain.RentPayment, error) {
	items, err := s.payments.Find(ctx, &paymentdomain.RentPayment{})
	if err != nil {
		return nil, err
	}
	payments := make([]paymentdomain.RentPayment, 0, len(items))
	for _, item := range items {
		if item != nil {
			payments = append(payments, *item)
		}
	}
	return payments, nil
}

func (s *Service) fetchApartments(ctx context.Context) ([]apartmentdomain.Apartment, error) {
	items, err := s.apartments.Find(ctx, &apartmentdomain.Apartment{})
	if err != nil {
		return nil, err
	}
	apartments := make([]apartmentdomain.Apartment, 0, len(items))
	for _, item := range items {
		if item != nil {
			apartments = append(apartments, *item)
		}
	}
	return apartments, nil
}

func parseTenantID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidTenantID
	}
	return id, nil
}
