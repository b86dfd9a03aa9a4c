package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	apartmentdomain "github.com/parima/rentledger/internal/apartment/domain"
	"github.com/parima/rentledger/internal/clock"
	"github.com/parima/rentledger/internal/config"
	loandomain "github.com/parima/rentledger/internal/loan/domain"
	maintenancedomain "github.com/parima/rentledger/internal/maintenance/domain"
	paymentdomain "github.com/parima/rentledger/internal/payment/domain"
	"github.com/parima/rentledger/internal/reconciliation/domain"
	tenantdomain "github.com/parima/rentledger/internal/tenant/domain"
	"github.com/parima/rentledger/pkg/repository"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	db      *gorm.DB
	genID   *snowflake.Node
	clock   *clock.FakeClock
	service domain.Service
}

func newFixture(t *testing.T, today time.Time) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&tenantdomain.Tenant{},
		&apartmentdomain.Apartment{},
		&paymentdomain.RentPayment{},
		&maintenancedomain.MaintenanceCharge{},
		&loandomain.Loan{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	fakeClock := clock.NewFakeClock(today)

	svc := New(Params{
		Cfg:        config.Config{BaselineYear: today.Year()},
		Log:        zap.NewNop(),
		Clock:      fakeClock,
		Tenants:    repository.ProvideStore[tenantdomain.Tenant](db),
		Apartments: repository.ProvideStore[apartmentdomain.Apartment](db),
		Payments:   repository.ProvideStore[paymentdomain.RentPayment](db),
		Charges:    repository.ProvideStore[maintenancedomain.MaintenanceCharge](db),
		Loans:      repository.ProvideStore[loandomain.Loan](db),
	})

	return &fixture{db: db, genID: node, clock: fakeClock, service: svc}
}

func (f *fixture) seedTenant(t *testing.T, name string) tenantdomain.Tenant {
	t.Helper()
	tenant := tenantdomain.Tenant{
		ID:        f.genID.Generate(),
		Name:      name,
		CreatedAt: f.clock.Now(),
		UpdatedAt: f.clock.Now(),
	}
	require.NoError(t, f.db.Create(&tenant).Error)
	return tenant
}

func (f *fixture) seedApartment(t *testing.T, tenantID snowflake.ID, rentCents int64) apartmentdomain.Apartment {
	t.Helper()
	apartment := apartmentdomain.Apartment{
		ID:              f.genID.Generate(),
		Label:           "unit",
		TenantID:        &tenantID,
		RentAmountCents: rentCents,
		Currency:        "SRD",
		CreatedAt:       f.clock.Now(),
		UpdatedAt:       f.clock.Now(),
	}
	require.NoError(t, f.db.Create(&apartment).Error)
	return apartment
}

func (f *fixture) seedRentPayment(t *testing.T, tenantID snowflake.ID, amountCents int64, year, month int, paidOn time.Time) {
	t.Helper()
	payment := paymentdomain.RentPayment{
		ID:          f.genID.Generate(),
		TenantID:    tenantID,
		AmountCents: amountCents,
		PaymentType: paymentdomain.PaymentTypeRent,
		PeriodYear:  year,
		PeriodMonth: month,
		PaymentDate: paidOn,
		CreatedAt:   paidOn,
	}
	require.NoError(t, f.db.Create(&payment).Error)
}

func TestInvoiceFromStoredRecords(t *testing.T) {
	today := time.Date(2025, time.April, 10, 9, 0, 0, 0, time.UTC)
	f := newFixture(t, today)

	tenant := f.seedTenant(t, "Ramdin")
	f.seedApartment(t, tenant.ID, 100000)
	f.seedRentPayment(t, tenant.ID, 60000, 2025, 3, time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC))
	f.seedRentPayment(t, tenant.ID, 40000, 2025, 3, time.Date(2025, time.March, 21, 0, 0, 0, 0, time.UTC))

	invoice, err := f.service.Invoice(context.Background(), domain.InvoiceRequest{
		TenantID: tenant.ID.String(),
		Year:     2025,
		Month:    3,
	})
	require.NoError(t, err)
	require.Equal(t, int64(100000), invoice.TotalPaidCents)
	require.Equal(t, int64(0), invoice.RemainingCents)
	require.Equal(t, domain.StatusPaid, invoice.Status)
	require.Len(t, invoice.Payments, 2)
}

func TestInvoiceRecomputesAfterNewPayment(t *testing.T) {
	today := time.Date(2025, time.April, 10, 9, 0, 0, 0, time.UTC)
	f := newFixture(t, today)

	tenant := f.seedTenant(t, "Ramdin")
	f.seedApartment(t, tenant.ID, 100000)

	req := domain.InvoiceRequest{TenantID: tenant.ID.String(), Year: 2025, Month: 4}

	invoice, err := f.service.Invoice(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, domain.StatusUnpaid, invoice.Status)

	f.seedRentPayment(t, tenant.ID, 100000, 2025, 4, today)

	invoice, err = f.service.Invoice(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, domain.StatusPaid, invoice.Status)
}

func TestInvoiceValidation(t *testing.T) {
	today := time.Date(2025, time.April, 10, 9, 0, 0, 0, time.UTC)
	f := newFixture(t, today)

	_, err := f.service.Invoice(context.Background(), domain.InvoiceRequest{TenantID: "nonsense", Year: 2025, Month: 3})
	require.ErrorIs(t, err, domain.ErrInvalidTenantID)

	tenant := f.seedTenant(t, "Ramdin")
	_, err = f.service.Invoice(context.Background(), domain.InvoiceRequest{TenantID: tenant.ID.String(), Year: 2025, Month: 13})
	require.ErrorIs(t, err, domain.ErrInvalidMonth)

	_, err = f.service.Invoice(context.Background(), domain.InvoiceRequest{TenantID: tenant.ID.String(), Year: 0, Month: 3})
	require.ErrorIs(t, err, domain.ErrInvalidYear)
}

func TestBalanceAdvancePayment(t *testing.T) {
	today := time.Date(2025, time.February, 20, 9, 0, 0, 0, time.UTC)
	f := newFixture(t, today)

	tenant := f.seedTenant(t, "Jharap")
	f.seedApartment(t, tenant.ID, 100000)
	f.seedRentPayment(t, tenant.ID, 100000, 2025, 1, time.Date(2025, time.January, 3, 0, 0, 0, 0, time.UTC))
	f.seedRentPayment(t, tenant.ID, 100000, 2025, 2, time.Date(2025, time.February, 3, 0, 0, 0, 0, time.UTC))
	f.seedRentPayment(t, tenant.ID, 100000, 2025, 3, time.Date(2025, time.February, 15, 0, 0, 0, 0, time.UTC))

	balance, err := f.service.Balance(context.Background(), domain.BalanceRequest{
		TenantID:     tenant.ID.String(),
		ThroughYear:  2025,
		ThroughMonth: 2,
	})
	require.NoError(t, err)
	require.Equal(t, int64(200000), balance.TotalDueCents)
	require.Equal(t, int64(300000), balance.TotalPaidCents)
	require.Equal(t, int64(-100000), balance.BalanceCents)

	periods, err := f.service.Periods(context.Background(), domain.PeriodsRequest{Year: 2025})
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 3}, periods.Periods)
}

func TestBalanceUnassignedTenantIsZeroDue(t *testing.T) {
	today := time.Date(2025, time.March, 1, 9, 0, 0, 0, time.UTC)
	f := newFixture(t, today)

	tenant := f.seedTenant(t, "Nobody")

	balance, err := f.service.Balance(context.Background(), domain.BalanceRequest{
		TenantID:     tenant.ID.String(),
		ThroughYear:  2025,
		ThroughMonth: 3,
	})
	require.NoError(t, err)
	require.Equal(t, int64(0), balance.TotalDueCents)
	require.Equal(t, int64(0), balance.BalanceCents)
}

func TestSummaryReconciles(t *testing.T) {
	today := time.Date(2025, time.February, 25, 9, 0, 0, 0, time.UTC)
	f := newFixture(t, today)

	first := f.seedTenant(t, "Ramdin")
	second := f.seedTenant(t, "Jharap")
	f.seedTenant(t, "Unassigned")
	f.seedApartment(t, first.ID, 100000)
	f.seedApartment(t, second.ID, 120000)
	f.seedRentPayment(t, first.ID, 100000, 2025, 1, time.Date(2025, time.January, 3, 0, 0, 0, 0, time.UTC))
	f.seedRentPayment(t, second.ID, 60000, 2025, 2, time.Date(2025, time.February, 4, 0, 0, 0, 0, time.UTC))

	summary, err := f.service.Summary(context.Background(), domain.SummaryRequest{Year: 2025})
	require.NoError(t, err)
	require.Equal(t, []int{1, 2}, summary.Periods)
	require.Equal(t, int64(440000), summary.TotalDueCents)
	require.Equal(t, int64(160000), summary.TotalPaidCents)
	require.Equal(t, int64(280000), summary.BalanceCents)
	require.Equal(t, 1, summary.PaidCount)
	require.Equal(t, 1, summary.PartialCount)
	require.Equal(t, 2, summary.UnpaidCount)

	var wantDue int64
	for _, tenant := range []snowflake.ID{first.ID, second.ID} {
		for _, month := range summary.Periods {
			invoice, err := f.service.Invoice(context.Background(), domain.InvoiceRequest{
				TenantID: tenant.String(),
				Year:     2025,
				Month:    month,
			})
			require.NoError(t, err)
			wantDue += invoice.RentAmountCents
		}
	}
	require.Equal(t, wantDue, summary.TotalDueCents)
}

func TestPeriodsAdvanceAsClockMoves(t *testing.T) {
	today := time.Date(2025, time.January, 31, 9, 0, 0, 0, time.UTC)
	f := newFixture(t, today)

	periods, err := f.service.Periods(context.Background(), domain.PeriodsRequest{Year: 2025})
	require.NoError(t, err)
	require.Equal(t, []int{1}, periods.Periods)

	f.clock.Advance(24 * time.Hour)

	periods, err = f.service.Periods(context.Background(), domain.PeriodsRequest{Year: 2025})
	require.NoError(t, err)
	require.Equal(t, []int{1, 2}, periods.Periods)
}
