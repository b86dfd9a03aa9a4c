package domain

import (
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	apartmentdomain "github.com/parima/rentledger/internal/apartment/domain"
	loandomain "github.com/parima/rentledger/internal/loan/domain"
	maintenancedomain "github.com/parima/rentledger/internal/maintenance/domain"
	paymentdomain "github.com/parima/rentledger/internal/payment/domain"
	tenantdomain "github.com/parima/rentledger/internal/tenant/domain"
	"github.com/stretchr/testify/require"
)

var (
	tenantA = snowflake.ID(1001)
	tenantB = snowflake.ID(1002)
)

func rentPayment(tenantID snowflake.ID, amountCents int64, year, month int, paidOn time.Time) paymentdomain.RentPayment {
	return paymentdomain.RentPayment{
		ID:          snowflake.ID(paidOn.UnixNano()),
		TenantID:    tenantID,
		AmountCents: amountCents,
		PaymentType: paymentdomain.PaymentTypeRent,
		PeriodYear:  year,
		PeriodMonth: month,
		PaymentDate: paidOn,
	}
}

func loanPayment(tenantID snowflake.ID, amountCents int64, paidOn time.Time) paymentdomain.RentPayment {
	return paymentdomain.RentPayment{
		ID:          snowflake.ID(paidOn.UnixNano() + 1),
		TenantID:    tenantID,
		AmountCents: amountCents,
		PaymentType: paymentdomain.PaymentTypeLoan,
		PaymentDate: paidOn,
	}
}

func assignedApartment(id, tenantID snowflake.ID, rentCents int64) apartmentdomain.Apartment {
	tid := tenantID
	return apartmentdomain.Apartment{
		ID:              id,
		Label:           "unit",
		TenantID:        &tid,
		RentAmountCents: rentCents,
	}
}

func charge(tenantID snowflake.ID, costCents int64, costType maintenancedomain.CostType, on time.Time) maintenancedomain.MaintenanceCharge {
	return maintenancedomain.MaintenanceCharge{
		ID:         snowflake.ID(on.UnixNano() + 2),
		TenantID:   tenantID,
		CostCents:  costCents,
		CostType:   costType,
		OccurredOn: on,
	}
}

func date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 12, 0, 0, 0, time.UTC)
}

func TestPeriodsToDisplayPastYear(t *testing.T) {
	today := date(2025, 6, 15)
	periods := PeriodsToDisplay(2024, today, nil)
	require.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}, periods)
}

func TestPeriodsToDisplayCurrentYear(t *testing.T) {
	today := date(2025, 4, 10)
	periods := PeriodsToDisplay(2025, today, nil)
	require.Equal(t, []int{1, 2, 3, 4}, periods)
}

func TestPeriodsToDisplayExtendsForAdvancePayments(t *testing.T) {
	today := date(2025, 2, 20)
	payments := []paymentdomain.RentPayment{
		rentPayment(tenantA, 100000, 2025, 3, date(2025, 2, 18)),
		rentPayment(tenantA, 100000, 2025, 7, date(2025, 2, 19)),
	}
	periods := PeriodsToDisplay(2025, today, payments)
	require.Equal(t, []int{1, 2, 3, 7}, periods)
}

func TestPeriodsToDisplayFutureYear(t *testing.T) {
	today := date(2025, 11, 1)

	require.Empty(t, PeriodsToDisplay(2026, today, nil))

	payments := []paymentdomain.RentPayment{
		rentPayment(tenantA, 100000, 2026, 1, date(2025, 11, 1)),
	}
	require.Equal(t, []int{1}, PeriodsToDisplay(2026, today, payments))
}

func TestPeriodsToDisplayIgnoresLoanPayments(t *testing.T) {
	today := date(2025, 2, 1)
	payments := []paymentdomain.RentPayment{
		{TenantID: tenantA, AmountCents: 5000, PaymentType: paymentdomain.PaymentTypeLoan, PeriodYear: 2025, PeriodMonth: 9},
	}
	require.Equal(t, []int{1, 2}, PeriodsToDisplay(2025, today, payments))
}

func TestDeriveInvoiceIsDeterministic(t *testing.T) {
	rs := RecordSet{
		Apartments: []apartmentdomain.Apartment{assignedApartment(1, tenantA, 100000)},
		Payments: []paymentdomain.RentPayment{
			rentPayment(tenantA, 60000, 2025, 3, date(2025, 3, 5)),
			rentPayment(tenantA, 40000, 2025, 3, date(2025, 3, 20)),
		},
	}

	first := DeriveInvoice(tenantA, 2025, 3, rs)
	second := DeriveInvoice(tenantA, 2025, 3, rs)
	require.Equal(t, first, second)
}

func TestDeriveInvoiceSumsSplitPayments(t *testing.T) {
	rs := RecordSet{
		Apartments: []apartmentdomain.Apartment{assignedApartment(1, tenantA, 100000)},
		Payments: []paymentdomain.RentPayment{
			rentPayment(tenantA, 60000, 2025, 3, date(2025, 3, 5)),
			rentPayment(tenantA, 40000, 2025, 3, date(2025, 3, 20)),
			rentPayment(tenantA, 100000, 2025, 4, date(2025, 4, 1)), // other period
			rentPayment(tenantB, 50000, 2025, 3, date(2025, 3, 6)),  // other tenant
		},
	}

	invoice := DeriveInvoice(tenantA, 2025, 3, rs)
	require.Equal(t, int64(100000), invoice.TotalPaidCents)
	require.Equal(t, int64(0), invoice.RemainingCents)
	require.Equal(t, StatusPaid, invoice.Status)
	require.Len(t, invoice.Payments, 2)
}

func TestDeriveInvoiceStatusOrder(t *testing.T) {
	rs := RecordSet{
		Apartments: []apartmentdomain.Apartment{assignedApartment(1, tenantA, 100000)},
	}

	require.Equal(t, StatusUnpaid, DeriveInvoice(tenantA, 2025, 3, rs).Status)

	rs.Payments = []paymentdomain.RentPayment{rentPayment(tenantA, 1, 2025, 3, date(2025, 3, 1))}
	require.Equal(t, StatusPartial, DeriveInvoice(tenantA, 2025, 3, rs).Status)

	rs.Payments = []paymentdomain.RentPayment{rentPayment(tenantA, 100000, 2025, 3, date(2025, 3, 1))}
	require.Equal(t, StatusPaid, DeriveInvoice(tenantA, 2025, 3, rs).Status)
}

func TestDeriveInvoiceOverpaymentKeepsRemainingNonNegative(t *testing.T) {
	rs := RecordSet{
		Apartments: []apartmentdomain.Apartment{assignedApartment(1, tenantA, 100000)},
		Payments: []paymentdomain.RentPayment{
			rentPayment(tenantA, 150000, 2025, 3, date(2025, 3, 1)),
		},
	}

	invoice := DeriveInvoice(tenantA, 2025, 3, rs)
	require.Equal(t, int64(150000), invoice.TotalPaidCents)
	require.Equal(t, int64(0), invoice.RemainingCents)
	require.Equal(t, StatusPaid, invoice.Status)
}

func TestDeriveInvoiceZeroApartmentTenant(t *testing.T) {
	invoice := DeriveInvoice(tenantA, 2025, 3, RecordSet{})
	require.Equal(t, int64(0), invoice.RentAmountCents)
	require.Equal(t, int64(0), invoice.RemainingCents)
	require.Equal(t, StatusPaid, invoice.Status)
}

func TestDeriveInvoiceMaintenanceScoping(t *testing.T) {
	rs := RecordSet{
		Apartments: []apartmentdomain.Apartment{assignedApartment(1, tenantA, 100000)},
		Charges: []maintenancedomain.MaintenanceCharge{
			charge(tenantA, 5000, maintenancedomain.CostTypeTenant, date(2025, 3, 10)),
			charge(tenantA, 7000, maintenancedomain.CostTypeOwner, date(2025, 3, 12)),  // owner-absorbed
			charge(tenantA, 9000, maintenancedomain.CostTypeTenant, date(2025, 4, 2)),  // other period
			charge(tenantA, 1100, maintenancedomain.CostTypeTenant, time.Time{}),       // undated
			charge(tenantB, 3000, maintenancedomain.CostTypeTenant, date(2025, 3, 15)), // other tenant
		},
	}

	invoice := DeriveInvoice(tenantA, 2025, 3, rs)
	require.Equal(t, int64(5000), invoice.MaintenanceCostCents)
	require.Len(t, invoice.Charges, 1)
}

func TestDeriveInvoiceLoanFigures(t *testing.T) {
	rs := RecordSet{
		Apartments: []apartmentdomain.Apartment{assignedApartment(1, tenantA, 100000)},
		Loans: []loandomain.Loan{
			{ID: 1, TenantID: tenantA, PrincipalCents: 50000},
			{ID: 2, TenantID: tenantA, PrincipalCents: 30000},
		},
		Payments: []paymentdomain.RentPayment{
			loanPayment(tenantA, 20000, date(2025, 2, 10)),
			loanPayment(tenantA, 10000, date(2025, 3, 5)),
		},
	}

	invoice := DeriveInvoice(tenantA, 2025, 3, rs)
	// Balance is all-time; this month's repayments match by payment
	// date, not by period fields.
	require.Equal(t, int64(50000), invoice.LoanBalanceCents)
	require.Equal(t, int64(10000), invoice.LoanPaymentsCents)
}

func TestDeriveInvoiceLoanBalanceFlooredAtZero(t *testing.T) {
	rs := RecordSet{
		Loans: []loandomain.Loan{
			{ID: 1, TenantID: tenantA, PrincipalCents: 10000},
		},
		Payments: []paymentdomain.RentPayment{
			loanPayment(tenantA, 25000, date(2025, 1, 10)),
		},
	}

	invoice := DeriveInvoice(tenantA, 2025, 3, rs)
	require.Equal(t, int64(0), invoice.LoanBalanceCents)
}

func TestCumulativeBalanceArrears(t *testing.T) {
	payments := []paymentdomain.RentPayment{
		rentPayment(tenantA, 100000, 2025, 1, date(2025, 1, 3)),
		rentPayment(tenantA, 100000, 2025, 2, date(2025, 2, 3)),
	}

	balance := ComputeCumulativeBalance(tenantA, 2025, 2025, 3, 100000, payments)
	require.Equal(t, int64(300000), balance.TotalDueCents)
	require.Equal(t, int64(200000), balance.TotalPaidCents)
	require.Equal(t, int64(100000), balance.BalanceCents)
}

func TestCumulativeBalanceAdvancePaymentIsCredit(t *testing.T) {
	// The March period payment was posted in February; through
	// February it must surface as credit, not vanish.
	payments := []paymentdomain.RentPayment{
		rentPayment(tenantA, 100000, 2025, 1, date(2025, 1, 3)),
		rentPayment(tenantA, 100000, 2025, 2, date(2025, 2, 3)),
		rentPayment(tenantA, 100000, 2025, 3, date(2025, 2, 15)),
	}

	balance := ComputeCumulativeBalance(tenantA, 2025, 2025, 2, 100000, payments)
	require.Equal(t, int64(200000), balance.TotalDueCents)
	require.Equal(t, int64(300000), balance.TotalPaidCents)
	require.Equal(t, int64(-100000), balance.BalanceCents)

	periods := PeriodsToDisplay(2025, date(2025, 2, 20), payments)
	require.Contains(t, periods, 3)
}

func TestCumulativeBalanceSpansYears(t *testing.T) {
	balance := ComputeCumulativeBalance(tenantA, 2024, 2025, 2, 100000, nil)
	require.Equal(t, int64(1400000), balance.TotalDueCents) // 14 months
	require.Equal(t, int64(1400000), balance.BalanceCents)
}

func TestCumulativeBalanceAppliesCurrentRentRetroactively(t *testing.T) {
	// The walk has no historical rent tracking: today's rent prices
	// every past period. This is intentional, not a bug.
	payments := []paymentdomain.RentPayment{
		rentPayment(tenantA, 80000, 2025, 1, date(2025, 1, 3)), // paid at the old rate
	}

	balance := ComputeCumulativeBalance(tenantA, 2025, 2025, 2, 100000, payments)
	require.Equal(t, int64(200000), balance.TotalDueCents)
	require.Equal(t, int64(80000), balance.TotalPaidCents)
	require.Equal(t, int64(120000), balance.BalanceCents)
}

func TestCumulativeBalanceIsMonotonicWhileUnpaid(t *testing.T) {
	var prev int64
	for month := 1; month <= 12; month++ {
		balance := ComputeCumulativeBalance(tenantA, 2025, 2025, month, 100000, nil)
		require.Greater(t, balance.BalanceCents, prev)
		prev = balance.BalanceCents
	}
}

func TestYearSummaryCounts(t *testing.T) {
	rs := RecordSet{
		Tenants: []tenantdomain.Tenant{
			{ID: tenantA, Name: "A"},
			{ID: tenantB, Name: "B"},
		},
		Apartments: []apartmentdomain.Apartment{
			assignedApartment(1, tenantA, 100000),
			assignedApartment(2, tenantB, 120000),
		},
		Payments: []paymentdomain.RentPayment{
			rentPayment(tenantA, 100000, 2025, 1, date(2025, 1, 3)),
			rentPayment(tenantA, 50000, 2025, 2, date(2025, 2, 3)),
			rentPayment(tenantB, 120000, 2025, 1, date(2025, 1, 5)),
		},
	}
	periods := []int{1, 2}

	summary := ComputeYearSummary(2025, periods, rs)
	require.Equal(t, int64(440000), summary.TotalDueCents)
	require.Equal(t, int64(270000), summary.TotalPaidCents)
	require.Equal(t, int64(170000), summary.BalanceCents)
	require.Equal(t, 2, summary.PaidCount)
	require.Equal(t, 1, summary.PartialCount)
	require.Equal(t, 1, summary.UnpaidCount)
}

func TestYearSummaryReconcilesWithInvoices(t *testing.T) {
	rs := RecordSet{
		Tenants: []tenantdomain.Tenant{
			{ID: tenantA, Name: "A"},
			{ID: tenantB, Name: "B"},
			{ID: snowflake.ID(1003), Name: "unassigned"},
		},
		Apartments: []apartmentdomain.Apartment{
			assignedApartment(1, tenantA, 100000),
			assignedApartment(2, tenantB, 90000),
		},
		Payments: []paymentdomain.RentPayment{
			rentPayment(tenantA, 100000, 2025, 1, date(2025, 1, 3)),
			rentPayment(tenantB, 45000, 2025, 2, date(2025, 2, 3)),
		},
	}
	periods := []int{1, 2, 3}

	summary := ComputeYearSummary(2025, periods, rs)

	var wantDue, wantPaid int64
	for _, tenant := range []snowflake.ID{tenantA, tenantB} {
		for _, month := range periods {
			invoice := DeriveInvoice(tenant, 2025, month, rs)
			wantDue += invoice.RentAmountCents
			wantPaid += invoice.TotalPaidCents
		}
	}
	require.Equal(t, wantDue, summary.TotalDueCents)
	require.Equal(t, wantPaid, summary.TotalPaidCents)
}

func TestYearSummarySkipsUnassignedTenants(t *testing.T) {
	rs := RecordSet{
		Tenants: []tenantdomain.Tenant{{ID: tenantA, Name: "A"}},
	}

	summary := ComputeYearSummary(2025, []int{1, 2}, rs)
	require.Equal(t, int64(0), summary.TotalDueCents)
	require.Equal(t, 0, summary.PaidCount+summary.PartialCount+summary.UnpaidCount)
}
