package domain

import (
	"sort"
	"time"

	"github.com/bwmarrin/snowflake"
	apartmentdomain "github.com/parima/rentledger/internal/apartment/domain"
	maintenancedomain "github.com/parima/rentledger/internal/maintenance/domain"
	paymentdomain "github.com/parima/rentledger/internal/payment/domain"
)

// PeriodsToDisplay enumerates the months of a year worth rendering.
// Past years show all twelve months. The current year runs through
// the current month, extended by any later month that already has a
// rent payment posted against it. Future years show only months with
// payments. The result depends only on (year, today, payments).
func PeriodsToDisplay(year int, today time.Time, payments []paymentdomain.RentPayment) []int {
	included := make(map[int]bool, 12)

	switch {
	case year < today.Year():
		for m := 1; m <= 12; m++ {
			included[m] = true
		}
	case year == today.Year():
		for m := 1; m <= int(today.Month()); m++ {
			included[m] = true
		}
	}

	for _, p := range payments {
		if p.PaymentType != paymentdomain.PaymentTypeRent {
			continue
		}
		if p.PeriodYear == year && p.PeriodMonth >= 1 && p.PeriodMonth <= 12 {
			included[p.PeriodMonth] = true
		}
	}

	months := make([]int, 0, len(included))
	for m := range included {
		months = append(months, m)
	}
	sort.Ints(months)
	return months
}

// DeriveInvoice computes one tenant's billing state for one period
// from the raw record snapshot. It never fails: a tenant with no
// apartment derives a zero-rent snapshot rather than an error.
func DeriveInvoice(tenantID snowflake.ID, year, month int, rs RecordSet) InvoiceSnapshot {
	snapshot := InvoiceSnapshot{
		TenantID: tenantID,
		Year:     year,
		Month:    month,
		Payments: []paymentdomain.RentPayment{},
		Charges:  []maintenancedomain.MaintenanceCharge{},
	}

	if apt := currentApartment(tenantID, rs.Apartments); apt != nil {
		snapshot.RentAmountCents = apt.RentAmountCents
	}

	var loanPrincipal, loanPaidAllTime int64
	for _, l := range rs.Loans {
		if l.TenantID == tenantID {
			loanPrincipal += l.PrincipalCents
		}
	}

	for _, p := range rs.Payments {
		if p.TenantID != tenantID {
			continue
		}
		switch p.PaymentType {
		case paymentdomain.PaymentTypeRent:
			if p.PeriodYear == year && p.PeriodMonth == month {
				snapshot.TotalPaidCents += p.AmountCents
				snapshot.Payments = append(snapshot.Payments, p)
			}
		case paymentdomain.PaymentTypeLoan:
			loanPaidAllTime += p.AmountCents
			if inPeriod(p.PaymentDate, year, month) {
				snapshot.LoanPaymentsCents += p.AmountCents
			}
		}
	}

	for _, c := range rs.Charges {
		if c.TenantID != tenantID || c.CostType != maintenancedomain.CostTypeTenant {
			continue
		}
		if inPeriod(c.OccurredOn, year, month) {
			snapshot.MaintenanceCostCents += c.CostCents
			snapshot.Charges = append(snapshot.Charges, c)
		}
	}

	snapshot.RemainingCents = snapshot.RentAmountCents - snapshot.TotalPaidCents
	if snapshot.RemainingCents < 0 {
		snapshot.RemainingCents = 0
	}

	snapshot.LoanBalanceCents = loanPrincipal - loanPaidAllTime
	if snapshot.LoanBalanceCents < 0 {
		snapshot.LoanBalanceCents = 0
	}

	// Tie-break order matters: a zero-rent tenant is paid, not unpaid.
	switch {
	case snapshot.TotalPaidCents >= snapshot.RentAmountCents:
		snapshot.Status = StatusPaid
	case snapshot.TotalPaidCents > 0:
		snapshot.Status = StatusPartial
	default:
		snapshot.Status = StatusUnpaid
	}

	return snapshot
}

// ComputeCumulativeBalance walks every period from (baselineYear,
// January) through (throughYear, throughMonth) in chronological
// order, charging the lease's current rent retroactively against
// every walked period. There is no historical rent tracking; that is
// a known simplification carried on purpose.
//
// Paid sums every rent payment posted against any period of the
// walked years, so a payment posted early for a later month surfaces
// as credit rather than disappearing.
func ComputeCumulativeBalance(tenantID snowflake.ID, baselineYear, throughYear, throughMonth int, rentAmountCents int64, payments []paymentdomain.RentPayment) CumulativeBalance {
	balance := CumulativeBalance{
		TenantID:     tenantID,
		ThroughYear:  throughYear,
		ThroughMonth: throughMonth,
	}

	for year := baselineYear; year <= throughYear; year++ {
		lastMonth := 12
		if year == throughYear {
			lastMonth = throughMonth
		}
		for month := 1; month <= lastMonth; month++ {
			balance.TotalDueCents += rentAmountCents
		}
	}

	for _, p := range payments {
		if p.TenantID != tenantID || p.PaymentType != paymentdomain.PaymentTypeRent {
			continue
		}
		if p.PeriodYear >= baselineYear && p.PeriodYear <= throughYear {
			balance.TotalPaidCents += p.AmountCents
		}
	}

	balance.BalanceCents = balance.TotalDueCents - balance.TotalPaidCents
	return balance
}

// ComputeYearSummary derives one invoice per (active tenant, period)
// cell and accumulates portfolio totals. A tenant without an
// apartment is not an active cell.
func ComputeYearSummary(year int, periods []int, rs RecordSet) YearSummary {
	summary := YearSummary{
		Year:    year,
		Periods: periods,
	}

	for _, tenant := range rs.Tenants {
		if currentApartment(tenant.ID, rs.Apartments) == nil {
			continue
		}
		for _, month := range periods {
			invoice := DeriveInvoice(tenant.ID, year, month, rs)
			summary.TotalDueCents += invoice.RentAmountCents
			summary.TotalPaidCents += invoice.TotalPaidCents
			switch invoice.Status {
			case StatusPaid:
				summary.PaidCount++
			case StatusPartial:
				summary.PartialCount++
			default:
				summary.UnpaidCount++
			}
		}
	}

	summary.BalanceCents = summary.TotalDueCents - summary.TotalPaidCents
	return summary
}

func currentApartment(tenantID snowflake.ID, apartments []apartmentdomain.Apartment) *apartmentdomain.Apartment {
	for i := range apartments {
		if apartments[i].TenantID != nil && *apartments[i].TenantID == tenantID {
			return &apartments[i]
		}
	}
	return nil
}

func inPeriod(t time.Time, year, month int) bool {
	if t.IsZero() {
		return false
	}
	u := t.UTC()
	return u.Year() == year && int(u.Month()) == month
}
