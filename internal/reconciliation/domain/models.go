package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	apartmentdomain "github.com/parima/rentledger/internal/apartment/domain"
	loandomain "github.com/parima/rentledger/internal/loan/domain"
	maintenancedomain "github.com/parima/rentledger/internal/maintenance/domain"
	paymentdomain "github.com/parima/rentledger/internal/payment/domain"
	tenantdomain "github.com/parima/rentledger/internal/tenant/domain"
)

type Status string

const (
	StatusPaid    Status = "paid"
	StatusPartial Status = "partial"
	StatusUnpaid  Status = "unpaid"
)

// RecordSet is the point-in-time snapshot every derivation runs
// against. It is fetched once per request; writes landing after the
// fetch are invisible until the next one.
type RecordSet struct {
	Tenants    []tenantdomain.Tenant
	Apartments []apartmentdomain.Apartment
	Payments   []paymentdomain.RentPayment
	Charges    []maintenancedomain.MaintenanceCharge
	Loans      []loandomain.Loan
}

// InvoiceSnapshot is derived on every request and never persisted.
// Identical inputs must produce an identical snapshot.
type InvoiceSnapshot struct {
	TenantID snowflake.ID `json:"tenant_id"`
	Year     int          `json:"year"`
	Month    int          `json:"month"`

	RentAmountCents      int64  `json:"rent_amount_cents"`
	TotalPaidCents       int64  `json:"total_paid_cents"`
	RemainingCents       int64  `json:"remaining_cents"`
	MaintenanceCostCents int64  `json:"maintenance_cost_cents"`
	LoanBalanceCents     int64  `json:"loan_balance_cents"`
	LoanPaymentsCents    int64  `json:"loan_payments_cents"`
	Status               Status `json:"status"`

	Payments []paymentdomain.RentPayment           `json:"payments"`
	Charges  []maintenancedomain.MaintenanceCharge `json:"charges"`
}

// CumulativeBalance is signed: positive means arrears, negative means
// the tenant has prepaid.
type CumulativeBalance struct {
	TenantID     snowflake.ID `json:"tenant_id"`
	ThroughYear  int          `json:"through_year"`
	ThroughMonth int          `json:"through_month"`

	TotalDueCents  int64 `json:"total_due_cents"`
	TotalPaidCents int64 `json:"total_paid_cents"`
	BalanceCents   int64 `json:"balance_cents"`
}

// YearSummary aggregates every (tenant, period) invoice cell of a
// year. Its balance is a portfolio total, not a per-tenant arrears
// figure.
type YearSummary struct {
	Year    int   `json:"year"`
	Periods []int `json:"periods"`

	TotalDueCents  int64 `json:"total_due_cents"`
	TotalPaidCents int64 `json:"total_paid_cents"`
	BalanceCents   int64 `json:"balance_cents"`

	PaidCount    int `json:"paid_count"`
	PartialCount int `json:"partial_count"`
	UnpaidCount  int `json:"unpaid_count"`
}

type PeriodsRequest struct {
	Year int
}

type PeriodsResponse struct {
	Year    int   `json:"year"`
	Periods []int `json:"periods"`
}

type InvoiceRequest struct {
	TenantID string
	Year     int
	Month    int
}

type BalanceRequest struct {
	TenantID     string
	ThroughYear  int
	ThroughMonth int
	// BaselineYear overrides the configured walk start when positive.
	BaselineYear int
}

type SummaryRequest struct {
	Year int
}

type Service interface {
	Periods(context.Context, PeriodsRequest) (PeriodsResponse, error)
	Invoice(context.Context, InvoiceRequest) (InvoiceSnapshot, error)
	Balance(context.Context, BalanceRequest) (CumulativeBalance, error)
	Summary(context.Context, SummaryRequest) (YearSummary, error)
}

var (
	ErrInvalidTenantID = errors.New("invalid_tenant_id")
	ErrInvalidYear     = errors.New("invalid_year")
	ErrInvalidMonth    = errors.New("invalid_month")
)
