package domain

import (
	"context"
	"errors"
	"time"

	"github.com/parima/rentledger/pkg/db/pagination"
)

type CreatePaymentRequest struct {
	TenantID    string
	AmountCents int64
	PaymentType string
	PeriodMonth int
	PeriodYear  int
	PaymentDate *time.Time
	Note        string
}

type ListPaymentRequest struct {
	PageToken   string
	PageSize    int32
	TenantID    string
	PaymentType string
	PeriodYear  int
}

type ListPaymentFilter struct {
	TenantID    string
	PaymentType string
	PeriodYear  int
}

type ListPaymentResponse struct {
	pagination.PageInfo
	Payments []RentPayment `json:"payments"`
}

type GetPaymentRequest struct {
	ID string
}

type Service interface {
	Create(context.Context, CreatePaymentRequest) (RentPayment, error)
	List(context.Context, ListPaymentRequest) (ListPaymentResponse, error)
	GetByID(context.Context, GetPaymentRequest) (RentPayment, error)
}

var (
	ErrInvalidTenantID = errors.New("invalid_tenant_id")
	ErrInvalidAmount   = errors.New("invalid_amount")
	ErrInvalidType     = errors.New("invalid_payment_type")
	ErrInvalidPeriod   = errors.New("invalid_period")
	ErrInvalidID       = errors.New("invalid_id")
	ErrNotFound        = errors.New("not_found")
)
