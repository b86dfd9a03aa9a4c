package domain

import (
	"context"
	"errors"
	"time"

	"github.com/parima/rentledger/pkg/db/pagination"
)

type CreateLoanRequest struct {
	TenantID       string
	PrincipalCents int64
	IssuedOn       *time.Time
	Note           string
}

type ListLoanRequest struct {
	PageToken string
	PageSize  int32
	TenantID  string
}

type ListLoanFilter struct {
	TenantID string
}

type ListLoanResponse struct {
	pagination.PageInfo
	Loans []Loan `json:"loans"`
}

type GetLoanRequest struct {
	ID string
}

type Service interface {
	Create(context.Context, CreateLoanRequest) (Loan, error)
	List(context.Context, ListLoanRequest) (ListLoanResponse, error)
	GetByID(context.Context, GetLoanRequest) (Loan, error)
}

var (
	ErrInvalidTenantID  = errors.New("invalid_tenant_id")
	ErrInvalidPrincipal = errors.New("invalid_principal")
	ErrInvalidID        = errors.New("invalid_id")
	ErrNotFound         = errors.New("not_found")
)
