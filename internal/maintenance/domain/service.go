package domain

import (
	"context"
	"errors"
	"time"

	"github.com/parima/rentledger/pkg/db/pagination"
)

type CreateChargeRequest struct {
	TenantID    string
	CostCents   int64
	CostType    string
	OccurredOn  *time.Time
	Description string
	Metadata    map[string]any
}

type ListChargeRequest struct {
	PageToken string
	PageSize  int32
	TenantID  string
	CostType  string
}

type ListChargeFilter struct {
	TenantID string
	CostType string
}

type ListChargeResponse struct {
	pagination.PageInfo
	Charges []MaintenanceCharge `json:"charges"`
}

type GetChargeRequest struct {
	ID string
}

type Service interface {
	Create(context.Context, CreateChargeRequest) (MaintenanceCharge, error)
	List(context.Context, ListChargeRequest) (ListChargeResponse, error)
	GetByID(context.Context, GetChargeRequest) (MaintenanceCharge, error)
}

var (
	ErrInvalidTenantID = errors.New("invalid_tenant_id")
	ErrInvalidCost     = errors.New("invalid_cost")
	ErrInvalidCostType = errors.New("invalid_cost_type")
	ErrInvalidID       = errors.New("invalid_id")
	ErrNotFound        = errors.New("not_found")
)
