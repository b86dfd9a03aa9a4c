package domain

import (
	"context"
	"errors"

	"github.com/parima/rentledger/pkg/db/pagination"
)

type CreateTenantRequest struct {
	Name  string
	Email string
	Phone string
}

type ListTenantRequest struct {
	PageToken string
	PageSize  int32
	Name      string
}

type ListTenantFilter struct {
	Name string
}

type ListTenantResponse struct {
	pagination.PageInfo
	Tenants []Tenant `json:"tenants"`
}

type GetTenantRequest struct {
	ID string
}

type DeleteTenantRequest struct {
	ID string
}

type Service interface {
	Create(context.Context, CreateTenantRequest) (Tenant, error)
	List(context.Context, ListTenantRequest) (ListTenantResponse, error)
	GetByID(context.Context, GetTenantRequest) (Tenant, error)
	Delete(context.Context, DeleteTenantRequest) error
}

var (
	ErrInvalidName = errors.New("invalid_name")
	ErrInvalidID   = errors.New("invalid_id")
	ErrNotFound    = errors.New("not_found")
)
