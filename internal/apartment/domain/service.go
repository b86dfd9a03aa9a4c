package domain

import (
	"context"
	"errors"

	"github.com/parima/rentledger/pkg/db/pagination"
)

type CreateApartmentRequest struct {
	Label           string
	RentAmountCents int64
	Currency        string
}

type ListApartmentRequest struct {
	PageToken    string
	PageSize     int32
	TenantID     string
	AssignedOnly bool
}

type ListApartmentFilter struct {
	TenantID     string
	AssignedOnly bool
}

type ListApartmentResponse struct {
	pagination.PageInfo
	Apartments []Apartment `json:"apartments"`
}

type GetApartmentRequest struct {
	ID string
}

type AssignTenantRequest struct {
	ApartmentID string
	TenantID    string
}

type UnassignTenantRequest struct {
	ApartmentID string
}

type UpdateRentRequest struct {
	ApartmentID     string
	RentAmountCents int64
}

type Service interface {
	Create(context.Context, CreateApartmentRequest) (Apartment, error)
	List(context.Context, ListApartmentRequest) (ListApartmentResponse, error)
	GetByID(context.Context, GetApartmentRequest) (Apartment, error)
	AssignTenant(context.Context, AssignTenantRequest) (Apartment, error)
	UnassignTenant(context.Context, UnassignTenantRequest) (Apartment, error)
	UpdateRent(context.Context, UpdateRentRequest) (Apartment, error)
}

var (
	ErrInvalidLabel    = errors.New("invalid_label")
	ErrInvalidRent     = errors.New("invalid_rent_amount")
	ErrInvalidID       = errors.New("invalid_id")
	ErrInvalidTenantID = errors.New("invalid_tenant_id")
	ErrNotFound        = errors.New("not_found")
	ErrTenantAssigned  = errors.New("tenant_already_assigned")
)
