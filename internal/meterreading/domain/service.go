package domain

import (
	"context"
	"errors"
	"time"

	"github.com/parima/rentledger/pkg/db/pagination"
)

type CreateReadingRequest struct {
	ApartmentID string
	ReadingDate *time.Time
	EBSReading  int64
	SWMReading  int64
}

type ListReadingRequest struct {
	PageToken   string
	PageSize    int32
	ApartmentID string
}

type ListReadingFilter struct {
	ApartmentID string
}

type ListReadingResponse struct {
	pagination.PageInfo
	Readings []MeterReading `json:"readings"`
}

type Service interface {
	Create(context.Context, CreateReadingRequest) (MeterReading, error)
	List(context.Context, ListReadingRequest) (ListReadingResponse, error)
}

var (
	ErrInvalidApartmentID = errors.New("invalid_apartment_id")
	ErrInvalidReading     = errors.New("invalid_reading")
	ErrDuplicateReading   = errors.New("duplicate_reading")
	ErrNotFound           = errors.New("not_found")
)
