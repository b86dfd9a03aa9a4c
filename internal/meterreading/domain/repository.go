package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/parima/rentledger/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, reading *MeterReading) error
	List(ctx context.Context, db *gorm.DB, filter ListReadingFilter, page pagination.Pagination) ([]*MeterReading, error)
	ListByApartment(ctx context.Context, db *gorm.DB, apartmentID snowflake.ID) ([]*MeterReading, error)
}
