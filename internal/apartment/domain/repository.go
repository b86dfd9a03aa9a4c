package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/parima/rentledger/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, apartment *Apartment) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Apartment, error)
	FindByTenantID(ctx context.Context, db *gorm.DB, tenantID snowflake.ID) (*Apartment, error)
	List(ctx context.Context, db *gorm.DB, filter ListApartmentFilter, page pagination.Pagination) ([]*Apartment, error)
	Update(ctx context.Context, db *gorm.DB, apartment *Apartment) error
}
