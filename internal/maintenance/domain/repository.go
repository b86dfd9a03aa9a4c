package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/parima/rentledger/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, charge *MaintenanceCharge) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*MaintenanceCharge, error)
	List(ctx context.Context, db *gorm.DB, filter ListChargeFilter, page pagination.Pagination) ([]*MaintenanceCharge, error)
}
