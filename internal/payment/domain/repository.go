package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/parima/rentledger/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, payment *RentPayment) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*RentPayment, error)
	List(ctx context.Context, db *gorm.DB, filter ListPaymentFilter, page pagination.Pagination) ([]*RentPayment, error)
}
