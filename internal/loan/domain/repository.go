package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/parima/rentledger/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, loan *Loan) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Loan, error)
	List(ctx context.Context, db *gorm.DB, filter ListLoanFilter, page pagination.Pagination) ([]*Loan, error)
}
