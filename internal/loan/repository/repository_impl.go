package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/parima/rentledger/internal/loan/domain"
	"github.com/parima/rentledger/pkg/db/option"
	"github.com/parima/rentledger/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, loan *domain.Loan) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO loans (id, tenant_id, principal_cents, issued_on, note, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		loan.ID,
		loan.TenantID,
		loan.PrincipalCents,
		loan.IssuedOn,
		loan.Note,
		loan.CreatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Loan, error) {
	var loan domain.Loan
	err := db.WithContext(ctx).Raw(
		`SELECT id, tenant_id, principal_cents, issued_on, note, created_at
		 FROM loans WHERE id = ?`,
		id,
	).Scan(&loan).Error
	if err != nil {
		return nil, err
	}
	if loan.ID == 0 {
		return nil, nil
	}
	return &loan, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListLoanFilter, page pagination.Pagination) ([]*domain.Loan, error) {
	var loans []*domain.Loan
	stmt := db.WithContext(ctx).Model(&domain.Loan{})
	if filter.TenantID != "" {
		stmt = stmt.Where("tenant_id = ?", filter.TenantID)
	}
	stmt = option.ApplyPagination(page).Apply(stmt)
	err := stmt.
		Order("created_at desc, id desc").
		Find(&loans).Error
	if err != nil {
		return nil, err
	}
	return loans, nil
}
