package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/parima/rentledger/internal/maintenance/domain"
	"github.com/parima/rentledger/pkg/db/option"
	"github.com/parima/rentledger/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, charge *domain.MaintenanceCharge) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO maintenance_charges (id, tenant_id, cost_cents, cost_type, occurred_on, description, metadata, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		charge.ID,
		charge.TenantID,
		charge.CostCents,
		charge.CostType,
		charge.OccurredOn,
		charge.Description,
		charge.Metadata,
		charge.CreatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.MaintenanceCharge, error) {
	var charge domain.MaintenanceCharge
	err := db.WithContext(ctx).Raw(
		`SELECT id, tenant_id, cost_cents, cost_type, occurred_on, description, metadata, created_at
		 FROM maintenance_charges WHERE id = ?`,
		id,
	).Scan(&charge).Error
	if err != nil {
		return nil, err
	}
	if charge.ID == 0 {
		return nil, nil
	}
	return &charge, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListChargeFilter, page pagination.Pagination) ([]*domain.MaintenanceCharge, error) {
	var charges []*domain.MaintenanceCharge
	stmt := db.WithContext(ctx).Model(&domain.MaintenanceCharge{})
	if filter.TenantID != "" {
		stmt = stmt.Where("tenant_id = ?", filter.TenantID)
	}
	if filter.CostType != "" {
		stmt = stmt.Where("cost_type = ?", filter.CostType)
	}
	stmt = option.ApplyPagination(page).Apply(stmt)
	err := stmt.
		Order("created_at desc, id desc").
		Find(&charges).Error
	if err != nil {
		return nil, err
	}
	return charges, nil
}
