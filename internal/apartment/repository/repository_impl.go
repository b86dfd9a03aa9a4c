package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/parima/rentledger/internal/apartment/domain"
	"github.com/parima/rentledger/pkg/db/option"
	"github.com/parima/rentledger/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, apartment *domain.Apartment) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO apartments (id, label, tenant_id, rent_amount_cents, currency, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		apartment.ID,
		apartment.Label,
		apartment.TenantID,
		apartment.RentAmountCents,
		apartment.Currency,
		apartment.CreatedAt,
		apartment.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Apartment, error) {
	var apartment domain.Apartment
	err := db.WithContext(ctx).Raw(
		`SELECT id, label, tenant_id, rent_amount_cents, currency, created_at, updated_at
		 FROM apartments WHERE id = ?`,
		id,
	).Scan(&apartment).Error
	if err != nil {
		return nil, err
	}
	if apartment.ID == 0 {
		return nil, nil
	}
	return &apartment, nil
}

func (r *repo) FindByTenantID(ctx context.Context, db *gorm.DB, tenantID snowflake.ID) (*domain.Apartment, error) {
	var apartment domain.Apartment
	err := db.WithContext(ctx).Raw(
		`SELECT id, label, tenant_id, rent_amount_cents, currency, created_at, updated_at
		 FROM apartments WHERE tenant_id = ?`,
		tenantID,
	).Scan(&apartment).Error
	if err != nil {
		return nil, err
	}
	if apartment.ID == 0 {
		return nil, nil
	}
	return &apartment, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListApartmentFilter, page pagination.Pagination) ([]*domain.Apartment, error) {
	var apartments []*domain.Apartment
	stmt := db.WithContext(ctx).Model(&domain.Apartment{})
	if filter.TenantID != "" {
		stmt = stmt.Where("tenant_id = ?", filter.TenantID)
	}
	if filter.AssignedOnly {
		stmt = stmt.Where("tenant_id IS NOT NULL")
	}
	stmt = option.ApplyPagination(page).Apply(stmt)
	err := stmt.
		Order("created_at desc, id desc").
		Find(&apartments).Error
	if err != nil {
		return nil, err
	}
	return apartments, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, apartment *domain.Apartment) error {
	return db.WithContext(ctx).Exec(
		`UPDATE apartments
		 SET label = ?, tenant_id = ?, rent_amount_cents = ?, currency = ?, updated_at = ?
		 WHERE id = ?`,
		apartment.Label,
		apartment.TenantID,
		apartment.RentAmountCents,
		apartment.Currency,
		apartment.UpdatedAt,
		apartment.ID,
	).Error
}
