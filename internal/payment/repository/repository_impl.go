package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/parima/rentledger/internal/payment/domain"
	"github.com/parima/rentledger/pkg/db/option"
	"github.com/parima/rentledger/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, payment *domain.RentPayment) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO rent_payments (id, tenant_id, amount_cents, payment_type, period_month, period_year, payment_date, note, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		payment.ID,
		payment.TenantID,
		payment.AmountCents,
		payment.PaymentType,
		payment.PeriodMonth,
		payment.PeriodYear,
		payment.PaymentDate,
		payment.Note,
		payment.CreatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.RentPayment, error) {
	var payment domain.RentPayment
	err := db.WithContext(ctx).Raw(
		`SELECT id, tenant_id, amount_cents, payment_type, period_month, period_year, payment_date, note, created_at
		 FROM rent_payments WHERE id = ?`,
		id,
	).Scan(&payment).Error
	if err != nil {
		return nil, err
	}
	if payment.ID == 0 {
		return nil, nil
	}
	return &payment, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListPaymentFilter, page pagination.Pagination) ([]*domain.RentPayment, error) {
	var payments []*domain.RentPayment
	stmt := db.WithContext(ctx).Model(&domain.RentPayment{})
	if filter.TenantID != "" {
		stmt = stmt.Where("tenant_id = ?", filter.TenantID)
	}
	if filter.PaymentType != "" {
		stmt = stmt.Where("payment_type = ?", filter.PaymentType)
	}
	if filter.PeriodYear != 0 {
		stmt = stmt.Where("period_year = ?", filter.PeriodYear)
	}
	stmt = option.ApplyPagination(page).Apply(stmt)
	err := stmt.
		Order("created_at desc, id desc").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}
