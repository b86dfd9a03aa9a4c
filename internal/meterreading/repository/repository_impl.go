package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/parima/rentledger/internal/meterreading/domain"
	"github.com/parima/rentledger/pkg/db/option"
	"github.com/parima/rentledger/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, reading *domain.MeterReading) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO meter_readings (id, apartment_id, reading_date, ebs_reading, swm_reading, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		reading.ID,
		reading.ApartmentID,
		reading.ReadingDate,
		reading.EBSReading,
		reading.SWMReading,
		reading.CreatedAt,
	).Error
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListReadingFilter, page pagination.Pagination) ([]*domain.MeterReading, error) {
	var readings []*domain.MeterReading
	stmt := db.WithContext(ctx).Model(&domain.MeterReading{})
	if filter.ApartmentID != "" {
		stmt = stmt.Where("apartment_id = ?", filter.ApartmentID)
	}
	stmt = option.ApplyPagination(page).Apply(stmt)
	err := stmt.
		Order("created_at desc, id desc").
		Find(&readings).Error
	if err != nil {
		return nil, err
	}
	return readings, nil
}

// ListByApartment returns the full reading history in chronological
// order, which the delta computation depends on.
func (r *repo) ListByApartment(ctx context.Context, db *gorm.DB, apartmentID snowflake.ID) ([]*domain.MeterReading, error) {
	var readings []*domain.MeterReading
	err := db.WithContext(ctx).
		Model(&domain.MeterReading{}).
		Where("apartment_id = ?", apartmentID).
		Order("reading_date asc, id asc").
		Find(&readings).Error
	if err != nil {
		return nil, err
	}
	return readings, nil
}
