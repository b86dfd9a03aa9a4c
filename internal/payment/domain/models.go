package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type PaymentType string

const (
	PaymentTypeRent PaymentType = "rent"
	PaymentTypeLoan PaymentType = "loan"
)

// RentPayment is append-only. A tenant may post zero, one, or many
// payments against the same period; split payments sum downstream.
type RentPayment struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	TenantID    snowflake.ID `gorm:"not null;index" json:"tenant_id"`
	AmountCents int64        `gorm:"not null" json:"amount_cents"`
	PaymentType PaymentType  `gorm:"not null;default:rent" json:"payment_type"`
	PeriodMonth int          `gorm:"not null" json:"period_month"`
	PeriodYear  int          `gorm:"not null" json:"period_year"`
	PaymentDate time.Time    `gorm:"not null" json:"payment_date"`
	Note        string       `json:"note,omitempty"`
	CreatedAt   time.Time    `gorm:"not null" json:"created_at"`
}

func (RentPayment) TableName() string {
	return "rent_payments"
}
