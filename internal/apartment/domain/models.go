package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Apartment carries the current lease binding. TenantID is nil while
// the unit is unassigned; unassigned units are excluded from billing.
type Apartment struct {
	ID              snowflake.ID  `gorm:"primaryKey" json:"id"`
	Label           string        `gorm:"not null" json:"label"`
	TenantID        *snowflake.ID `gorm:"index" json:"tenant_id,omitempty"`
	RentAmountCents int64         `gorm:"not null;default:0" json:"rent_amount_cents"`
	Currency        string        `gorm:"not null;default:SRD" json:"currency"`
	CreatedAt       time.Time     `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time     `gorm:"not null" json:"updated_at"`
}

func (Apartment) TableName() string {
	return "apartments"
}
