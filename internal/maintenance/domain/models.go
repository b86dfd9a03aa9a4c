package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type CostType string

const (
	// CostTypeTenant charges flow into the tenant's invoice for the
	// period the work occurred in.
	CostTypeTenant CostType = "tenant"
	// CostTypeOwner charges are absorbed by the property owner and
	// never billed.
	CostTypeOwner CostType = "owner"
)

type MaintenanceCharge struct {
	ID          snowflake.ID      `gorm:"primaryKey" json:"id"`
	TenantID    snowflake.ID      `gorm:"not null;index" json:"tenant_id"`
	CostCents   int64             `gorm:"not null" json:"cost_cents"`
	CostType    CostType          `gorm:"not null" json:"cost_type"`
	OccurredOn  time.Time         `gorm:"not null" json:"occurred_on"`
	Description string            `json:"description,omitempty"`
	Metadata    datatypes.JSONMap `json:"metadata,omitempty"`
	CreatedAt   time.Time         `gorm:"not null" json:"created_at"`
}

func (MaintenanceCharge) TableName() string {
	return "maintenance_charges"
}
