package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Loan records a principal advanced to a tenant. Repayments are
// loan-type rent payments; the outstanding balance is derived, never
// stored.
type Loan struct {
	ID             snowflake.ID `gorm:"primaryKey" json:"id"`
	TenantID       snowflake.ID `gorm:"not null;index" json:"tenant_id"`
	PrincipalCents int64        `gorm:"not null" json:"principal_cents"`
	IssuedOn       time.Time    `gorm:"not null" json:"issued_on"`
	Note           string       `json:"note,omitempty"`
	CreatedAt      time.Time    `gorm:"not null" json:"created_at"`
}

func (Loan) TableName() string {
	return "loans"
}
