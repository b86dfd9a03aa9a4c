package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Utility string

const (
	UtilityEBS Utility = "ebs"
	UtilitySWM Utility = "swm"
)

// RateTier prices the usage slice [StartUsage, EndUsage). A nil
// EndUsage marks the open-ended top bracket.
type RateTier struct {
	StartUsage      int64  `mapstructure:"startUsage" json:"start_usage"`
	EndUsage        *int64 `mapstructure:"endUsage" json:"end_usage,omitempty"`
	UnitAmountCents int64  `mapstructure:"unitAmountCents" json:"unit_amount_cents"`
}

// TariffConfig holds one bracket table per utility.
type TariffConfig struct {
	EBS []RateTier `mapstructure:"ebs" json:"ebs"`
	SWM []RateTier `mapstructure:"swm" json:"swm"`
}

func (c TariffConfig) Tiers(utility Utility) []RateTier {
	switch utility {
	case UtilitySWM:
		return c.SWM
	default:
		return c.EBS
	}
}

// UtilityCost is the bracket-summed cost of one utility's consumption
// delta for a single reading.
type UtilityCost struct {
	Utility   Utility `json:"utility"`
	Usage     int64   `json:"usage"`
	CostCents int64   `json:"cost_cents"`
}

// ReadingCost pairs a stored reading with its derived costs. Nothing
// here is persisted; it is recomputed on every request.
type ReadingCost struct {
	ReadingID   snowflake.ID `json:"reading_id"`
	ReadingDate time.Time    `json:"reading_date"`
	EBS         UtilityCost  `json:"ebs"`
	SWM         UtilityCost  `json:"swm"`
}

type ApartmentUtilityCostsRequest struct {
	ApartmentID string
}

type ApartmentUtilityCostsResponse struct {
	ApartmentID snowflake.ID  `json:"apartment_id"`
	Costs       []ReadingCost `json:"costs"`
}

type Service interface {
	ApartmentUtilityCosts(context.Context, ApartmentUtilityCostsRequest) (ApartmentUtilityCostsResponse, error)
	Tables(context.Context) TariffConfig
}

var (
	ErrInvalidApartmentID = errors.New("invalid_apartment_id")
)
