package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// MeterReading captures the cumulative EBS (electricity) and SWM
// (water) counters for a unit at a point in time. Consumption is the
// delta against the previous reading for the same apartment. At most
// one reading per apartment per date.
type MeterReading struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	ApartmentID snowflake.ID `gorm:"not null;uniqueIndex:idx_meter_readings_apartment_date" json:"apartment_id"`
	ReadingDate time.Time    `gorm:"not null;uniqueIndex:idx_meter_readings_apartment_date" json:"reading_date"`
	EBSReading  int64        `gorm:"column:ebs_reading;not null" json:"ebs_reading"`
	SWMReading  int64        `gorm:"column:swm_reading;not null" json:"swm_reading"`
	CreatedAt   time.Time    `gorm:"not null" json:"created_at"`
}

func (MeterReading) TableName() string {
	return "meter_readings"
}
