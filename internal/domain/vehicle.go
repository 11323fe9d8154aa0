package domain

import (
	"time"

	"fleetdesk/internal/billing"
)

type VehicleStatus string

const (
	VehicleAvailable   VehicleStatus = "available"
	VehicleRented      VehicleStatus = "rented"
	VehicleMaintenance VehicleStatus = "maintenance"
	VehicleRetired     VehicleStatus = "retired"
)

type Vehicle struct {
	ID           int64         `json:"id"`
	Registration string        `json:"registration" validate:"required"`
	Make         string        `json:"make" validate:"required"`
	Model        string        `json:"model" validate:"required"`
	Year         int           `json:"year,omitempty"`
	Mileage      int           `json:"mileage"`
	Status       VehicleStatus `json:"status"`
	Photos       []string      `json:"photos,omitempty"`

	// Tariff sheet.
	DailyRate        float64 `json:"daily_rate" validate:"gte=0"`
	WeekendFlatRate  float64 `json:"weekend_flat_rate" validate:"gte=0"`
	DailyKmAllowance int     `json:"daily_km_allowance" validate:"gte=0"`
	UnlimitedMileage bool    `json:"unlimited_mileage"`
	PerKmOverageRate float64 `json:"per_km_overage_rate" validate:"gte=0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TariffSheet projects the vehicle's pricing fields into the billing
// engine's input type.
func (v Vehicle) TariffSheet() billing.TariffSheet {
	return billing.TariffSheet{
		DailyRate:             v.DailyRate,
		WeekendFlatRate:       v.WeekendFlatRate,
		DailyMileageAllowance: v.DailyKmAllowance,
		UnlimitedMileage:      v.UnlimitedMileage,
		PerKmOverageRate:      v.PerKmOverageRate,
	}
}
