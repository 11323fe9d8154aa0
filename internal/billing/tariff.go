package billing

import (
	"fmt"
	"math"
	"time"
)

// TariffSheet is the pricing subset of a vehicle record.
type TariffSheet struct {
	DailyRate             float64 `json:"daily_rate"`
	WeekendFlatRate       float64 `json:"weekend_flat_rate"`
	DailyMileageAllowance int     `json:"daily_km_allowance"`
	UnlimitedMileage      bool    `json:"unlimited_mileage"`
	PerKmOverageRate      float64 `json:"per_km_overage_rate"`
}

// Configured reports whether the sheet can produce a non-zero price at
// all. A vehicle still being set up keeps a zero rate; estimating it
// yields 0 with a call-site warning rather than blocking the workflow.
func (t TariffSheet) Configured() bool {
	return t.DailyRate > 0 || t.WeekendFlatRate > 0
}

type RentalEstimate struct {
	Amount   float64 `json:"amount"`
	Strategy string  `json:"strategy"`
}

// Strategy labels carried through to receipts and estimates so the
// operator can see which pricing rule fired.
const (
	StrategyWeekend  = "Formule Weekend"
	StrategyStandard = "Tarif standard"
)

// EstimateRentalCost selects between the flat weekend formula and the
// degressive per-day tariff and returns the rounded rental price.
func EstimateRentalCost(days int, sheet TariffSheet, startWeekday time.Weekday) RentalEstimate {
	if weekendEligible(days, sheet, startWeekday) {
		return RentalEstimate{
			Amount:   math.Round(sheet.WeekendFlatRate),
			Strategy: StrategyWeekend,
		}
	}

	pct := discountPercent(days)
	amount := math.Round(sheet.DailyRate * float64(days) * (1 - float64(pct)/100))

	strategy := StrategyStandard
	if pct > 0 {
		strategy = fmt.Sprintf("Long séjour (-%d%%)", pct)
	}
	return RentalEstimate{Amount: amount, Strategy: strategy}
}

// weekendEligible mirrors the booking desk rule exactly: the flat rate
// applies only to 2-day rentals starting Friday or Saturday. A 2-day
// Sunday start intentionally takes the tiered path.
func weekendEligible(days int, sheet TariffSheet, startWeekday time.Weekday) bool {
	if days != 2 {
		return false
	}
	if sheet.WeekendFlatRate <= 0 {
		return false
	}
	return startWeekday == time.Friday || startWeekday == time.Saturday
}

// discountPercent returns the long-stay discount tier for a day count.
func discountPercent(days int) int {
	switch {
	case days <= 1:
		return 0
	case days == 2:
		return 5
	case days <= 5:
		return 15
	case days <= 15:
		return 20
	case days <= 25:
		return 25
	case days <= 30:
		return 30
	default:
		return 35
	}
}
