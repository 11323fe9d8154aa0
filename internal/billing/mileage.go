package billing

import "math"

// OdometerReading pairs the pickup reading fixed at check-in with the
// return reading entered during check-out.
type OdometerReading struct {
	MileageAtPickup int `json:"mileage_at_pickup"`
	MileageAtReturn int `json:"mileage_at_return"`
}

type MileageResult struct {
	Included    int     `json:"included"`
	Driven      int     `json:"driven"`
	Overage     int     `json:"overage"`
	OverageCost float64 `json:"overage_cost"`

	// Anomaly flags a return reading below the pickup reading. Billing
	// clamps the driven distance to zero; the caller must surface the
	// condition, it is a data-integrity signal, not a normal outcome.
	Anomaly bool `json:"anomaly"`
}

// ComputeMileage applies the vehicle's mileage policy to the odometer
// readings for a given billable day count.
func ComputeMileage(days int, sheet TariffSheet, odo OdometerReading) MileageResult {
	driven := odo.MileageAtReturn - odo.MileageAtPickup
	anomaly := driven < 0
	if anomaly {
		driven = 0
	}

	if sheet.UnlimitedMileage {
		return MileageResult{Included: driven, Driven: driven, Anomaly: anomaly}
	}

	included := days * sheet.DailyMileageAllowance
	overage := driven - included
	if overage < 0 {
		overage = 0
	}

	return MileageResult{
		Included:    included,
		Driven:      driven,
		Overage:     overage,
		OverageCost: math.Round(float64(overage) * sheet.PerKmOverageRate),
		Anomaly:     anomaly,
	}
}
