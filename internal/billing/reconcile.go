package billing

// AdditionalFee is an ad-hoc check-out line item. Amount may be negative
// to represent a credit.
type AdditionalFee struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// BillingResult is a derived, immutable snapshot. It is never stored as
// source of truth: every consumer recomputes it from the persisted
// inputs, so the displayed estimate and the final settlement can never
// drift apart.
type BillingResult struct {
	Days                int     `json:"days"`
	RentalCost          float64 `json:"rental_cost"`
	Strategy            string  `json:"strategy"`
	MileageIncluded     int     `json:"mileage_included"`
	MileageDriven       int     `json:"mileage_driven"`
	MileageOverage      int     `json:"mileage_overage"`
	OverageCost         float64 `json:"overage_cost"`
	AdditionalFeesTotal float64 `json:"additional_fees_total"`
	Total               float64 `json:"total"`
	MileageAnomaly      bool    `json:"mileage_anomaly"`
}

// Reconcile combines the tariff estimate, the mileage result and the
// ad-hoc fee list into one itemized total. Sub-totals arrive already
// rounded and are only summed here (round-then-sum), so the total always
// matches the independently displayed line items.
func Reconcile(days int, rental RentalEstimate, mileage MileageResult, fees []AdditionalFee) BillingResult {
	var feesTotal float64
	for _, fee := range fees {
		feesTotal += fee.Amount
	}

	return BillingResult{
		Days:                days,
		RentalCost:          rental.Amount,
		Strategy:            rental.Strategy,
		MileageIncluded:     mileage.Included,
		MileageDriven:       mileage.Driven,
		MileageOverage:      mileage.Overage,
		OverageCost:         mileage.OverageCost,
		AdditionalFeesTotal: feesTotal,
		Total:               rental.Amount + mileage.OverageCost + feesTotal,
		MileageAnomaly:      mileage.Anomaly,
	}
}

// Quote runs the engine in estimate mode: no odometer readings and no
// fees yet, as at reservation creation or edit.
func Quote(p RentalPeriod, sheet TariffSheet) (BillingResult, error) {
	days, err := ComputeBillableDays(p)
	if err != nil {
		return BillingResult{}, err
	}
	weekday, err := StartWeekday(p)
	if err != nil {
		return BillingResult{}, err
	}
	rental := EstimateRentalCost(days, sheet, weekday)
	return Reconcile(days, rental, MileageResult{}, nil), nil
}

// Settle runs the engine in settlement mode with actual odometer
// readings and the full fee list, as at check-out. Locking the resulting
// record belongs to the persistence layer, not to this computation.
func Settle(p RentalPeriod, sheet TariffSheet, odo OdometerReading, fees []AdditionalFee) (BillingResult, error) {
	days, err := ComputeBillableDays(p)
	if err != nil {
		return BillingResult{}, err
	}
	weekday, err := StartWeekday(p)
	if err != nil {
		return BillingResult{}, err
	}
	rental := EstimateRentalCost(days, sheet, weekday)
	mileage := ComputeMileage(days, sheet, odo)
	return Reconcile(days, rental, mileage, fees), nil
}
