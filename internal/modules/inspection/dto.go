package inspection

type CheckInRequest struct {
	MileageStart int    `json:"mileage_start" binding:"gte=0"`
	FuelLevel    string `json:"fuel_level"`
	Notes        string `json:"notes"`
}

type FeeInput struct {
	Label  string  `json:"label" binding:"required"`
	Amount float64 `json:"amount"`
}

// CheckOutRequest carries the return-side inspection. FixedChargeIDs
// reference the agency's predefined fee catalog; Fees are ad-hoc line
// items typed in by the agent. Both end up as fee lines on the
// settlement.
type CheckOutRequest struct {
	MileageEnd     int        `json:"mileage_end" binding:"gte=0"`
	FuelLevel      string     `json:"fuel_level"`
	Damages        []string   `json:"damages"`
	Notes          string     `json:"notes"`
	FixedChargeIDs []int64    `json:"fixed_charge_ids"`
	Fees           []FeeInput `json:"fees"`
}

type FixedChargeRequest struct {
	Label  string  `json:"label" binding:"required"`
	Amount float64 `json:"amount" binding:"gte=0"`
}

// SettlementResponse is the itemized settlement shown to the agent
// after a check-out save. Recomputed on every save until locked.
type SettlementResponse struct {
	ReservationID  int64     `json:"reservation_id"`
	Days           int       `json:"days"`
	RentalCost     float64   `json:"rental_cost"`
	Strategy       string    `json:"strategy"`
	MileageStart   int       `json:"mileage_start"`
	MileageEnd     int       `json:"mileage_end"`
	OverageCost    float64   `json:"overage_cost"`
	Fees           []FeeLine `json:"fees"`
	FeesTotal      float64   `json:"fees_total"`
	Total          float64   `json:"total"`
	MileageAnomaly bool      `json:"mileage_anomaly,omitempty"`
	Locked         bool      `json:"locked"`
	CurrencySymbol string    `json:"currency_symbol,omitempty"`
}

type FeeLine struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}
