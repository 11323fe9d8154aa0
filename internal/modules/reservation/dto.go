package reservation

type CreateReservationRequest struct {
	VehicleID int64  `json:"vehicle_id" binding:"required"`
	ClientID  int64  `json:"client_id" binding:"required"`
	StartDate string `json:"start_date" binding:"required"`
	StartTime string `json:"start_time"`
	EndDate   string `json:"end_date" binding:"required"`
	EndTime   string `json:"end_time"`
	Notes     string `json:"notes"`
}

type UpdateReservationRequest struct {
	StartDate string `json:"start_date" binding:"required"`
	StartTime string `json:"start_time"`
	EndDate   string `json:"end_date" binding:"required"`
	EndTime   string `json:"end_time"`
	Notes     string `json:"notes"`
}

type CancelReservationRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// EstimateRequest feeds the public marketplace estimator. ExpectedKm is
// optional and produces a provisional mileage projection.
type EstimateRequest struct {
	VehicleID  int64  `json:"vehicle_id" binding:"required"`
	StartDate  string `json:"start_date" binding:"required"`
	StartTime  string `json:"start_time"`
	EndDate    string `json:"end_date" binding:"required"`
	EndTime    string `json:"end_time"`
	ExpectedKm int    `json:"expected_km"`
}

type EstimateResponse struct {
	Days            int     `json:"days"`
	RentalCost      float64 `json:"rental_cost"`
	Strategy        string  `json:"strategy"`
	MileageIncluded int     `json:"mileage_included"`
	OverageCost     float64 `json:"overage_cost"`
	Total           float64 `json:"total"`
	CurrencySymbol  string  `json:"currency_symbol,omitempty"`
	TariffWarning   bool    `json:"tariff_warning,omitempty"`
}
