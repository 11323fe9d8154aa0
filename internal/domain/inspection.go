package domain

import "time"

// CheckIn fixes the pickup-side inspection. The pickup odometer reading
// is immutable once the record exists.
type CheckIn struct {
	ID            int64     `json:"id"`
	ReservationID int64     `json:"reservation_id" validate:"required"`
	MileageStart  int       `json:"mileage_start" validate:"gte=0"`
	FuelLevel     string    `json:"fuel_level,omitempty"`
	Notes         string    `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt     time.Time `json:"created_at"`
}

// CheckOut is the return-side inspection. Until it is finalized the
// return reading and the fee list stay editable; Locked is a one-way
// flag after which the stored settlement is the authoritative financial
// record and every mutation is refused.
type CheckOut struct {
	ID            int64    `json:"id"`
	ReservationID int64    `json:"reservation_id" validate:"required"`
	MileageEnd    int      `json:"mileage_end" validate:"gte=0"`
	FuelLevel     string   `json:"fuel_level,omitempty"`
	Damages       []string `json:"damages,omitempty" gorm:"serializer:json"`
	Notes         string   `json:"notes,omitempty" gorm:"type:text"`

	// Settlement snapshot, recomputed from persisted inputs on every
	// save until the record is locked.
	Days           int     `json:"days"`
	RentalCost     float64 `json:"rental_cost"`
	Strategy       string  `json:"strategy,omitempty"`
	OverageCost    float64 `json:"overage_cost"`
	FeesTotal      float64 `json:"fees_total"`
	Total          float64 `json:"total"`
	MileageAnomaly bool    `json:"mileage_anomaly"`

	Locked   bool       `json:"locked"`
	LockedAt *time.Time `json:"locked_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Fees []CheckOutFee `json:"fees,omitempty" gorm:"foreignKey:CheckOutID"`
}

// CheckOutFee is one ad-hoc line item on a check-out. A negative amount
// is a credit.
type CheckOutFee struct {
	ID         int64   `json:"id"`
	CheckOutID int64   `json:"checkout_id"`
	Label      string  `json:"label" validate:"required"`
	Amount     float64 `json:"amount"`
}
