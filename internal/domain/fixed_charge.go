package domain

import "time"

// FixedCharge is a predefined fee the desk can attach to a check-out
// (cleaning, fuel, young-driver surcharge) without retyping it.
type FixedCharge struct {
	ID        int64     `json:"id"`
	Label     string    `json:"label" validate:"required"`
	Amount    float64   `json:"amount"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
