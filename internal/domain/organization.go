package domain

import "time"

// Organization holds the agency-level settings the engine's callers
// need, currency presentation in particular.
type Organization struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name" validate:"required"`
	CurrencyCode   string    `json:"currency_code"`
	CurrencySymbol string    `json:"currency_symbol"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
