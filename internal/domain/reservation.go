package domain

import (
	"time"

	"fleetdesk/internal/billing"
)

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationActive    ReservationStatus = "active"
	ReservationCompleted ReservationStatus = "completed"
	ReservationCancelled ReservationStatus = "cancelled"
)

// Reservation keeps the rental period as civil date/time strings, the
// way the booking forms capture them. EstimatedPrice and Strategy are
// the estimate-mode snapshot; the settlement is recomputed at check-out
// from the same persisted inputs.
type Reservation struct {
	ID        int64  `json:"id"`
	VehicleID int64  `json:"vehicle_id" validate:"required"`
	ClientID  int64  `json:"client_id" validate:"required"`
	StartDate string `json:"start_date" validate:"required"`
	StartTime string `json:"start_time,omitempty"`
	EndDate   string `json:"end_date" validate:"required"`
	EndTime   string `json:"end_time,omitempty"`

	EstimatedPrice float64           `json:"estimated_price"`
	Strategy       string            `json:"strategy,omitempty"`
	Status         ReservationStatus `json:"status"`
	Notes          string            `json:"notes,omitempty" gorm:"type:text"`

	CancellationReason string     `json:"cancellation_reason,omitempty" gorm:"type:text"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`

	Vehicle *Vehicle `json:"vehicle,omitempty" gorm:"foreignKey:VehicleID"`
	Client  *Client  `json:"client,omitempty" gorm:"foreignKey:ClientID"`
}

// Period projects the stored date/time columns into the billing
// engine's input type.
func (r Reservation) Period() billing.RentalPeriod {
	return billing.RentalPeriod{
		StartDate: r.StartDate,
		StartTime: r.StartTime,
		EndDate:   r.EndDate,
		EndTime:   r.EndTime,
	}
}
