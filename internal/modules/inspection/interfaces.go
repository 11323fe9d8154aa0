package inspection

import (
	"context"

	"fleetdesk/internal/domain"
)

type InspectionRepository interface {
	CreateCheckIn(ctx context.Context, ci *domain.CheckIn) error
	GetCheckInByReservation(ctx context.Context, reservationID int64) (*domain.CheckIn, error)
	SaveCheckOut(ctx context.Context, co *domain.CheckOut) error
	GetCheckOutByReservation(ctx context.Context, reservationID int64) (*domain.CheckOut, error)
	Lock(ctx context.Context, id int64) error
}

type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error
}

type VehicleRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Vehicle, error)
	UpdateMileage(ctx context.Context, id int64, mileage int) error
	UpdateStatus(ctx context.Context, id int64, status domain.VehicleStatus) error
}

type FixedChargeRepository interface {
	Create(ctx context.Context, fc *domain.FixedCharge) error
	GetByID(ctx context.Context, id int64) (*domain.FixedCharge, error)
	ListActive(ctx context.Context) ([]domain.FixedCharge, error)
	Delete(ctx context.Context, id int64) error
}

type EventPublisher interface {
	Publish(event string, payload any)
}
