package report

import (
	"context"

	"fleetdesk/internal/domain"
)

type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
}

type VehicleRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Vehicle, error)
}

type ClientRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
}

type InspectionRepository interface {
	GetCheckOutByReservation(ctx context.Context, reservationID int64) (*domain.CheckOut, error)
}
