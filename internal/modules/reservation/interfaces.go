package reservation

import (
	"context"

	"fleetdesk/internal/domain"
)

// ReservationRepository defines the persistence operations the service
// needs.
type ReservationRepository interface {
	Create(ctx context.Context, r *domain.Reservation) error
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	CheckAvailability(ctx context.Context, vehicleID int64, startKey, endKey string, excludeID int64) (bool, error)
	List(ctx context.Context, status string, limit, offset int) ([]domain.Reservation, error)
	ListByClient(ctx context.Context, clientID int64, limit, offset int) ([]domain.Reservation, error)
	Update(ctx context.Context, r *domain.Reservation) error
	UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error
	CancelWithReason(ctx context.Context, id int64, reason string) error
}

type VehicleRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Vehicle, error)
}

// EventPublisher pushes desk events to connected back-office clients.
type EventPublisher interface {
	Publish(event string, payload any)
}
