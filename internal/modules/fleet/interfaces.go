package fleet

import (
	"context"

	"fleetdesk/internal/domain"
)

type VehicleRepository interface {
	Create(ctx context.Context, v *domain.Vehicle) error
	GetByID(ctx context.Context, id int64) (*domain.Vehicle, error)
	List(ctx context.Context, status string, limit, offset int) ([]domain.Vehicle, error)
	Update(ctx context.Context, v *domain.Vehicle) error
	UpdateStatus(ctx context.Context, id int64, status domain.VehicleStatus) error
	Delete(ctx context.Context, id int64) error
}
