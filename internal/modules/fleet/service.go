package fleet

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"fleetdesk/internal/domain"
	"fleetdesk/internal/pkg/validator"
)

type Service struct {
	vehicles VehicleRepository
}

func NewService(vehicles VehicleRepository) *Service {
	return &Service{vehicles: vehicles}
}

func (s *Service) CreateVehicle(ctx context.Context, req CreateVehicleRequest) (*domain.Vehicle, error) {
	v := &domain.Vehicle{
		Registration:     req.Registration,
		Make:             req.Make,
		Model:            req.Model,
		Year:             req.Year,
		Mileage:          req.Mileage,
		Status:           domain.VehicleAvailable,
		Photos:           req.Photos,
		DailyRate:        req.DailyRate,
		WeekendFlatRate:  req.WeekendFlatRate,
		DailyKmAllowance: req.DailyKmAllowance,
		UnlimitedMileage: req.UnlimitedMileage,
		PerKmOverageRate: req.PerKmOverageRate,
	}

	if fields := validator.Validate(v); fields != nil {
		return nil, ErrValidation
	}
	if !v.TariffSheet().Configured() {
		log.Printf("tariff_warning registration=%s vehicle created without a daily rate", v.Registration)
	}

	if err := s.vehicles.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *Service) GetVehicle(ctx context.Context, id int64) (*domain.Vehicle, error) {
	return s.getByID(ctx, id)
}

func (s *Service) ListVehicles(ctx context.Context, status string, limit, offset int) ([]domain.Vehicle, error) {
	return s.vehicles.List(ctx, status, limit, offset)
}

// UpdateVehicle applies a partial update. Tariff fields use pointers so
// a zero rate can be set explicitly without clobbering absent fields.
func (s *Service) UpdateVehicle(ctx context.Context, id int64, req UpdateVehicleRequest) (*domain.Vehicle, error) {
	v, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Registration != "" {
		v.Registration = req.Registration
	}
	if req.Make != "" {
		v.Make = req.Make
	}
	if req.Model != "" {
		v.Model = req.Model
	}
	if req.Year != 0 {
		v.Year = req.Year
	}
	if req.Photos != nil {
		v.Photos = req.Photos
	}
	if req.DailyRate != nil {
		v.DailyRate = *req.DailyRate
	}
	if req.WeekendFlatRate != nil {
		v.WeekendFlatRate = *req.WeekendFlatRate
	}
	if req.DailyKmAllowance != nil {
		v.DailyKmAllowance = *req.DailyKmAllowance
	}
	if req.UnlimitedMileage != nil {
		v.UnlimitedMileage = *req.UnlimitedMileage
	}
	if req.PerKmOverageRate != nil {
		v.PerKmOverageRate = *req.PerKmOverageRate
	}

	if err := s.vehicles.Update(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// UpdateStatus moves a vehicle between the manually managed states.
// The rented state is owned by the check-in/check-out flow.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status domain.VehicleStatus) (*domain.Vehicle, error) {
	v, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v.Status == domain.VehicleRented {
		return nil, ErrInUse
	}

	if err := s.vehicles.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	v.Status = status
	return v, nil
}

func (s *Service) DeleteVehicle(ctx context.Context, id int64) error {
	v, err := s.getByID(ctx, id)
	if err != nil {
		return err
	}
	if v.Status == domain.VehicleRented {
		return ErrInUse
	}
	return s.vehicles.Delete(ctx, id)
}

func (s *Service) getByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	v, err := s.vehicles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return v, nil
}
