package reservation

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"fleetdesk/internal/billing"
	"fleetdesk/internal/domain"
	"fleetdesk/internal/pkg/currency"
	"fleetdesk/internal/repository"
)

type Service struct {
	reservations ReservationRepository
	vehicles     VehicleRepository
	feed         EventPublisher
	currencies   *currency.Cache
	orgID        int64
}

func NewService(
	reservations ReservationRepository,
	vehicles VehicleRepository,
	feed EventPublisher,
	currencies *currency.Cache,
	orgID int64,
) *Service {
	return &Service{
		reservations: reservations,
		vehicles:     vehicles,
		feed:         feed,
		currencies:   currencies,
		orgID:        orgID,
	}
}

// CreateReservation validates the period, checks vehicle availability
// and stores the reservation with its estimate-mode price. The estimate
// is a snapshot; the settlement at check-out recomputes from the same
// persisted inputs.
func (s *Service) CreateReservation(ctx context.Context, req CreateReservationRequest) (*domain.Reservation, error) {
	period := billing.RentalPeriod{
		StartDate: req.StartDate, StartTime: req.StartTime,
		EndDate: req.EndDate, EndTime: req.EndTime,
	}
	if _, err := billing.ComputeBillableDays(period); err != nil {
		return nil, ErrValidation
	}

	vehicle, err := s.vehicles.GetByID(ctx, req.VehicleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}

	ok, err := s.reservations.CheckAvailability(ctx, req.VehicleID, periodKey(req.StartDate, req.StartTime), periodKey(req.EndDate, req.EndTime), 0)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotAvailable
	}

	quote, err := billing.Quote(period, vehicle.TariffSheet())
	if err != nil {
		return nil, ErrValidation
	}
	if !vehicle.TariffSheet().Configured() {
		log.Printf("tariff_warning vehicle_id=%d registration=%s estimate=0", vehicle.ID, vehicle.Registration)
	}

	r := &domain.Reservation{
		VehicleID:      req.VehicleID,
		ClientID:       req.ClientID,
		StartDate:      req.StartDate,
		StartTime:      req.StartTime,
		EndDate:        req.EndDate,
		EndTime:        req.EndTime,
		EstimatedPrice: quote.Total,
		Strategy:       quote.Strategy,
		Status:         domain.ReservationPending,
		Notes:          req.Notes,
	}

	if err := s.reservations.Create(ctx, r); err != nil {
		if repository.IsUniqueViolation(err, "") {
			return nil, ErrOverbooking
		}
		return nil, err
	}

	if s.feed != nil {
		s.feed.Publish("reservation.created", r)
	}

	return r, nil
}

// UpdateReservation re-quotes a pending or confirmed reservation after
// its period changed. Later stages are settled through check-out, not
// here.
func (s *Service) UpdateReservation(ctx context.Context, id int64, req UpdateReservationRequest) (*domain.Reservation, error) {
	r, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.Status != domain.ReservationPending && r.Status != domain.ReservationConfirmed {
		return nil, ErrInvalidStatusTransition
	}

	period := billing.RentalPeriod{
		StartDate: req.StartDate, StartTime: req.StartTime,
		EndDate: req.EndDate, EndTime: req.EndTime,
	}
	if _, err := billing.ComputeBillableDays(period); err != nil {
		return nil, ErrValidation
	}

	ok, err := s.reservations.CheckAvailability(ctx, r.VehicleID, periodKey(req.StartDate, req.StartTime), periodKey(req.EndDate, req.EndTime), r.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotAvailable
	}

	vehicle, err := s.vehicles.GetByID(ctx, r.VehicleID)
	if err != nil {
		return nil, err
	}
	quote, err := billing.Quote(period, vehicle.TariffSheet())
	if err != nil {
		return nil, ErrValidation
	}

	r.StartDate = req.StartDate
	r.StartTime = req.StartTime
	r.EndDate = req.EndDate
	r.EndTime = req.EndTime
	r.EstimatedPrice = quote.Total
	r.Strategy = quote.Strategy
	if req.Notes != "" {
		r.Notes = req.Notes
	}

	if err := s.reservations.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// Estimate is the public marketplace preview: lenient on the period (a
// 1-day floor instead of a hard stop) so the figure keeps rendering
// while the visitor is still picking dates.
func (s *Service) Estimate(ctx context.Context, req EstimateRequest) (*EstimateResponse, error) {
	period := billing.RentalPeriod{
		StartDate: req.StartDate, StartTime: req.StartTime,
		EndDate: req.EndDate, EndTime: req.EndTime,
	}

	days, err := billing.DaysOrMinimum(period)
	if err != nil {
		return nil, ErrValidation
	}
	weekday, err := billing.StartWeekday(period)
	if err != nil {
		return nil, ErrValidation
	}

	vehicle, err := s.vehicles.GetByID(ctx, req.VehicleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}

	sheet := vehicle.TariffSheet()
	rental := billing.EstimateRentalCost(days, sheet, weekday)

	var mileage billing.MileageResult
	if req.ExpectedKm > 0 {
		mileage = billing.ComputeMileage(days, sheet, billing.OdometerReading{MileageAtReturn: req.ExpectedKm})
	}
	res := billing.Reconcile(days, rental, mileage, nil)

	resp := &EstimateResponse{
		Days:            res.Days,
		RentalCost:      res.RentalCost,
		Strategy:        res.Strategy,
		MileageIncluded: res.MileageIncluded,
		OverageCost:     res.OverageCost,
		Total:           res.Total,
		TariffWarning:   !sheet.Configured(),
	}

	if s.currencies != nil {
		if info, err := s.currencies.Get(ctx, s.orgID); err == nil {
			resp.CurrencySymbol = info.Symbol
		}
	}
	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	return s.getByID(ctx, id)
}

func (s *Service) List(ctx context.Context, status string, limit, offset int) ([]domain.Reservation, error) {
	return s.reservations.List(ctx, status, limit, offset)
}

func (s *Service) ListByClient(ctx context.Context, clientID int64, limit, offset int) ([]domain.Reservation, error) {
	return s.reservations.ListByClient(ctx, clientID, limit, offset)
}

// Confirm moves a pending reservation to confirmed.
func (s *Service) Confirm(ctx context.Context, id int64) (*domain.Reservation, error) {
	r, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.Status != domain.ReservationPending {
		return nil, ErrInvalidStatusTransition
	}
	if err := s.reservations.UpdateStatus(ctx, id, domain.ReservationConfirmed); err != nil {
		return nil, err
	}
	return s.getByID(ctx, id)
}

// Cancel cancels a reservation with a mandatory reason.
func (s *Service) Cancel(ctx context.Context, id int64, reason string) (*domain.Reservation, error) {
	r, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.Status == domain.ReservationCancelled || r.Status == domain.ReservationCompleted {
		return nil, ErrInvalidStatusTransition
	}

	if err := s.reservations.CancelWithReason(ctx, id, reason); err != nil {
		return nil, err
	}
	return s.getByID(ctx, id)
}

func (s *Service) getByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	r, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return r, nil
}

// periodKey builds the sortable civil key used by the availability
// query, applying the operational default hour like the engine does.
func periodKey(date, clock string) string {
	if clock == "" {
		clock = billing.DefaultHour
	}
	return date + " " + clock
}
