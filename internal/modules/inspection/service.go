package inspection

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"fleetdesk/internal/billing"
	"fleetdesk/internal/domain"
	"fleetdesk/internal/pkg/currency"
)

type Service struct {
	inspections  InspectionRepository
	reservations ReservationRepository
	vehicles     VehicleRepository
	charges      FixedChargeRepository
	feed         EventPublisher
	currencies   *currency.Cache
	orgID        int64
}

func NewService(
	inspections InspectionRepository,
	reservations ReservationRepository,
	vehicles VehicleRepository,
	charges FixedChargeRepository,
	feed EventPublisher,
	currencies *currency.Cache,
	orgID int64,
) *Service {
	return &Service{
		inspections:  inspections,
		reservations: reservations,
		vehicles:     vehicles,
		charges:      charges,
		feed:         feed,
		currencies:   currencies,
		orgID:        orgID,
	}
}

// CheckIn records the pickup inspection and moves the reservation to
// active. The pickup odometer reading is fixed here and never edited
// afterwards.
func (s *Service) CheckIn(ctx context.Context, reservationID int64, req CheckInRequest) (*domain.CheckIn, error) {
	r, err := s.getReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if r.Status != domain.ReservationConfirmed && r.Status != domain.ReservationPending {
		return nil, ErrInvalidStatus
	}

	if _, err := s.inspections.GetCheckInByReservation(ctx, reservationID); err == nil {
		return nil, ErrAlreadyCheckedIn
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	ci := &domain.CheckIn{
		ReservationID: reservationID,
		MileageStart:  req.MileageStart,
		FuelLevel:     req.FuelLevel,
		Notes:         req.Notes,
	}
	if err := s.inspections.CreateCheckIn(ctx, ci); err != nil {
		return nil, err
	}

	if err := s.reservations.UpdateStatus(ctx, reservationID, domain.ReservationActive); err != nil {
		return nil, err
	}
	if err := s.vehicles.UpdateStatus(ctx, r.VehicleID, domain.VehicleRented); err != nil {
		return nil, err
	}

	if s.feed != nil {
		s.feed.Publish("rental.started", ci)
	}
	return ci, nil
}

// CheckOut records the return inspection and recomputes the settlement
// from the persisted inputs. It can be saved repeatedly (corrected
// odometer, added fees) until Finalize locks it.
func (s *Service) CheckOut(ctx context.Context, reservationID int64, req CheckOutRequest) (*SettlementResponse, error) {
	r, err := s.getReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if r.Status != domain.ReservationActive {
		return nil, ErrInvalidStatus
	}

	ci, err := s.inspections.GetCheckInByReservation(ctx, reservationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotCheckedIn
		}
		return nil, err
	}

	existing, err := s.inspections.GetCheckOutByReservation(ctx, reservationID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil && existing.Locked {
		return nil, ErrLocked
	}

	fees, err := s.resolveFees(ctx, req)
	if err != nil {
		return nil, err
	}

	vehicle, err := s.vehicles.GetByID(ctx, r.VehicleID)
	if err != nil {
		return nil, err
	}

	odo := billing.OdometerReading{MileageAtPickup: ci.MileageStart, MileageAtReturn: req.MileageEnd}
	result, err := billing.Settle(r.Period(), vehicle.TariffSheet(), odo, fees)
	if err != nil {
		return nil, ErrValidation
	}
	if result.MileageAnomaly {
		log.Printf("odometer_anomaly reservation_id=%d pickup=%d return=%d", reservationID, ci.MileageStart, req.MileageEnd)
	}

	co := &domain.CheckOut{
		ReservationID:  reservationID,
		MileageEnd:     req.MileageEnd,
		FuelLevel:      req.FuelLevel,
		Damages:        req.Damages,
		Notes:          req.Notes,
		Days:           result.Days,
		RentalCost:     result.RentalCost,
		Strategy:       result.Strategy,
		OverageCost:    result.OverageCost,
		FeesTotal:      result.AdditionalFeesTotal,
		Total:          result.Total,
		MileageAnomaly: result.MileageAnomaly,
	}
	if existing != nil {
		co.ID = existing.ID
		co.CreatedAt = existing.CreatedAt
	}
	for _, fee := range fees {
		co.Fees = append(co.Fees, domain.CheckOutFee{Label: fee.Label, Amount: fee.Amount})
	}

	if err := s.inspections.SaveCheckOut(ctx, co); err != nil {
		return nil, err
	}

	if s.feed != nil {
		s.feed.Publish("rental.returned", co)
	}
	return s.settlement(ctx, r, ci, co), nil
}

// Finalize locks the settlement, completes the reservation and rolls
// the odometer reading onto the vehicle record.
func (s *Service) Finalize(ctx context.Context, reservationID int64) (*SettlementResponse, error) {
	r, err := s.getReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	co, err := s.inspections.GetCheckOutByReservation(ctx, reservationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if co.Locked {
		return nil, ErrLocked
	}

	if err := s.inspections.Lock(ctx, co.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLocked
		}
		return nil, err
	}

	if err := s.reservations.UpdateStatus(ctx, reservationID, domain.ReservationCompleted); err != nil {
		return nil, err
	}
	if !co.MileageAnomaly {
		if err := s.vehicles.UpdateMileage(ctx, r.VehicleID, co.MileageEnd); err != nil {
			return nil, err
		}
	}
	if err := s.vehicles.UpdateStatus(ctx, r.VehicleID, domain.VehicleAvailable); err != nil {
		return nil, err
	}

	co, err = s.inspections.GetCheckOutByReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	if s.feed != nil {
		s.feed.Publish("rental.finalized", co)
	}

	ci, err := s.inspections.GetCheckInByReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	return s.settlement(ctx, r, ci, co), nil
}

// GetSettlement returns the stored settlement for a reservation.
func (s *Service) GetSettlement(ctx context.Context, reservationID int64) (*SettlementResponse, error) {
	r, err := s.getReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	co, err := s.inspections.GetCheckOutByReservation(ctx, reservationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	ci, err := s.inspections.GetCheckInByReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	return s.settlement(ctx, r, ci, co), nil
}

func (s *Service) GetCheckIn(ctx context.Context, reservationID int64) (*domain.CheckIn, error) {
	if _, err := s.getReservation(ctx, reservationID); err != nil {
		return nil, err
	}
	ci, err := s.inspections.GetCheckInByReservation(ctx, reservationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotCheckedIn
		}
		return nil, err
	}
	return ci, nil
}

/* ---------- FIXED CHARGE CATALOG ---------- */

func (s *Service) ListFixedCharges(ctx context.Context) ([]domain.FixedCharge, error) {
	return s.charges.ListActive(ctx)
}

func (s *Service) CreateFixedCharge(ctx context.Context, req FixedChargeRequest) (*domain.FixedCharge, error) {
	fc := &domain.FixedCharge{Label: req.Label, Amount: req.Amount, Active: true}
	if err := s.charges.Create(ctx, fc); err != nil {
		return nil, err
	}
	return fc, nil
}

func (s *Service) DeleteFixedCharge(ctx context.Context, id int64) error {
	if _, err := s.charges.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrChargeNotFound
		}
		return err
	}
	return s.charges.Delete(ctx, id)
}

// resolveFees expands the referenced catalog charges and appends the
// ad-hoc lines, keeping the catalog labels and amounts authoritative.
func (s *Service) resolveFees(ctx context.Context, req CheckOutRequest) ([]billing.AdditionalFee, error) {
	var fees []billing.AdditionalFee
	for _, id := range req.FixedChargeIDs {
		fc, err := s.charges.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrChargeNotFound
			}
			return nil, err
		}
		fees = append(fees, billing.AdditionalFee{Label: fc.Label, Amount: fc.Amount})
	}
	for _, f := range req.Fees {
		fees = append(fees, billing.AdditionalFee{Label: f.Label, Amount: f.Amount})
	}
	return fees, nil
}

func (s *Service) getReservation(ctx context.Context, id int64) (*domain.Reservation, error) {
	r, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return r, nil
}

func (s *Service) settlement(ctx context.Context, r *domain.Reservation, ci *domain.CheckIn, co *domain.CheckOut) *SettlementResponse {
	resp := &SettlementResponse{
		ReservationID:  r.ID,
		Days:           co.Days,
		RentalCost:     co.RentalCost,
		Strategy:       co.Strategy,
		MileageStart:   ci.MileageStart,
		MileageEnd:     co.MileageEnd,
		OverageCost:    co.OverageCost,
		FeesTotal:      co.FeesTotal,
		Total:          co.Total,
		MileageAnomaly: co.MileageAnomaly,
		Locked:         co.Locked,
	}
	for _, fee := range co.Fees {
		resp.Fees = append(resp.Fees, FeeLine{Label: fee.Label, Amount: fee.Amount})
	}
	if s.currencies != nil {
		if info, err := s.currencies.Get(ctx, s.orgID); err == nil {
			resp.CurrencySymbol = info.Symbol
		}
	}
	return resp
}
