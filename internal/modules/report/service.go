package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fleetdesk/internal/billing"
	"fleetdesk/internal/domain"
	"fleetdesk/internal/pkg/currency"
)

type Service struct {
	reservations ReservationRepository
	vehicles     VehicleRepository
	clients      ClientRepository
	inspections  InspectionRepository
	currencies   *currency.Cache
	orgID        int64
	now          func() time.Time
}

func NewService(
	reservations ReservationRepository,
	vehicles VehicleRepository,
	clients ClientRepository,
	inspections InspectionRepository,
	currencies *currency.Cache,
	orgID int64,
) *Service {
	return &Service{
		reservations: reservations,
		vehicles:     vehicles,
		clients:      clients,
		inspections:  inspections,
		currencies:   currencies,
		orgID:        orgID,
		now:          time.Now,
	}
}

// BuildStatement assembles the printable document for a reservation.
// With a locked settlement it reproduces the stored figures; otherwise
// it recomputes the current estimate so the preview never goes stale.
func (s *Service) BuildStatement(ctx context.Context, reservationID int64) (*Statement, error) {
	r, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}

	vehicle, err := s.vehicles.GetByID(ctx, r.VehicleID)
	if err != nil {
		return nil, err
	}
	client, err := s.clients.GetByID(ctx, r.ClientID)
	if err != nil {
		return nil, err
	}

	st := &Statement{
		DocumentNumber: uuid.NewString(),
		IssuedAt:       s.now().Format(time.RFC3339),
		ClientName:     client.Name,
		LicenceNumber:  client.LicenceNumber,
		Vehicle:        vehicle.Make + " " + vehicle.Model,
		Registration:   vehicle.Registration,
		StartDate:      r.StartDate,
		StartTime:      r.StartTime,
		EndDate:        r.EndDate,
		EndTime:        r.EndTime,
	}

	co, err := s.inspections.GetCheckOutByReservation(ctx, reservationID)
	switch {
	case err == nil && co.Locked:
		s.settlementLines(st, co)
	case err == nil || errors.Is(err, gorm.ErrRecordNotFound):
		if err := s.estimateLines(st, r, vehicle); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	if s.currencies != nil {
		if info, cerr := s.currencies.Get(ctx, s.orgID); cerr == nil {
			st.CurrencyCode = info.Code
			st.CurrencySymbol = info.Symbol
		}
	}
	return st, nil
}

func (s *Service) settlementLines(st *Statement, co *domain.CheckOut) {
	st.Mode = "settlement"
	st.Days = co.Days

	st.Lines = append(st.Lines, StatementLine{
		Label:  rentalLabel(co.Strategy, co.Days),
		Amount: co.RentalCost,
	})
	if co.OverageCost > 0 {
		st.Lines = append(st.Lines, StatementLine{
			Label:  "Dépassement kilométrique",
			Amount: co.OverageCost,
		})
	}
	for _, fee := range co.Fees {
		st.Lines = append(st.Lines, StatementLine{Label: fee.Label, Amount: fee.Amount})
	}
	st.Total = co.Total
}

func (s *Service) estimateLines(st *Statement, r *domain.Reservation, vehicle *domain.Vehicle) error {
	quote, err := billing.Quote(r.Period(), vehicle.TariffSheet())
	if err != nil {
		return ErrValidation
	}

	st.Mode = "estimate"
	st.Days = quote.Days
	st.Lines = append(st.Lines, StatementLine{
		Label:  rentalLabel(quote.Strategy, quote.Days),
		Amount: quote.RentalCost,
	})
	st.Total = quote.Total
	return nil
}

func rentalLabel(strategy string, days int) string {
	if days == 1 {
		return fmt.Sprintf("%s (1 jour)", strategy)
	}
	return fmt.Sprintf("%s (%d jours)", strategy, days)
}
