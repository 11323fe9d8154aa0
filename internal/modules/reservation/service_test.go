package reservation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"fleetdesk/internal/domain"
)

// Mock repositories
type MockReservationRepository struct {
	mock.Mock
}

func (m *MockReservationRepository) Create(ctx context.Context, r *domain.Reservation) error {
	args := m.Called(ctx, r)
	if r != nil {
		r.ID = 999 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockReservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) CheckAvailability(ctx context.Context, vehicleID int64, startKey, endKey string, excludeID int64) (bool, error) {
	args := m.Called(ctx, vehicleID, startKey, endKey, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockReservationRepository) List(ctx context.Context, status string, limit, offset int) ([]domain.Reservation, error) {
	args := m.Called(ctx, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) ListByClient(ctx context.Context, clientID int64, limit, offset int) ([]domain.Reservation, error) {
	args := m.Called(ctx, clientID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) Update(ctx context.Context, r *domain.Reservation) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockReservationRepository) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockReservationRepository) CancelWithReason(ctx context.Context, id int64, reason string) error {
	args := m.Called(ctx, id, reason)
	return args.Error(0)
}

type MockVehicleRepository struct {
	mock.Mock
}

func (m *MockVehicleRepository) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}

type MockFeed struct {
	mock.Mock
}

func (m *MockFeed) Publish(event string, payload any) {
	m.Called(event, payload)
}

func testVehicle() *domain.Vehicle {
	return &domain.Vehicle{
		ID:               10,
		Registration:     "AB-123-CD",
		Make:             "Renault",
		Model:            "Clio",
		Status:           domain.VehicleAvailable,
		DailyRate:        50,
		DailyKmAllowance: 200,
		PerKmOverageRate: 0.5,
	}
}

func TestService_CreateReservation_Success(t *testing.T) {
	reservations := new(MockReservationRepository)
	vehicles := new(MockVehicleRepository)
	feed := new(MockFeed)

	vehicles.On("GetByID", mock.Anything, int64(10)).Return(testVehicle(), nil)
	reservations.On("CheckAvailability", mock.Anything, int64(10), "2026-03-02 09:00", "2026-03-04 09:00", int64(0)).Return(true, nil)
	reservations.On("Create", mock.Anything, mock.Anything).Return(nil)
	feed.On("Publish", "reservation.created", mock.Anything).Return()

	svc := NewService(reservations, vehicles, feed, nil, 1)

	r, err := svc.CreateReservation(context.Background(), CreateReservationRequest{
		VehicleID: 10,
		ClientID:  7,
		StartDate: "2026-03-02",
		StartTime: "09:00",
		EndDate:   "2026-03-04",
		EndTime:   "09:00",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(999), r.ID)
	assert.Equal(t, domain.ReservationPending, r.Status)
	// 2 days at 50/day, Monday start: 5% two-day discount
	assert.Equal(t, 95.0, r.EstimatedPrice)
	assert.Equal(t, "Long séjour (-5%)", r.Strategy)
	reservations.AssertExpectations(t)
	feed.AssertExpectations(t)
}

func TestService_CreateReservation_DefaultPickupHour(t *testing.T) {
	reservations := new(MockReservationRepository)
	vehicles := new(MockVehicleRepository)

	vehicles.On("GetByID", mock.Anything, int64(10)).Return(testVehicle(), nil)
	// empty times fall back to the 18:00 handover hour in the
	// availability keys as well as in pricing
	reservations.On("CheckAvailability", mock.Anything, int64(10), "2026-03-02 18:00", "2026-03-03 18:00", int64(0)).Return(true, nil)
	reservations.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc := NewService(reservations, vehicles, nil, nil, 1)

	r, err := svc.CreateReservation(context.Background(), CreateReservationRequest{
		VehicleID: 10,
		ClientID:  7,
		StartDate: "2026-03-02",
		EndDate:   "2026-03-03",
	})

	assert.NoError(t, err)
	assert.Equal(t, 50.0, r.EstimatedPrice)
	reservations.AssertExpectations(t)
}

func TestService_CreateReservation_InvalidPeriod(t *testing.T) {
	svc := NewService(new(MockReservationRepository), new(MockVehicleRepository), nil, nil, 1)

	_, err := svc.CreateReservation(context.Background(), CreateReservationRequest{
		VehicleID: 10,
		ClientID:  7,
		StartDate: "2026-03-04",
		EndDate:   "2026-03-02",
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_CreateReservation_NotAvailable(t *testing.T) {
	reservations := new(MockReservationRepository)
	vehicles := new(MockVehicleRepository)

	vehicles.On("GetByID", mock.Anything, int64(10)).Return(testVehicle(), nil)
	reservations.On("CheckAvailability", mock.Anything, int64(10), mock.Anything, mock.Anything, int64(0)).Return(false, nil)

	svc := NewService(reservations, vehicles, nil, nil, 1)

	_, err := svc.CreateReservation(context.Background(), CreateReservationRequest{
		VehicleID: 10,
		ClientID:  7,
		StartDate: "2026-03-02",
		EndDate:   "2026-03-04",
	})

	assert.ErrorIs(t, err, ErrNotAvailable)
	reservations.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_CreateReservation_VehicleNotFound(t *testing.T) {
	reservations := new(MockReservationRepository)
	vehicles := new(MockVehicleRepository)

	vehicles.On("GetByID", mock.Anything, int64(10)).Return(nil, gorm.ErrRecordNotFound)

	svc := NewService(reservations, vehicles, nil, nil, 1)

	_, err := svc.CreateReservation(context.Background(), CreateReservationRequest{
		VehicleID: 10,
		ClientID:  7,
		StartDate: "2026-03-02",
		EndDate:   "2026-03-04",
	})

	assert.ErrorIs(t, err, ErrVehicleNotFound)
}

func TestService_CreateReservation_WeekendFormula(t *testing.T) {
	reservations := new(MockReservationRepository)
	vehicles := new(MockVehicleRepository)

	v := testVehicle()
	v.DailyRate = 90
	v.WeekendFlatRate = 150
	vehicles.On("GetByID", mock.Anything, int64(10)).Return(v, nil)
	reservations.On("CheckAvailability", mock.Anything, int64(10), mock.Anything, mock.Anything, int64(0)).Return(true, nil)
	reservations.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc := NewService(reservations, vehicles, nil, nil, 1)

	// Saturday 2026-03-07 to Monday morning: two billable days
	r, err := svc.CreateReservation(context.Background(), CreateReservationRequest{
		VehicleID: 10,
		ClientID:  7,
		StartDate: "2026-03-07",
		StartTime: "10:00",
		EndDate:   "2026-03-09",
		EndTime:   "10:00",
	})

	assert.NoError(t, err)
	assert.Equal(t, 150.0, r.EstimatedPrice)
	assert.Equal(t, "Formule Weekend", r.Strategy)
}

func TestService_UpdateReservation_CompletedRejected(t *testing.T) {
	reservations := new(MockReservationRepository)
	vehicles := new(MockVehicleRepository)

	reservations.On("GetByID", mock.Anything, int64(1)).Return(&domain.Reservation{
		ID: 1, VehicleID: 10, Status: domain.ReservationCompleted,
	}, nil)

	svc := NewService(reservations, vehicles, nil, nil, 1)

	_, err := svc.UpdateReservation(context.Background(), 1, UpdateReservationRequest{
		StartDate: "2026-03-02",
		EndDate:   "2026-03-04",
	})

	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestService_UpdateReservation_ExcludesOwnPeriod(t *testing.T) {
	reservations := new(MockReservationRepository)
	vehicles := new(MockVehicleRepository)

	reservations.On("GetByID", mock.Anything, int64(5)).Return(&domain.Reservation{
		ID: 5, VehicleID: 10, Status: domain.ReservationConfirmed,
		StartDate: "2026-03-02", EndDate: "2026-03-04",
	}, nil)
	reservations.On("CheckAvailability", mock.Anything, int64(10), "2026-03-03 18:00", "2026-03-05 18:00", int64(5)).Return(true, nil)
	vehicles.On("GetByID", mock.Anything, int64(10)).Return(testVehicle(), nil)
	reservations.On("Update", mock.Anything, mock.Anything).Return(nil)

	svc := NewService(reservations, vehicles, nil, nil, 1)

	r, err := svc.UpdateReservation(context.Background(), 5, UpdateReservationRequest{
		StartDate: "2026-03-03",
		EndDate:   "2026-03-05",
	})

	assert.NoError(t, err)
	assert.Equal(t, "2026-03-05", r.EndDate)
	reservations.AssertExpectations(t)
}

func TestService_Estimate_InvertedPeriodFloorsToOneDay(t *testing.T) {
	reservations := new(MockReservationRepository)
	vehicles := new(MockVehicleRepository)

	vehicles.On("GetByID", mock.Anything, int64(10)).Return(testVehicle(), nil)

	svc := NewService(reservations, vehicles, nil, nil, 1)

	est, err := svc.Estimate(context.Background(), EstimateRequest{
		VehicleID: 10,
		StartDate: "2026-03-04",
		EndDate:   "2026-03-02",
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, est.Days)
	assert.Equal(t, 50.0, est.Total)
}

func TestService_Estimate_WithExpectedMileage(t *testing.T) {
	reservations := new(MockReservationRepository)
	vehicles := new(MockVehicleRepository)

	vehicles.On("GetByID", mock.Anything, int64(10)).Return(testVehicle(), nil)

	svc := NewService(reservations, vehicles, nil, nil, 1)

	// 3 days, 200 km/day allowance, 800 km expected: 200 km over at 0.5
	est, err := svc.Estimate(context.Background(), EstimateRequest{
		VehicleID:  10,
		StartDate:  "2026-03-02",
		StartTime:  "09:00",
		EndDate:    "2026-03-05",
		EndTime:    "09:00",
		ExpectedKm: 800,
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, est.Days)
	assert.Equal(t, 600, est.MileageIncluded)
	assert.Equal(t, 100.0, est.OverageCost)
	// 3 days at 50 with 15% tier discount = 128 (rounded), plus overage
	assert.Equal(t, 228.0, est.Total)
}

func TestService_Estimate_UnconfiguredTariffWarns(t *testing.T) {
	reservations := new(MockReservationRepository)
	vehicles := new(MockVehicleRepository)

	v := testVehicle()
	v.DailyRate = 0
	vehicles.On("GetByID", mock.Anything, int64(10)).Return(v, nil)

	svc := NewService(reservations, vehicles, nil, nil, 1)

	est, err := svc.Estimate(context.Background(), EstimateRequest{
		VehicleID: 10,
		StartDate: "2026-03-02",
		EndDate:   "2026-03-04",
	})

	assert.NoError(t, err)
	assert.True(t, est.TariffWarning)
	assert.Equal(t, 0.0, est.Total)
}

func TestService_Confirm_OnlyFromPending(t *testing.T) {
	reservations := new(MockReservationRepository)

	reservations.On("GetByID", mock.Anything, int64(1)).Return(&domain.Reservation{
		ID: 1, Status: domain.ReservationActive,
	}, nil)

	svc := NewService(reservations, new(MockVehicleRepository), nil, nil, 1)

	_, err := svc.Confirm(context.Background(), 1)
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestService_Cancel_AlreadyCancelled(t *testing.T) {
	reservations := new(MockReservationRepository)

	reservations.On("GetByID", mock.Anything, int64(1)).Return(&domain.Reservation{
		ID: 1, Status: domain.ReservationCancelled,
	}, nil)

	svc := NewService(reservations, new(MockVehicleRepository), nil, nil, 1)

	_, err := svc.Cancel(context.Background(), 1, "client no-show")
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
	reservations.AssertNotCalled(t, "CancelWithReason", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Cancel_RecordsReason(t *testing.T) {
	reservations := new(MockReservationRepository)

	pending := &domain.Reservation{ID: 1, Status: domain.ReservationPending}
	cancelled := &domain.Reservation{ID: 1, Status: domain.ReservationCancelled, CancellationReason: "client no-show"}
	reservations.On("GetByID", mock.Anything, int64(1)).Return(pending, nil).Once()
	reservations.On("CancelWithReason", mock.Anything, int64(1), "client no-show").Return(nil)
	reservations.On("GetByID", mock.Anything, int64(1)).Return(cancelled, nil)

	svc := NewService(reservations, new(MockVehicleRepository), nil, nil, 1)

	r, err := svc.Cancel(context.Background(), 1, "client no-show")
	assert.NoError(t, err)
	assert.Equal(t, domain.ReservationCancelled, r.Status)
	assert.Equal(t, "client no-show", r.CancellationReason)
	reservations.AssertExpectations(t)
}
