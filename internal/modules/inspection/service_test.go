package inspection

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"fleetdesk/internal/domain"
)

// Mock repositories
type MockInspectionRepository struct {
	mock.Mock
}

func (m *MockInspectionRepository) CreateCheckIn(ctx context.Context, ci *domain.CheckIn) error {
	args := m.Called(ctx, ci)
	if ci != nil {
		ci.ID = 501
	}
	return args.Error(0)
}

func (m *MockInspectionRepository) GetCheckInByReservation(ctx context.Context, reservationID int64) (*domain.CheckIn, error) {
	args := m.Called(ctx, reservationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CheckIn), args.Error(1)
}

func (m *MockInspectionRepository) SaveCheckOut(ctx context.Context, co *domain.CheckOut) error {
	args := m.Called(ctx, co)
	if co != nil && co.ID == 0 {
		co.ID = 601
	}
	return args.Error(0)
}

func (m *MockInspectionRepository) GetCheckOutByReservation(ctx context.Context, reservationID int64) (*domain.CheckOut, error) {
	args := m.Called(ctx, reservationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CheckOut), args.Error(1)
}

func (m *MockInspectionRepository) Lock(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockReservationRepository struct {
	mock.Mock
}

func (m *MockReservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error {
	args := m.Called(ctx, id, status)
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

func (m *MockVehicleRepository) UpdateMileage(ctx context.Context, id int64, mileage int) error {
	args := m.Called(ctx, id, mileage)
	return args.Error(0)
}

func (m *MockVehicleRepository) UpdateStatus(ctx context.Context, id int64, status domain.VehicleStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type MockFixedChargeRepository struct {
	mock.Mock
}

func (m *MockFixedChargeRepository) Create(ctx context.Context, fc *domain.FixedCharge) error {
	args := m.Called(ctx, fc)
	if fc != nil {
		fc.ID = 31
	}
	return args.Error(0)
}

func (m *MockFixedChargeRepository) GetByID(ctx context.Context, id int64) (*domain.FixedCharge, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FixedCharge), args.Error(1)
}

func (m *MockFixedChargeRepository) ListActive(ctx context.Context) ([]domain.FixedCharge, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FixedCharge), args.Error(1)
}

func (m *MockFixedChargeRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func activeReservation() *domain.Reservation {
	return &domain.Reservation{
		ID:        1,
		VehicleID: 10,
		ClientID:  7,
		StartDate: "2026-03-02",
		StartTime: "09:00",
		EndDate:   "2026-03-05",
		EndTime:   "09:00",
		Status:    domain.ReservationActive,
	}
}

func rentalVehicle() *domain.Vehicle {
	return &domain.Vehicle{
		ID:               10,
		Registration:     "AB-123-CD",
		Status:           domain.VehicleRented,
		DailyRate:        50,
		DailyKmAllowance: 200,
		PerKmOverageRate: 0.5,
	}
}

func newTestService(i *MockInspectionRepository, r *MockReservationRepository, v *MockVehicleRepository, fc *MockFixedChargeRepository) *Service {
	return NewService(i, r, v, fc, nil, nil, 1)
}

func TestService_CheckIn_Success(t *testing.T) {
	inspections := new(MockInspectionRepository)
	reservations := new(MockReservationRepository)
	vehicles := new(MockVehicleRepository)

	r := activeReservation()
	r.Status = domain.ReservationConfirmed
	reservations.On("GetByID", mock.Anything, int64(1)).Return(r, nil)
	inspections.On("GetCheckInByReservation", mock.Anything, int64(1)).Return(nil, gorm.ErrRecordNotFound)
	inspections.On("CreateCheckIn", mock.Anything, mock.Anything).Return(nil)
	reservations.On("UpdateStatus", mock.Anything, int64(1), domain.ReservationActive).Return(nil)
	vehicles.On("UpdateStatus", mock.Anything, int64(10), domain.VehicleRented).Return(nil)

	svc := newTestService(inspections, reservations, vehicles, new(MockFixedChargeRepository))

	ci, err := svc.CheckIn(context.Background(), 1, CheckInRequest{MileageStart: 42000, FuelLevel: "full"})

	assert.NoError(t, err)
	assert.Equal(t, 42000, ci.MileageStart)
	inspections.AssertExpectations(t)
	reservations.AssertExpectations(t)
	vehicles.AssertExpectations(t)
}

func TestService_CheckIn_Twice(t *testing.T) {
	inspections := new(MockInspectionRepository)
	reservations := new(MockReservationRepository)

	r := activeReservation()
	r.Status = domain.ReservationConfirmed
	reservations.On("GetByID", mock.Anything, int64(1)).Return(r, nil)
	inspections.On("GetCheckInByReservation", mock.Anything, int64(1)).Return(&domain.CheckIn{ID: 501, ReservationID: 1}, nil)

	svc := newTestService(inspections, reservations, new(MockVehicleRepository), new(MockFixedChargeRepository))

	_, err := svc.CheckIn(context.Background(), 1, CheckInRequest{MileageStart: 42000})
	assert.ErrorIs(t, err, ErrAlreadyCheckedIn)
	inspections.AssertNotCalled(t, "CreateCheckIn", mock.Anything, mock.Anything)
}

func TestService_CheckIn_WrongStatus(t *testing.T) {
	reservations := new(MockReservationRepository)

	r := activeReservation()
	r.Status = domain.ReservationCancelled
	reservations.On("GetByID", mock.Anything, int64(1)).Return(r, nil)

	svc := newTestService(new(MockInspectionRepository), reservations, new(MockVehicleRepository), new(MockFixedChargeRepository))

	_, err := svc.CheckIn(context.Background(), 1, CheckInRequest{})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestService_CheckOut_ComputesSettlement(t *testing.T) {
	inspections := new(MockInspectionRepository)
	reservations := new(MockReservationRepository)
	vehicles := new(MockVehicleRepository)
	charges := new(MockFixedChargeRepository)

	reservations.On("GetByID", mock.Anything, int64(1)).Return(activeReservation(), nil)
	inspections.On("GetCheckInByReservation", mock.Anything, int64(1)).Return(&domain.CheckIn{ID: 501, ReservationID: 1, MileageStart: 42000}, nil)
	inspections.On("GetCheckOutByReservation", mock.Anything, int64(1)).Return(nil, gorm.ErrRecordNotFound)
	vehicles.On("GetByID", mock.Anything, int64(10)).Return(rentalVehicle(), nil)
	charges.On("GetByID", mock.Anything, int64(31)).Return(&domain.FixedCharge{ID: 31, Label: "Nettoyage", Amount: 30, Active: true}, nil)
	inspections.On("SaveCheckOut", mock.Anything, mock.Anything).Return(nil)

	svc := newTestService(inspections, reservations, vehicles, charges)

	// 3 days at 50 with the 15% tier discount = 128 (rounded)
	// 42800 - 42000 = 800 driven, 600 included, 200 over at 0.5 = 100
	// fees: catalog 30 + ad-hoc 25
	settlement, err := svc.CheckOut(context.Background(), 1, CheckOutRequest{
		MileageEnd:     42800,
		FixedChargeIDs: []int64{31},
		Fees:           []FeeInput{{Label: "Carburant manquant", Amount: 25}},
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, settlement.Days)
	assert.Equal(t, 128.0, settlement.RentalCost)
	assert.Equal(t, 100.0, settlement.OverageCost)
	assert.Equal(t, 55.0, settlement.FeesTotal)
	assert.Equal(t, 283.0, settlement.Total)
	assert.Len(t, settlement.Fees, 2)
	assert.False(t, settlement.MileageAnomaly)
	assert.False(t, settlement.Locked)
}

func TestService_CheckOut_OdometerAnomalyFlagged(t *testing.T) {
	inspections := new(MockInspectionRepository)
	reservations := new(MockReservationRepository)
	vehicles := new(MockVehicleRepository)

	reservations.On("GetByID", mock.Anything, int64(1)).Return(activeReservation(), nil)
	inspections.On("GetCheckInByReservation", mock.Anything, int64(1)).Return(&domain.CheckIn{ID: 501, ReservationID: 1, MileageStart: 42000}, nil)
	inspections.On("GetCheckOutByReservation", mock.Anything, int64(1)).Return(nil, gorm.ErrRecordNotFound)
	vehicles.On("GetByID", mock.Anything, int64(10)).Return(rentalVehicle(), nil)
	inspections.On("SaveCheckOut", mock.Anything, mock.Anything).Return(nil)

	svc := newTestService(inspections, reservations, vehicles, new(MockFixedChargeRepository))

	// return below pickup: driven clamps to zero, no overage, flagged
	settlement, err := svc.CheckOut(context.Background(), 1, CheckOutRequest{MileageEnd: 41000})

	assert.NoError(t, err)
	assert.True(t, settlement.MileageAnomaly)
	assert.Equal(t, 0.0, settlement.OverageCost)
	assert.Equal(t, 128.0, settlement.Total)
}

func TestService_CheckOut_RepeatedSaveRecomputes(t *testing.T) {
	inspections := new(MockInspectionRepository)
	reservations := new(MockReservationRepository)
	vehicles := new(MockVehicleRepository)

	reservations.On("GetByID", mock.Anything, int64(1)).Return(activeReservation(), nil)
	inspections.On("GetCheckInByReservation", mock.Anything, int64(1)).Return(&domain.CheckIn{ID: 501, ReservationID: 1, MileageStart: 42000}, nil)
	inspections.On("GetCheckOutByReservation", mock.Anything, int64(1)).Return(&domain.CheckOut{
		ID: 601, ReservationID: 1, MileageEnd: 42800, Total: 228,
	}, nil)
	vehicles.On("GetByID", mock.Anything, int64(10)).Return(rentalVehicle(), nil)
	inspections.On("SaveCheckOut", mock.Anything, mock.MatchedBy(func(co *domain.CheckOut) bool {
		return co.ID == 601 && co.MileageEnd == 42600
	})).Return(nil)

	svc := newTestService(inspections, reservations, vehicles, new(MockFixedChargeRepository))

	// corrected reading: 600 driven, all within allowance
	settlement, err := svc.CheckOut(context.Background(), 1, CheckOutRequest{MileageEnd: 42600})

	assert.NoError(t, err)
	assert.Equal(t, 0.0, settlement.OverageCost)
	assert.Equal(t, 128.0, settlement.Total)
	inspections.AssertExpectations(t)
}

func TestService_CheckOut_LockedRefusesMutation(t *testing.T) {
	inspections := new(MockInspectionRepository)
	reservations := new(MockReservationRepository)

	reservations.On("GetByID", mock.Anything, int64(1)).Return(activeReservation(), nil)
	inspections.On("GetCheckInByReservation", mock.Anything, int64(1)).Return(&domain.CheckIn{ID: 501, ReservationID: 1, MileageStart: 42000}, nil)
	inspections.On("GetCheckOutByReservation", mock.Anything, int64(1)).Return(&domain.CheckOut{
		ID: 601, ReservationID: 1, Locked: true,
	}, nil)

	svc := newTestService(inspections, reservations, new(MockVehicleRepository), new(MockFixedChargeRepository))

	_, err := svc.CheckOut(context.Background(), 1, CheckOutRequest{MileageEnd: 43000})
	assert.ErrorIs(t, err, ErrLocked)
	inspections.AssertNotCalled(t, "SaveCheckOut", mock.Anything, mock.Anything)
}

func TestService_CheckOut_WithoutCheckIn(t *testing.T) {
	inspections := new(MockInspectionRepository)
	reservations := new(MockReservationRepository)

	reservations.On("GetByID", mock.Anything, int64(1)).Return(activeReservation(), nil)
	inspections.On("GetCheckInByReservation", mock.Anything, int64(1)).Return(nil, gorm.ErrRecordNotFound)

	svc := newTestService(inspections, reservations, new(MockVehicleRepository), new(MockFixedChargeRepository))

	_, err := svc.CheckOut(context.Background(), 1, CheckOutRequest{MileageEnd: 43000})
	assert.ErrorIs(t, err, ErrNotCheckedIn)
}

func TestService_Finalize_LocksAndCompletes(t *testing.T) {
	inspections := new(MockInspectionRepository)
	reservations := new(MockReservationRepository)
	vehicles := new(MockVehicleRepository)

	reservations.On("GetByID", mock.Anything, int64(1)).Return(activeReservation(), nil)

	unlocked := &domain.CheckOut{ID: 601, ReservationID: 1, MileageEnd: 42800, Total: 228}
	locked := &domain.CheckOut{ID: 601, ReservationID: 1, MileageEnd: 42800, Total: 228, Locked: true}
	inspections.On("GetCheckOutByReservation", mock.Anything, int64(1)).Return(unlocked, nil).Once()
	inspections.On("Lock", mock.Anything, int64(601)).Return(nil)
	reservations.On("UpdateStatus", mock.Anything, int64(1), domain.ReservationCompleted).Return(nil)
	vehicles.On("UpdateMileage", mock.Anything, int64(10), 42800).Return(nil)
	vehicles.On("UpdateStatus", mock.Anything, int64(10), domain.VehicleAvailable).Return(nil)
	inspections.On("GetCheckOutByReservation", mock.Anything, int64(1)).Return(locked, nil)
	inspections.On("GetCheckInByReservation", mock.Anything, int64(1)).Return(&domain.CheckIn{ID: 501, ReservationID: 1, MileageStart: 42000}, nil)

	svc := newTestService(inspections, reservations, vehicles, new(MockFixedChargeRepository))

	settlement, err := svc.Finalize(context.Background(), 1)

	assert.NoError(t, err)
	assert.True(t, settlement.Locked)
	assert.Equal(t, 228.0, settlement.Total)
	inspections.AssertExpectations(t)
	reservations.AssertExpectations(t)
	vehicles.AssertExpectations(t)
}

func TestService_Finalize_AnomalySkipsMileageUpdate(t *testing.T) {
	inspections := new(MockInspectionRepository)
	reservations := new(MockReservationRepository)
	vehicles := new(MockVehicleRepository)

	reservations.On("GetByID", mock.Anything, int64(1)).Return(activeReservation(), nil)

	unlocked := &domain.CheckOut{ID: 601, ReservationID: 1, MileageEnd: 41000, MileageAnomaly: true}
	locked := &domain.CheckOut{ID: 601, ReservationID: 1, MileageEnd: 41000, MileageAnomaly: true, Locked: true}
	inspections.On("GetCheckOutByReservation", mock.Anything, int64(1)).Return(unlocked, nil).Once()
	inspections.On("Lock", mock.Anything, int64(601)).Return(nil)
	reservations.On("UpdateStatus", mock.Anything, int64(1), domain.ReservationCompleted).Return(nil)
	vehicles.On("UpdateStatus", mock.Anything, int64(10), domain.VehicleAvailable).Return(nil)
	inspections.On("GetCheckOutByReservation", mock.Anything, int64(1)).Return(locked, nil)
	inspections.On("GetCheckInByReservation", mock.Anything, int64(1)).Return(&domain.CheckIn{ID: 501, ReservationID: 1, MileageStart: 42000}, nil)

	svc := newTestService(inspections, reservations, vehicles, new(MockFixedChargeRepository))

	_, err := svc.Finalize(context.Background(), 1)

	assert.NoError(t, err)
	vehicles.AssertNotCalled(t, "UpdateMileage", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Finalize_AlreadyLocked(t *testing.T) {
	inspections := new(MockInspectionRepository)
	reservations := new(MockReservationRepository)

	reservations.On("GetByID", mock.Anything, int64(1)).Return(activeReservation(), nil)
	inspections.On("GetCheckOutByReservation", mock.Anything, int64(1)).Return(&domain.CheckOut{
		ID: 601, ReservationID: 1, Locked: true,
	}, nil)

	svc := newTestService(inspections, reservations, new(MockVehicleRepository), new(MockFixedChargeRepository))

	_, err := svc.Finalize(context.Background(), 1)
	assert.ErrorIs(t, err, ErrLocked)
	inspections.AssertNotCalled(t, "Lock", mock.Anything, mock.Anything)
}

func TestService_DeleteFixedCharge_Unknown(t *testing.T) {
	charges := new(MockFixedChargeRepository)
	charges.On("GetByID", mock.Anything, int64(99)).Return(nil, gorm.ErrRecordNotFound)

	svc := newTestService(new(MockInspectionRepository), new(MockReservationRepository), new(MockVehicleRepository), charges)

	err := svc.DeleteFixedCharge(context.Background(), 99)
	assert.ErrorIs(t, err, ErrChargeNotFound)
}
