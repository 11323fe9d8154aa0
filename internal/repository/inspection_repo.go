package repository

import (
	"context"
	"encoding/json"
	"time"

	"fleetdesk/internal/domain"

	"gorm.io/gorm"
)

type InspectionRepository struct {
	db *gorm.DB
}

func NewInspectionRepository(db *gorm.DB) *InspectionRepository {
	return &InspectionRepository{db: db}
}

type checkInModel struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	ReservationID int64     `gorm:"column:reservation_id;uniqueIndex"`
	MileageStart  int       `gorm:"column:mileage_start"`
	FuelLevel     string    `gorm:"column:fuel_level"`
	Notes         *string   `gorm:"column:notes"`
	CreatedAt     time.Time `gorm:"column:created_at"`
}

func (checkInModel) TableName() string { return "check_ins" }

type checkOutModel struct {
	ID             int64      `gorm:"column:id;primaryKey"`
	ReservationID  int64      `gorm:"column:reservation_id;uniqueIndex"`
	MileageEnd     int        `gorm:"column:mileage_end"`
	FuelLevel      string     `gorm:"column:fuel_level"`
	Damages        []byte     `gorm:"column:damages"`
	Notes          *string    `gorm:"column:notes"`
	Days           int        `gorm:"column:days"`
	RentalCost     float64    `gorm:"column:rental_cost"`
	Strategy       string     `gorm:"column:strategy"`
	OverageCost    float64    `gorm:"column:overage_cost"`
	FeesTotal      float64    `gorm:"column:fees_total"`
	Total          float64    `gorm:"column:total"`
	MileageAnomaly bool       `gorm:"column:mileage_anomaly"`
	Locked         bool       `gorm:"column:locked"`
	LockedAt       *time.Time `gorm:"column:locked_at"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at"`
}

func (checkOutModel) TableName() string { return "check_outs" }

type checkOutFeeModel struct {
	ID         int64   `gorm:"column:id;primaryKey"`
	CheckOutID int64   `gorm:"column:check_out_id;index"`
	Label      string  `gorm:"column:label"`
	Amount     float64 `gorm:"column:amount"`
}

func (checkOutFeeModel) TableName() string { return "check_out_fees" }

func toDomainCheckIn(m checkInModel) *domain.CheckIn {
	var notes string
	if m.Notes != nil {
		notes = *m.Notes
	}

	return &domain.CheckIn{
		ID:            m.ID,
		ReservationID: m.ReservationID,
		MileageStart:  m.MileageStart,
		FuelLevel:     m.FuelLevel,
		Notes:         notes,
		CreatedAt:     m.CreatedAt,
	}
}

func toDomainCheckOut(m checkOutModel, fees []checkOutFeeModel) *domain.CheckOut {
	var notes string
	if m.Notes != nil {
		notes = *m.Notes
	}
	var damages []string
	if len(m.Damages) > 0 {
		_ = json.Unmarshal(m.Damages, &damages)
	}

	out := &domain.CheckOut{
		ID:             m.ID,
		ReservationID:  m.ReservationID,
		MileageEnd:     m.MileageEnd,
		FuelLevel:      m.FuelLevel,
		Damages:        damages,
		Notes:          notes,
		Days:           m.Days,
		RentalCost:     m.RentalCost,
		Strategy:       m.Strategy,
		OverageCost:    m.OverageCost,
		FeesTotal:      m.FeesTotal,
		Total:          m.Total,
		MileageAnomaly: m.MileageAnomaly,
		Locked:         m.Locked,
		LockedAt:       m.LockedAt,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}

	for _, f := range fees {
		out.Fees = append(out.Fees, domain.CheckOutFee{
			ID:         f.ID,
			CheckOutID: f.CheckOutID,
			Label:      f.Label,
			Amount:     f.Amount,
		})
	}
	return out
}

func toCheckOutModel(c *domain.CheckOut) checkOutModel {
	var notes *string
	if c.Notes != "" {
		v := c.Notes
		notes = &v
	}
	var damages []byte
	if len(c.Damages) > 0 {
		damages, _ = json.Marshal(c.Damages)
	}

	return checkOutModel{
		ID:             c.ID,
		ReservationID:  c.ReservationID,
		MileageEnd:     c.MileageEnd,
		FuelLevel:      c.FuelLevel,
		Damages:        damages,
		Notes:          notes,
		Days:           c.Days,
		RentalCost:     c.RentalCost,
		Strategy:       c.Strategy,
		OverageCost:    c.OverageCost,
		FeesTotal:      c.FeesTotal,
		Total:          c.Total,
		MileageAnomaly: c.MileageAnomaly,
		Locked:         c.Locked,
		LockedAt:       c.LockedAt,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

func (r *InspectionRepository) CreateCheckIn(ctx context.Context, ci *domain.CheckIn) error {
	var notes *string
	if ci.Notes != "" {
		v := ci.Notes
		notes = &v
	}
	m := checkInModel{
		ReservationID: ci.ReservationID,
		MileageStart:  ci.MileageStart,
		FuelLevel:     ci.FuelLevel,
		Notes:         notes,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*ci = *toDomainCheckIn(m)
	return nil
}

func (r *InspectionRepository) GetCheckInByReservation(ctx context.Context, reservationID int64) (*domain.CheckIn, error) {
	var m checkInModel
	tx := r.db.WithContext(ctx).Where("reservation_id = ?", reservationID).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainCheckIn(m), nil
}

// SaveCheckOut writes the check-out and replaces its fee lines in one
// transaction.
func (r *InspectionRepository) SaveCheckOut(ctx context.Context, co *domain.CheckOut) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m := toCheckOutModel(co)
		if err := tx.Save(&m).Error; err != nil {
			return err
		}

		if err := tx.Where("check_out_id = ?", m.ID).Delete(&checkOutFeeModel{}).Error; err != nil {
			return err
		}
		for i := range co.Fees {
			fee := checkOutFeeModel{
				CheckOutID: m.ID,
				Label:      co.Fees[i].Label,
				Amount:     co.Fees[i].Amount,
			}
			if err := tx.Create(&fee).Error; err != nil {
				return err
			}
			co.Fees[i].ID = fee.ID
			co.Fees[i].CheckOutID = m.ID
		}

		co.ID = m.ID
		co.CreatedAt = m.CreatedAt
		co.UpdatedAt = m.UpdatedAt
		return nil
	})
}

func (r *InspectionRepository) GetCheckOutByID(ctx context.Context, id int64) (*domain.CheckOut, error) {
	var m checkOutModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return r.withFees(ctx, m)
}

func (r *InspectionRepository) GetCheckOutByReservation(ctx context.Context, reservationID int64) (*domain.CheckOut, error) {
	var m checkOutModel
	tx := r.db.WithContext(ctx).Where("reservation_id = ?", reservationID).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return r.withFees(ctx, m)
}

func (r *InspectionRepository) withFees(ctx context.Context, m checkOutModel) (*domain.CheckOut, error) {
	var fees []checkOutFeeModel
	if err := r.db.WithContext(ctx).Where("check_out_id = ?", m.ID).Order("id ASC").Find(&fees).Error; err != nil {
		return nil, err
	}
	return toDomainCheckOut(m, fees), nil
}

// Lock flips the one-way locked flag. Returns gorm.ErrRecordNotFound if
// the check-out does not exist or is already locked.
func (r *InspectionRepository) Lock(ctx context.Context, id int64) error {
	now := time.Now()
	tx := r.db.WithContext(ctx).Model(&checkOutModel{}).
		Where("id = ? AND locked = ?", id, false).
		Updates(map[string]any{"locked": true, "locked_at": now})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
