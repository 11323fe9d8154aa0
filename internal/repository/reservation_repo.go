package repository

import (
	"context"
	"errors"
	"time"

	"fleetdesk/internal/billing"
	"fleetdesk/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type ReservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

type reservationModel struct {
	ID                 int64      `gorm:"column:id;primaryKey"`
	VehicleID          int64      `gorm:"column:vehicle_id;index"`
	ClientID           int64      `gorm:"column:client_id;index"`
	StartDate          string     `gorm:"column:start_date"`
	StartTime          string     `gorm:"column:start_time"`
	EndDate            string     `gorm:"column:end_date"`
	EndTime            string     `gorm:"column:end_time"`
	EstimatedPrice     float64    `gorm:"column:estimated_price"`
	Strategy           string     `gorm:"column:strategy"`
	Status             string     `gorm:"column:status"`
	Notes              *string    `gorm:"column:notes"`
	CancellationReason *string    `gorm:"column:cancellation_reason"`
	CancelledAt        *time.Time `gorm:"column:cancelled_at"`
	CreatedAt          time.Time  `gorm:"column:created_at"`
	UpdatedAt          time.Time  `gorm:"column:updated_at"`
}

func (reservationModel) TableName() string { return "reservations" }

func toDomainReservation(m reservationModel) *domain.Reservation {
	var notes, reason string
	if m.Notes != nil {
		notes = *m.Notes
	}
	if m.CancellationReason != nil {
		reason = *m.CancellationReason
	}

	return &domain.Reservation{
		ID:                 m.ID,
		VehicleID:          m.VehicleID,
		ClientID:           m.ClientID,
		StartDate:          m.StartDate,
		StartTime:          m.StartTime,
		EndDate:            m.EndDate,
		EndTime:            m.EndTime,
		EstimatedPrice:     m.EstimatedPrice,
		Strategy:           m.Strategy,
		Status:             domain.ReservationStatus(m.Status),
		Notes:              notes,
		CancellationReason: reason,
		CancelledAt:        m.CancelledAt,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

func toReservationModel(r *domain.Reservation) reservationModel {
	var notes, reason *string
	if r.Notes != "" {
		v := r.Notes
		notes = &v
	}
	if r.CancellationReason != "" {
		v := r.CancellationReason
		reason = &v
	}

	return reservationModel{
		ID:                 r.ID,
		VehicleID:          r.VehicleID,
		ClientID:           r.ClientID,
		StartDate:          r.StartDate,
		StartTime:          r.StartTime,
		EndDate:            r.EndDate,
		EndTime:            r.EndTime,
		EstimatedPrice:     r.EstimatedPrice,
		Strategy:           r.Strategy,
		Status:             string(r.Status),
		Notes:              notes,
		CancellationReason: reason,
		CancelledAt:        r.CancelledAt,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
}

func (r *ReservationRepository) Create(ctx context.Context, res *domain.Reservation) error {
	m := toReservationModel(res)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*res = *toDomainReservation(m)
	return nil
}

func (r *ReservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	var m reservationModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainReservation(m), nil
}

// CheckAvailability reports whether the vehicle is free of non-cancelled
// reservations overlapping [startKey, endKey). Keys are civil
// "2006-01-02 15:04" strings, which compare correctly as text.
func (r *ReservationRepository) CheckAvailability(ctx context.Context, vehicleID int64, startKey, endKey string, excludeID int64) (bool, error) {
	var cnt int64
	q := `
SELECT COUNT(1)
FROM reservations
WHERE vehicle_id = ?
  AND id <> ?
  AND status NOT IN ('cancelled', 'completed')
  AND (start_date || ' ' || CASE WHEN start_time = '' THEN ? ELSE start_time END) < ?
  AND (end_date || ' ' || CASE WHEN end_time = '' THEN ? ELSE end_time END) > ?
`
	hour := billing.DefaultHour
	tx := r.db.WithContext(ctx).Raw(q, vehicleID, excludeID, hour, endKey, hour, startKey).Scan(&cnt)
	if tx.Error != nil {
		return false, tx.Error
	}
	return cnt == 0, nil
}

func (r *ReservationRepository) List(ctx context.Context, status string, limit, offset int) ([]domain.Reservation, error) {
	q := r.db.WithContext(ctx).Model(&reservationModel{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var rows []reservationModel
	if err := q.Order("start_date DESC, id DESC").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Reservation, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainReservation(m))
	}
	return out, nil
}

func (r *ReservationRepository) ListByClient(ctx context.Context, clientID int64, limit, offset int) ([]domain.Reservation, error) {
	var rows []reservationModel
	err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("start_date DESC, id DESC").
		Limit(limit).Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.Reservation, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainReservation(m))
	}
	return out, nil
}

func (r *ReservationRepository) Update(ctx context.Context, res *domain.Reservation) error {
	m := toReservationModel(res)
	tx := r.db.WithContext(ctx).Save(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*res = *toDomainReservation(m)
	return nil
}

func (r *ReservationRepository) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error {
	return r.db.WithContext(ctx).Model(&reservationModel{}).Where("id = ?", id).Update("status", string(status)).Error
}

func (r *ReservationRepository) CancelWithReason(ctx context.Context, id int64, reason string) error {
	now := time.Now()
	return r.db.WithContext(ctx).Model(&reservationModel{}).Where("id = ?", id).Updates(map[string]any{
		"status":              string(domain.ReservationCancelled),
		"cancellation_reason": reason,
		"cancelled_at":        now,
	}).Error
}

// IsUniqueViolation reports whether err is a postgres unique-constraint
// violation, optionally on a named constraint. SQLite reports the same
// condition through gorm's translated ErrDuplicatedKey.
func IsUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && (constraint == "" || pgErr.ConstraintName == constraint)
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
