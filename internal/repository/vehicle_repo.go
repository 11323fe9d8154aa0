package repository

import (
	"context"
	"encoding/json"
	"time"

	"fleetdesk/internal/domain"

	"gorm.io/gorm"
)

type VehicleRepository struct {
	db *gorm.DB
}

func NewVehicleRepository(db *gorm.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

type vehicleModel struct {
	ID               int64     `gorm:"column:id;primaryKey"`
	Registration     string    `gorm:"column:registration;uniqueIndex"`
	Make             string    `gorm:"column:make"`
	Model            string    `gorm:"column:model"`
	Year             int       `gorm:"column:year"`
	Mileage          int       `gorm:"column:mileage"`
	Status           string    `gorm:"column:status"`
	Photos           []byte    `gorm:"column:photos"`
	DailyRate        float64   `gorm:"column:daily_rate"`
	WeekendFlatRate  float64   `gorm:"column:weekend_flat_rate"`
	DailyKmAllowance int       `gorm:"column:daily_km_allowance"`
	UnlimitedMileage bool      `gorm:"column:unlimited_mileage"`
	PerKmOverageRate float64   `gorm:"column:per_km_overage_rate"`
	CreatedAt        time.Time `gorm:"column:created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at"`
}

func (vehicleModel) TableName() string { return "vehicles" }

func toDomainVehicle(m vehicleModel) *domain.Vehicle {
	var photos []string
	if len(m.Photos) > 0 {
		_ = json.Unmarshal(m.Photos, &photos)
	}

	return &domain.Vehicle{
		ID:               m.ID,
		Registration:     m.Registration,
		Make:             m.Make,
		Model:            m.Model,
		Year:             m.Year,
		Mileage:          m.Mileage,
		Status:           domain.VehicleStatus(m.Status),
		Photos:           photos,
		DailyRate:        m.DailyRate,
		WeekendFlatRate:  m.WeekendFlatRate,
		DailyKmAllowance: m.DailyKmAllowance,
		UnlimitedMileage: m.UnlimitedMileage,
		PerKmOverageRate: m.PerKmOverageRate,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func toVehicleModel(v *domain.Vehicle) vehicleModel {
	var photos []byte
	if len(v.Photos) > 0 {
		photos, _ = json.Marshal(v.Photos)
	}

	return vehicleModel{
		ID:               v.ID,
		Registration:     v.Registration,
		Make:             v.Make,
		Model:            v.Model,
		Year:             v.Year,
		Mileage:          v.Mileage,
		Status:           string(v.Status),
		Photos:           photos,
		DailyRate:        v.DailyRate,
		WeekendFlatRate:  v.WeekendFlatRate,
		DailyKmAllowance: v.DailyKmAllowance,
		UnlimitedMileage: v.UnlimitedMileage,
		PerKmOverageRate: v.PerKmOverageRate,
		CreatedAt:        v.CreatedAt,
		UpdatedAt:        v.UpdatedAt,
	}
}

func (r *VehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	m := toVehicleModel(v)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*v = *toDomainVehicle(m)
	return nil
}

func (r *VehicleRepository) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	var m vehicleModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainVehicle(m), nil
}

func (r *VehicleRepository) List(ctx context.Context, status string, limit, offset int) ([]domain.Vehicle, error) {
	q := r.db.WithContext(ctx).Model(&vehicleModel{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var rows []vehicleModel
	if err := q.Order("id ASC").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Vehicle, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainVehicle(m))
	}
	return out, nil
}

func (r *VehicleRepository) Update(ctx context.Context, v *domain.Vehicle) error {
	m := toVehicleModel(v)
	tx := r.db.WithContext(ctx).Save(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*v = *toDomainVehicle(m)
	return nil
}

func (r *VehicleRepository) UpdateMileage(ctx context.Context, id int64, mileage int) error {
	return r.db.WithContext(ctx).Model(&vehicleModel{}).Where("id = ?", id).Update("mileage", mileage).Error
}

func (r *VehicleRepository) UpdateStatus(ctx context.Context, id int64, status domain.VehicleStatus) error {
	return r.db.WithContext(ctx).Model(&vehicleModel{}).Where("id = ?", id).Update("status", string(status)).Error
}

func (r *VehicleRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&vehicleModel{}, id).Error
}
