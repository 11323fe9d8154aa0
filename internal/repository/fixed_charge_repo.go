package repository

import (
	"context"
	"time"

	"fleetdesk/internal/domain"

	"gorm.io/gorm"
)

type FixedChargeRepository struct {
	db *gorm.DB
}

func NewFixedChargeRepository(db *gorm.DB) *FixedChargeRepository {
	return &FixedChargeRepository{db: db}
}

type fixedChargeModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	Label     string    `gorm:"column:label"`
	Amount    float64   `gorm:"column:amount"`
	Active    bool      `gorm:"column:active"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (fixedChargeModel) TableName() string { return "fixed_charges" }

func toDomainFixedCharge(m fixedChargeModel) *domain.FixedCharge {
	return &domain.FixedCharge{
		ID:        m.ID,
		Label:     m.Label,
		Amount:    m.Amount,
		Active:    m.Active,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func (r *FixedChargeRepository) Create(ctx context.Context, fc *domain.FixedCharge) error {
	m := fixedChargeModel{Label: fc.Label, Amount: fc.Amount, Active: fc.Active}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*fc = *toDomainFixedCharge(m)
	return nil
}

func (r *FixedChargeRepository) GetByID(ctx context.Context, id int64) (*domain.FixedCharge, error) {
	var m fixedChargeModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainFixedCharge(m), nil
}

func (r *FixedChargeRepository) ListActive(ctx context.Context) ([]domain.FixedCharge, error) {
	var rows []fixedChargeModel
	if err := r.db.WithContext(ctx).Where("active = ?", true).Order("label ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.FixedCharge, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainFixedCharge(m))
	}
	return out, nil
}

func (r *FixedChargeRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&fixedChargeModel{}).Where("id = ?", id).Update("active", false).Error
}
