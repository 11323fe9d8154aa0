package repository

import (
	"context"
	"time"

	"fleetdesk/internal/domain"

	"gorm.io/gorm"
)

type OrganizationRepository struct {
	db *gorm.DB
}

func NewOrganizationRepository(db *gorm.DB) *OrganizationRepository {
	return &OrganizationRepository{db: db}
}

type organizationModel struct {
	ID             int64     `gorm:"column:id;primaryKey"`
	Name           string    `gorm:"column:name"`
	CurrencyCode   string    `gorm:"column:currency_code"`
	CurrencySymbol string    `gorm:"column:currency_symbol"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (organizationModel) TableName() string { return "organizations" }

func (r *OrganizationRepository) GetByID(ctx context.Context, id int64) (*domain.Organization, error) {
	var m organizationModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &domain.Organization{
		ID:             m.ID,
		Name:           m.Name,
		CurrencyCode:   m.CurrencyCode,
		CurrencySymbol: m.CurrencySymbol,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}, nil
}

func (r *OrganizationRepository) Save(ctx context.Context, o *domain.Organization) error {
	m := organizationModel{
		ID:             o.ID,
		Name:           o.Name,
		CurrencyCode:   o.CurrencyCode,
		CurrencySymbol: o.CurrencySymbol,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
	tx := r.db.WithContext(ctx).Save(&m)
	if tx.Error != nil {
		return tx.Error
	}
	o.ID = m.ID
	return nil
}
