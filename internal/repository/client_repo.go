package repository

import (
	"context"
	"time"

	"fleetdesk/internal/domain"

	"gorm.io/gorm"
)

type ClientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

type clientModel struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	Name          string    `gorm:"column:name"`
	Email         string    `gorm:"column:email"`
	Phone         string    `gorm:"column:phone"`
	LicenceNumber string    `gorm:"column:licence_number"`
	Address       string    `gorm:"column:address"`
	Notes         *string   `gorm:"column:notes"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (clientModel) TableName() string { return "clients" }

func toDomainClient(m clientModel) *domain.Client {
	var notes string
	if m.Notes != nil {
		notes = *m.Notes
	}

	return &domain.Client{
		ID:            m.ID,
		Name:          m.Name,
		Email:         m.Email,
		Phone:         m.Phone,
		LicenceNumber: m.LicenceNumber,
		Address:       m.Address,
		Notes:         notes,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toClientModel(c *domain.Client) clientModel {
	var notes *string
	if c.Notes != "" {
		v := c.Notes
		notes = &v
	}

	return clientModel{
		ID:            c.ID,
		Name:          c.Name,
		Email:         c.Email,
		Phone:         c.Phone,
		LicenceNumber: c.LicenceNumber,
		Address:       c.Address,
		Notes:         notes,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func (r *ClientRepository) Create(ctx context.Context, c *domain.Client) error {
	m := toClientModel(c)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*c = *toDomainClient(m)
	return nil
}

func (r *ClientRepository) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	var m clientModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainClient(m), nil
}

func (r *ClientRepository) Search(ctx context.Context, query string, limit, offset int) ([]domain.Client, error) {
	q := r.db.WithContext(ctx).Model(&clientModel{})
	if query != "" {
		like := "%" + query + "%"
		q = q.Where("name LIKE ? OR email LIKE ? OR licence_number LIKE ?", like, like, like)
	}

	var rows []clientModel
	if err := q.Order("name ASC").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Client, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainClient(m))
	}
	return out, nil
}

func (r *ClientRepository) Update(ctx context.Context, c *domain.Client) error {
	m := toClientModel(c)
	tx := r.db.WithContext(ctx).Save(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*c = *toDomainClient(m)
	return nil
}
