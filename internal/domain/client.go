package domain

import "time"

type Client struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name" validate:"required"`
	Email         string    `json:"email,omitempty" validate:"omitempty,email"`
	Phone         string    `json:"phone,omitempty"`
	LicenceNumber string    `json:"licence_number,omitempty"`
	Address       string    `json:"address,omitempty"`
	Notes         string    `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
