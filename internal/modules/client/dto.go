package client

type CreateClientRequest struct {
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email" binding:"omitempty,email"`
	Phone         string `json:"phone"`
	LicenceNumber string `json:"licence_number" binding:"required"`
	Address       string `json:"address"`
	Notes         string `json:"notes"`
}

type UpdateClientRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email" binding:"omitempty,email"`
	Phone         string `json:"phone"`
	LicenceNumber string `json:"licence_number"`
	Address       string `json:"address"`
	Notes         string `json:"notes"`
}
