package client

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"fleetdesk/internal/domain"
	"fleetdesk/internal/pkg/validator"
)

type Service struct {
	clients ClientRepository
}

func NewService(clients ClientRepository) *Service {
	return &Service{clients: clients}
}

func (s *Service) CreateClient(ctx context.Context, req CreateClientRequest) (*domain.Client, error) {
	c := &domain.Client{
		Name:          strings.TrimSpace(req.Name),
		Email:         strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:         req.Phone,
		LicenceNumber: strings.ToUpper(strings.TrimSpace(req.LicenceNumber)),
		Address:       req.Address,
		Notes:         req.Notes,
	}
	if fields := validator.Validate(c); fields != nil {
		return nil, ErrValidation
	}
	if err := s.clients.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) GetClient(ctx context.Context, id int64) (*domain.Client, error) {
	return s.getByID(ctx, id)
}

func (s *Service) SearchClients(ctx context.Context, query string, limit, offset int) ([]domain.Client, error) {
	return s.clients.Search(ctx, strings.TrimSpace(query), limit, offset)
}

func (s *Service) UpdateClient(ctx context.Context, id int64, req UpdateClientRequest) (*domain.Client, error) {
	c, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		c.Name = strings.TrimSpace(req.Name)
	}
	if req.Email != "" {
		c.Email = strings.ToLower(strings.TrimSpace(req.Email))
	}
	if req.Phone != "" {
		c.Phone = req.Phone
	}
	if req.LicenceNumber != "" {
		c.LicenceNumber = strings.ToUpper(strings.TrimSpace(req.LicenceNumber))
	}
	if req.Address != "" {
		c.Address = req.Address
	}
	if req.Notes != "" {
		c.Notes = req.Notes
	}

	if err := s.clients.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) getByID(ctx context.Context, id int64) (*domain.Client, error) {
	c, err := s.clients.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}
