package client

import (
	"context"

	"fleetdesk/internal/domain"
)

type ClientRepository interface {
	Create(ctx context.Context, c *domain.Client) error
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
	Search(ctx context.Context, query string, limit, offset int) ([]domain.Client, error)
	Update(ctx context.Context, c *domain.Client) error
}
