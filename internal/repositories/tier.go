package repositories

import (
	"context"

	"server/internal/models"
)

// Tier is the uniform capability surface every storage backend implements.
// The router only relies on this contract, so tests can substitute
// in-memory tiers for all backends.
type Tier interface {
	Name() string
	Get(ctx context.Context, id string) (*models.Poll, bool, error)
	Set(ctx context.Context, id string, poll *models.Poll) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*models.Poll, error)
}
