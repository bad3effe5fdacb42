package configRepo

import (
	"context"
	"errors"

	"reservodojo/models"
)

var ErrConfigNotFound = errors.New("trainer config not found")

// ConfigRepository stores one trainer config per accommodation.
type ConfigRepository interface {
	// Get returns ErrConfigNotFound when nothing has been saved yet.
	Get(ctx context.Context, accommodationID string) (*models.StoredConfig, error)
	Upsert(ctx context.Context, accommodationID string, cfg models.TrainerConfig) error
}
