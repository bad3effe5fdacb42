package configRepo

import (
	"context"
	"sync"
	"time"

	"reservodojo/models"
)

// MemoryConfigRepo keeps configs in process, for STORE_DRIVER=memory and tests.
type MemoryConfigRepo struct {
	configs map[string]models.StoredConfig
	mu      sync.RWMutex
}

func NewMemoryConfigRepo() *MemoryConfigRepo {
	return &MemoryConfigRepo{configs: make(map[string]models.StoredConfig)}
}

func (r *MemoryConfigRepo) Get(ctx context.Context, accommodationID string) (*models.StoredConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.configs[accommodationID]
	if !ok {
		return nil, ErrConfigNotFound
	}
	stored.Config = stored.Config.Clone()
	return &stored, nil
}

func (r *MemoryConfigRepo) Upsert(ctx context.Context, accommodationID string, cfg models.TrainerConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.configs[accommodationID] = models.StoredConfig{
		AccommodationID: accommodationID,
		Config:          cfg.Clone(),
		UpdatedAt:       time.Now().UTC(),
	}
	return nil
}
