package trainer

import (
	"context"
	"errors"

	configRepo "reservodojo/database/repository/configs"
	"reservodojo/models"
	"reservodojo/services/scenario"

	"go.uber.org/zap"
)

// GetConfig returns the stored config, or the default one when none was saved.
func (s *DefaultTrainerService) GetConfig(ctx context.Context, accommodationID string) (*ConfigView, error) {
	cfg, stored, err := s.effectiveConfig(ctx, accommodationID)
	if err != nil {
		return nil, err
	}
	view := &ConfigView{
		Config: cfg,
		Errors: nonNil(scenario.ValidateConfig(cfg)),
		Stored: stored != nil,
	}
	if stored != nil {
		updated := stored.UpdatedAt
		view.UpdatedAt = &updated
	}
	return view, nil
}

// ValidateConfig normalizes raw and reports every problem with the result.
func (s *DefaultTrainerService) ValidateConfig(raw scenario.RawConfig) (models.TrainerConfig, []string) {
	cfg := scenario.NormalizeConfig(raw, s.now())
	return cfg, nonNil(scenario.ValidateConfig(cfg))
}

// SaveConfig stores the normalized config. Nothing is stored when it has
// validation errors; they are all returned in a *ValidationError.
func (s *DefaultTrainerService) SaveConfig(ctx context.Context, accommodationID string, raw scenario.RawConfig) (*ConfigView, error) {
	cfg, problems := s.ValidateConfig(raw)
	if len(problems) > 0 {
		return nil, &ValidationError{Errors: problems}
	}
	if err := s.Configs.Upsert(ctx, accommodationID, cfg); err != nil {
		return nil, err
	}
	s.logger().Info("Trainer config saved",
		zap.String("accommodationId", accommodationID),
		zap.Int("guests", len(cfg.Guests)),
		zap.Int("roomCategories", len(cfg.RoomCategories)),
	)
	return s.GetConfig(ctx, accommodationID)
}

func (s *DefaultTrainerService) effectiveConfig(ctx context.Context, accommodationID string) (models.TrainerConfig, *models.StoredConfig, error) {
	stored, err := s.Configs.Get(ctx, accommodationID)
	if errors.Is(err, configRepo.ErrConfigNotFound) {
		return scenario.DefaultConfig(s.now()), nil, nil
	}
	if err != nil {
		return models.TrainerConfig{}, nil, err
	}
	return stored.Config, stored, nil
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
