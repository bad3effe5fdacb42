package trainer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	draftRepo "reservodojo/database/repository/drafts"
	"reservodojo/models"
	"reservodojo/services/export"
	"reservodojo/services/scenario"

	"go.uber.org/zap"
)

// NewScenario samples a scenario from the accommodation's config, adjusted for
// the difficulty, and keeps it as a draft until it is finished or discarded.
// A nil seed draws a fresh one.
func (s *DefaultTrainerService) NewScenario(ctx context.Context, accommodationID, userID, difficulty string, seed *int64) (*models.ScenarioDraft, error) {
	cfg, _, err := s.effectiveConfig(ctx, accommodationID)
	if err != nil {
		return nil, err
	}
	level := scenario.ParseDifficulty(difficulty)
	effective := scenario.ApplyDifficulty(cfg, level)

	var streamSeed int64
	if seed != nil {
		streamSeed = *seed
	} else if streamSeed, err = s.seed(); err != nil {
		return nil, err
	}

	sc, err := scenario.GenerateScenario(newRand(streamSeed), effective)
	if err != nil {
		return nil, err
	}

	now := s.now()
	baseID := scenario.NewGeneratedID(now)
	draft := &models.ScenarioDraft{
		GeneratedID:     baseID,
		AccommodationID: accommodationID,
		UserID:          userID,
		Difficulty:      string(level),
		Seed:            streamSeed,
		Scenario:        sc,
		EffectiveConfig: effective,
		CreatedAt:       now,
	}
	// Ids have one-second resolution; a taken id gets a -2, -3, ... suffix.
	for n := 2; ; n++ {
		err = s.Drafts.Save(ctx, draft, s.DraftTTL)
		if err == nil {
			break
		}
		if !errors.Is(err, draftRepo.ErrDraftExists) || n > maxDraftIDAttempts {
			return nil, err
		}
		draft.GeneratedID = fmt.Sprintf("%s-%d", baseID, n)
	}
	s.logger().Debug("Scenario generated",
		zap.String("accommodationId", accommodationID),
		zap.String("generatedId", draft.GeneratedID),
		zap.String("difficulty", draft.Difficulty),
		zap.Int64("seed", streamSeed),
	)
	return draft, nil
}

func (s *DefaultTrainerService) GetDraft(ctx context.Context, accommodationID, userID, generatedID string) (*models.ScenarioDraft, error) {
	return s.Drafts.Get(ctx, accommodationID, userID, generatedID)
}

func (s *DefaultTrainerService) DiscardDraft(ctx context.Context, accommodationID, userID, generatedID string) error {
	return s.Drafts.Delete(ctx, accommodationID, userID, generatedID)
}

// FinishScenario records the booking number the trainee entered. The follow-up
// is drawn here, from the same effective config the scenario came from.
func (s *DefaultTrainerService) FinishScenario(ctx context.Context, accommodationID, userID, generatedID, bookingNumber string) (*FinishResult, error) {
	bookingNumber = strings.TrimSpace(bookingNumber)
	if bookingNumber == "" {
		return nil, ErrBookingNumberRequired
	}
	if len([]rune(bookingNumber)) < minBookingNumberLen {
		return nil, ErrBookingNumberTooShort
	}

	draft, err := s.Drafts.Get(ctx, accommodationID, userID, generatedID)
	if err != nil {
		return nil, err
	}
	// Only the caller whose delete succeeds stores a task.
	if err := s.Drafts.Delete(ctx, accommodationID, userID, generatedID); err != nil {
		return nil, err
	}

	followSeed, err := s.seed()
	if err != nil {
		s.restoreDraft(ctx, draft)
		return nil, err
	}
	task := models.Task{
		AccommodationID: accommodationID,
		CreatedBy:       userID,
		GeneratedID:     draft.GeneratedID,
		BookingNumber:   bookingNumber,
		Scenario:        draft.Scenario,
		Difficulty:      draft.Difficulty,
		FinishedAt:      s.now().UTC(),
		ReviewStatus:    models.ReviewStatusNew,
	}
	if text, ok := scenario.SampleFollowUp(newRand(followSeed), draft.EffectiveConfig); ok {
		task.FollowUpText = &text
	}

	if _, err := s.Tasks.Insert(ctx, &task); err != nil {
		s.restoreDraft(ctx, draft)
		return nil, err
	}

	log := s.logger().With(
		zap.String("accommodationId", accommodationID),
		zap.String("taskId", task.ID),
	)
	if s.Exports != nil {
		if err := s.Exports.Enqueue(ctx, export.PayloadFromTask(task)); err != nil {
			log.Error("Failed to enqueue task export", zap.Error(err))
		}
	}
	log.Info("Scenario finished", zap.String("bookingNumber", bookingNumber))

	return &FinishResult{
		Task:     task,
		Text:     scenario.RenderTaskText(task.Scenario, task.BookingNumber, task.GeneratedID, task.FollowUp(), task.FinishedAt),
		FileName: scenario.TaskFileName(task.GeneratedID, task.BookingNumber),
	}, nil
}

// restoreDraft puts a claimed draft back after a failed finish so the trainee
// can retry.
func (s *DefaultTrainerService) restoreDraft(ctx context.Context, draft *models.ScenarioDraft) {
	if err := s.Drafts.Save(ctx, draft, s.DraftTTL); err != nil {
		s.logger().Warn("Failed to restore draft after failed finish",
			zap.String("generatedId", draft.GeneratedID), zap.Error(err))
	}
}
