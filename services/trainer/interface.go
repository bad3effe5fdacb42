package trainer

import (
	"context"
	"math/rand"
	"time"

	configRepo "reservodojo/database/repository/configs"
	draftRepo "reservodojo/database/repository/drafts"
	taskRepo "reservodojo/database/repository/tasks"
	"reservodojo/models"
	"reservodojo/services/export"
	"reservodojo/services/scenario"
	"reservodojo/utils"

	"go.uber.org/zap"
)

const (
	minBookingNumberLen = 3
	maxDraftIDAttempts  = 100
)

// Render formats for a finished task.
const (
	FormatCompact = "compact"
	FormatReport  = "report"
)

// TrainerService is everything the HTTP layer can do for an accommodation.
type TrainerService interface {
	GetConfig(ctx context.Context, accommodationID string) (*ConfigView, error)
	SaveConfig(ctx context.Context, accommodationID string, raw scenario.RawConfig) (*ConfigView, error)
	ValidateConfig(raw scenario.RawConfig) (models.TrainerConfig, []string)

	NewScenario(ctx context.Context, accommodationID, userID, difficulty string, seed *int64) (*models.ScenarioDraft, error)
	GetDraft(ctx context.Context, accommodationID, userID, generatedID string) (*models.ScenarioDraft, error)
	DiscardDraft(ctx context.Context, accommodationID, userID, generatedID string) error
	FinishScenario(ctx context.Context, accommodationID, userID, generatedID, bookingNumber string) (*FinishResult, error)

	ListTasks(ctx context.Context, accommodationID string, filter models.TaskFilter) ([]models.Task, error)
	GetTask(ctx context.Context, accommodationID, id string) (*models.Task, error)
	SetReviewStatus(ctx context.Context, accommodationID, id, status string) (*models.Task, error)
	RenderTask(ctx context.Context, accommodationID, id, format string) (*RenderedTask, error)
}

// ConfigView is a trainer config plus what is wrong with it.
type ConfigView struct {
	Config    models.TrainerConfig `json:"config"`
	Errors    []string             `json:"errors"`
	Stored    bool                 `json:"stored"`
	UpdatedAt *time.Time           `json:"updatedAt,omitempty"`
}

// FinishResult is returned when a trainee marks a scenario finished.
type FinishResult struct {
	Task     models.Task `json:"task"`
	Text     string      `json:"text"`
	FileName string      `json:"fileName"`
}

// RenderedTask is a downloadable task file.
type RenderedTask struct {
	FileName string
	Content  string
}

// DefaultTrainerService implements TrainerService.
type DefaultTrainerService struct {
	Configs  configRepo.ConfigRepository
	Tasks    taskRepo.TaskRepository
	Drafts   draftRepo.DraftStore
	Exports  export.Enqueuer
	DraftTTL time.Duration
	Logger   *zap.Logger

	// Now and NewSeed default to the wall clock and crypto/rand.
	Now     func() time.Time
	NewSeed func() (int64, error)
}

func (s *DefaultTrainerService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultTrainerService) seed() (int64, error) {
	if s.NewSeed != nil {
		return s.NewSeed()
	}
	return utils.NewSeed()
}

func (s *DefaultTrainerService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.NewNop()
}

// newRand gives every call its own stream so concurrent sessions never share state.
func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
