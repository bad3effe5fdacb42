package taskRepo

import (
	"context"
	"errors"

	"reservodojo/models"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

var ErrTaskNotFound = errors.New("task not found")

// TaskRepository stores finished tasks, always scoped to an accommodation.
type TaskRepository interface {
	// Insert assigns an id when the task has none and returns it.
	Insert(ctx context.Context, task *models.Task) (string, error)
	GetByID(ctx context.Context, accommodationID, id string) (*models.Task, error)
	// List returns the newest tasks first.
	List(ctx context.Context, accommodationID string, filter models.TaskFilter) ([]models.Task, error)
	UpdateReviewStatus(ctx context.Context, accommodationID, id string, status models.ReviewStatus) error
}

// EffectiveLimit clamps a requested listing size.
func EffectiveLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultListLimit
	case limit > MaxListLimit:
		return MaxListLimit
	}
	return limit
}
