package taskRepo

import (
	"context"
	"sort"
	"sync"

	"reservodojo/models"

	"github.com/google/uuid"
)

// MemoryTaskRepo keeps tasks in process, for STORE_DRIVER=memory and tests.
type MemoryTaskRepo struct {
	tasks map[string]models.Task
	mu    sync.RWMutex
}

func NewMemoryTaskRepo() *MemoryTaskRepo {
	return &MemoryTaskRepo{tasks: make(map[string]models.Task)}
}

func (r *MemoryTaskRepo) Insert(ctx context.Context, task *models.Task) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	if task.ReviewStatus == "" {
		task.ReviewStatus = models.ReviewStatusNew
	}
	r.tasks[task.ID] = *task
	return task.ID, nil
}

func (r *MemoryTaskRepo) GetByID(ctx context.Context, accommodationID, id string) (*models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tasks[id]
	if !ok || t.AccommodationID != accommodationID {
		return nil, ErrTaskNotFound
	}
	return &t, nil
}

func (r *MemoryTaskRepo) List(ctx context.Context, accommodationID string, filter models.TaskFilter) ([]models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.Task{}
	for _, t := range r.tasks {
		if t.AccommodationID != accommodationID {
			continue
		}
		if filter.HideOkay && t.ReviewStatus == models.ReviewStatusOkay {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].FinishedAt.After(out[j].FinishedAt)
	})
	if limit := EffectiveLimit(filter.Limit); len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *MemoryTaskRepo) UpdateReviewStatus(ctx context.Context, accommodationID, id string, status models.ReviewStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[id]
	if !ok || t.AccommodationID != accommodationID {
		return ErrTaskNotFound
	}
	t.ReviewStatus = status
	r.tasks[id] = t
	return nil
}
