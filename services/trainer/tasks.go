package trainer

import (
	"context"
	"strings"

	"reservodojo/models"
	"reservodojo/services/scenario"
)

func (s *DefaultTrainerService) ListTasks(ctx context.Context, accommodationID string, filter models.TaskFilter) ([]models.Task, error) {
	return s.Tasks.List(ctx, accommodationID, filter)
}

func (s *DefaultTrainerService) GetTask(ctx context.Context, accommodationID, id string) (*models.Task, error) {
	return s.Tasks.GetByID(ctx, accommodationID, id)
}

// SetReviewStatus records the trainer's verdict and returns the updated task.
func (s *DefaultTrainerService) SetReviewStatus(ctx context.Context, accommodationID, id, status string) (*models.Task, error) {
	parsed, err := models.ParseReviewStatus(status)
	if err != nil {
		return nil, err
	}
	if err := s.Tasks.UpdateReviewStatus(ctx, accommodationID, id, parsed); err != nil {
		return nil, err
	}
	return s.Tasks.GetByID(ctx, accommodationID, id)
}

// RenderTask renders a stored task again. The stored finish time is used, so
// repeated downloads are byte-identical.
func (s *DefaultTrainerService) RenderTask(ctx context.Context, accommodationID, id, format string) (*RenderedTask, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = FormatCompact
	}
	if format != FormatCompact && format != FormatReport {
		return nil, ErrUnknownFormat
	}

	task, err := s.Tasks.GetByID(ctx, accommodationID, id)
	if err != nil {
		return nil, err
	}
	render := scenario.RenderTaskText
	if format == FormatReport {
		render = scenario.RenderTaskReport
	}
	return &RenderedTask{
		FileName: scenario.TaskFileName(task.GeneratedID, task.BookingNumber),
		Content:  render(task.Scenario, task.BookingNumber, task.GeneratedID, task.FollowUp(), task.FinishedAt),
	}, nil
}
