// Package export writes finished training tasks to disk through the asynq queue.
package export

import (
	"encoding/json"
	"fmt"
	"time"

	"reservodojo/models"

	"github.com/hibiken/asynq"
)

const TypeTaskExport = "task:export"

// Payload is everything the worker needs to write a task file without a
// database round trip.
type Payload struct {
	TaskID        string          `json:"taskId"`
	GeneratedID   string          `json:"generatedId"`
	BookingNumber string          `json:"bookingNumber"`
	Scenario      models.Scenario `json:"scenario"`
	FollowUp      string          `json:"followUp,omitempty"`
	FinishedAt    time.Time       `json:"finishedAt"`
}

// PayloadFromTask builds the export payload of a stored task.
func PayloadFromTask(task models.Task) Payload {
	return Payload{
		TaskID:        task.ID,
		GeneratedID:   task.GeneratedID,
		BookingNumber: task.BookingNumber,
		Scenario:      task.Scenario,
		FollowUp:      task.FollowUp(),
		FinishedAt:    task.FinishedAt,
	}
}

func NewExportTask(payload Payload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeTaskExport, b)
	opts := []asynq.Option{asynq.MaxRetry(5), asynq.Timeout(30 * time.Second)}

	return task, opts, nil
}

// ParsePayload decodes the payload of a task:export task.
func ParsePayload(task *asynq.Task) (Payload, error) {
	var p Payload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return Payload{}, fmt.Errorf("invalid %s payload: %w", TypeTaskExport, err)
	}
	return p, nil
}
