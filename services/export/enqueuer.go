package export

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
)

// Enqueuer hands a finished task over for export.
type Enqueuer interface {
	Enqueue(ctx context.Context, payload Payload) error
}

// AsynqEnqueuer publishes export tasks to the Redis-backed queue.
type AsynqEnqueuer struct {
	Client *asynq.Client
}

func NewAsynqEnqueuer(redisOpts asynq.RedisClientOpt) *AsynqEnqueuer {
	return &AsynqEnqueuer{Client: asynq.NewClient(redisOpts)}
}

func (e *AsynqEnqueuer) Enqueue(ctx context.Context, payload Payload) error {
	task, opts, err := NewExportTask(payload)
	if err != nil {
		return fmt.Errorf("build export task: %w", err)
	}
	if _, err := e.Client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("enqueue export task %s: %w", payload.TaskID, err)
	}
	return nil
}

func (e *AsynqEnqueuer) Close() error {
	return e.Client.Close()
}

// InlineEnqueuer exports synchronously. Used when no queue is configured.
type InlineEnqueuer struct {
	Exporter *Exporter
}

func (e InlineEnqueuer) Enqueue(ctx context.Context, payload Payload) error {
	return e.Exporter.Export(ctx, payload)
}
