package cron

import (
	"context"
	"time"

	"reservodojo/config"
	"reservodojo/services/export"
	"reservodojo/utils"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitExportWorker runs the task export worker in background. The returned
// server is shut down by the caller.
func InitExportWorker(exporter *export.Exporter, logger *zap.Logger) *asynq.Server {
	redisOpts := utils.QueueRedisOpt()

	concurrency := config.AppConfig.ExportWorkerConcurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: concurrency,
			Queues: map[string]int{
				"default": 1,
			},
			Logger: logger.Sugar(),
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(export.TypeTaskExport, exporter.HandleTask)

	// Start Redis health monitor
	go monitorRedisConnection(redisOpts, logger)

	// Start async worker with retry logic
	go func() {
		logger.Info("[ExportWorker] starting async worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Start(mux)
			if err == nil {
				return
			}
			logger.Warn("[ExportWorker] failed to start worker",
				zap.Int("attempt", attempts),
				zap.Int("maxAttempts", maxAttempts),
				zap.Error(err),
			)
			if attempts == maxAttempts {
				logger.Fatal("[ExportWorker] max retry attempts reached")
			}
			time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
		}
	}()
	return srv
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection(opts asynq.RedisClientOpt, logger *zap.Logger) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	defer client.Close()

	ctx := context.Background()
	for {
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Warn("[ExportWorker] Redis connection lost", zap.Error(err))
		}
		time.Sleep(10 * time.Second)
	}
}
