// File: reservodojo/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"reservodojo/config"
	"reservodojo/cron"
	"reservodojo/database"
	"reservodojo/database/repository"
	"reservodojo/handlers"
	"reservodojo/middleware"
	"reservodojo/routes"
	"reservodojo/services/export"
	"reservodojo/services/trainer"
	"reservodojo/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	exporter := export.NewExporter(config.AppConfig.ExportDir, logger.Named("export"))

	// repositories.
	var (
		stores   repository.Stores
		enqueuer export.Enqueuer
		worker   *asynq.Server
		closers  []func() error
	)
	if config.UsesMemoryStore() {
		logger.Warn("main: STORE_DRIVER=memory, data is lost on restart and exports run inline")
		stores = repository.NewMemoryStores()
		enqueuer = export.InlineEnqueuer{Exporter: exporter}
		utils.CheckHealth(context.Background(), nil, nil)
	} else {
		database.InitDB()
		utils.InitCache()
		stores = repository.Stores{
			Configs: repository.NewMongoConfigRepo(),
			Tasks:   repository.NewMongoTaskRepo(),
			Drafts:  repository.NewRedisDraftStore(utils.GetCacheClient()),
		}
		asynqEnqueuer := export.NewAsynqEnqueuer(utils.QueueRedisOpt())
		enqueuer = asynqEnqueuer
		closers = append(closers, asynqEnqueuer.Close)
		worker = cron.InitExportWorker(exporter, logger.Named("worker"))
		utils.StartHealthMonitor([]*redis.Client{utils.GetCacheClient()}, database.MongoClient)
	}
	// services.
	trainerService := &trainer.DefaultTrainerService{
		Configs:  stores.Configs,
		Tasks:    stores.Tasks,
		Drafts:   stores.Drafts,
		Exports:  enqueuer,
		DraftTTL: config.AppConfig.DraftTTL,
		Logger:   logger.Named("trainer"),
	}
	handlerBundle := handlers.NewHandlerBundle(handlers.NewTrainerHandler(trainerService))

	// Create the Gin router.
	router := gin.New()
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	if worker != nil {
		worker.Shutdown()
	}
	for _, closeFn := range closers {
		if err := closeFn(); err != nil {
			logger.Sugar().Warnf("main: close failed: %v", err)
		}
	}
	if err := database.CloseDB(ctx); err != nil {
		logger.Sugar().Warnf("main: mongo disconnect failed: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
