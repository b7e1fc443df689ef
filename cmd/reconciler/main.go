package main

import (
	"github.com/joho/godotenv"

	"tably/internal/reconciler/handler"
	"tably/internal/reconciler/repository"
	"tably/internal/reconciler/service"
	"tably/pkg/analytics"
	"tably/pkg/app"
	"tably/pkg/config"
	kafka_config "tably/pkg/kafka/config"
	"tably/pkg/middleware"
)

const ServiceName = "reconciler"

func main() {
	_ = godotenv.Load()

	cfg := config.Load(ServiceName)
	if cfg.SchedulerSecret == "" {
		cfg.Log.Fatal("SCHEDULER_SECRET must be set for the reconciler service")
	}
	cfg.SetMongo()

	cfg.Log.Info("Starting reconciler service")

	recorder := initRecorder(cfg)
	defer func() {
		if err := recorder.Close(); err != nil {
			cfg.Log.Error("failed to close analytics recorder", "error", err)
		}
	}()

	reconcilerService := initServices(cfg, recorder)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		handler.NewReconcilerHandler(reconcilerService, cfg.Log),
		middleware.SchedulerAuth(cfg.SchedulerSecret, cfg.Log),
	)
	serverApp.Run()
}

func initRecorder(cfg *config.Config) analytics.Recorder {
	if !cfg.AnalyticsEnabled {
		cfg.Log.Info("Analytics disabled, events will be dropped")
		return analytics.NewNoopRecorder()
	}

	recorder, err := analytics.NewKafkaRecorder(kafka_config.Load(), cfg.AnalyticsTopic, ServiceName, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to initialize analytics recorder", "error", err)
	}
	cfg.Log.Info("Analytics recorder initialized", "topic", cfg.AnalyticsTopic)
	return recorder
}

func initServices(cfg *config.Config, recorder analytics.Recorder) service.ReconcilerService {
	expiryRepo := repository.NewExpiryRepository(cfg.Client.Mongo, cfg, cfg.Log)
	reconcilerService := service.NewReconcilerService(expiryRepo, recorder, cfg, cfg.Log)

	cfg.Log.Info("Reconciler service initialized",
		"database", cfg.MongoDatabaseName,
		"chunk_size", cfg.ReconcilerChunkSize,
	)
	return reconcilerService
}
