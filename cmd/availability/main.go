package main

import (
	"net/http"

	"github.com/joho/godotenv"

	"tably/internal/availability/handler"
	"tably/internal/availability/repository"
	"tably/internal/availability/service"
	"tably/internal/availability/validator"
	"tably/pkg/app"
	"tably/pkg/config"
	"tably/pkg/middleware"
)

const ServiceName = "availability"

func main() {
	_ = godotenv.Load()

	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	if cfg.CacheEnabled {
		cfg.SetRedis()
	}

	cfg.Log.Info("Starting availability service")
	availabilityService := initServices(cfg)

	serverApp := app.NewApplication(cfg)

	var extra []func(http.Handler) http.Handler
	if cfg.CacheEnabled {
		extra = append(extra, middleware.ResponseCache(cfg.Client.Redis, cfg.CacheTTL, cfg.Log))
	}

	queryValidator := validator.NewQueryValidator(cfg.Log)
	serverApp.SetApp(handler.NewAvailabilityHandler(availabilityService, queryValidator, cfg.Log), extra...)
	serverApp.Run()
}

func initServices(cfg *config.Config) service.AvailabilityService {
	hoursRepo := repository.NewHoursRepository(cfg.Client.Mongo, cfg, cfg.Log)
	bookingReader := repository.NewBookingReader(cfg.Client.Mongo, cfg, cfg.Log)
	availabilityService := service.NewAvailabilityService(hoursRepo, bookingReader, cfg, cfg.Log)

	cfg.Log.Info("Availability service initialized", "database", cfg.MongoDatabaseName)
	return availabilityService
}
