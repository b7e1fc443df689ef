package app

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"tably/pkg/client"
	"tably/pkg/config"
	"tably/pkg/logger"
	"tably/pkg/middleware"
)

func TestGracefulShutdown_ClosesClients(t *testing.T) {
	log := logger.New(logger.Config{Level: "error", Format: logger.JSON, Service: "test"})
	rdb := redis.NewClient(&redis.Options{Addr: "localhost:6379"})

	cfg := &config.Config{
		ShutdownTimeout: time.Second,
		Log:             log,
		Client:          &client.Client{Redis: rdb},
	}
	a := &Application{
		cfg:         cfg,
		server:      &http.Server{},
		rateLimiter: middleware.NewClientRateLimiter(10, time.Minute, middleware.RemoteIPExtractor, log),
	}

	a.gracefulShutdown()

	err := rdb.Ping(context.Background()).Err()
	if !errors.Is(err, redis.ErrClosed) {
		t.Errorf("shutdown must close the redis client, ping returned %v", err)
	}
}
