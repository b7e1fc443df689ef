package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "tably"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultRedisAddr    = "localhost:6379"
	DefaultCacheEnabled = true
	DefaultCacheTTL     = 30 * time.Second

	DefaultRateLimitRequests = 60
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultVenueTimeZone      = "Europe/London"
	DefaultDefaultMaxCovers   = 50
	DefaultSlotIntervalMin    = 30
	DefaultDefaultDurationMin = 120

	DefaultAvailabilityHorizonWeeks = 8
	DefaultReconcilerChunkSize      = 200

	DefaultAnalyticsEnabled = false
	DefaultAnalyticsTopic   = "booking-analytics"
)
