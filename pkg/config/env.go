package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvSchedulerSecret = "SCHEDULER_SECRET"

	EnvRedisAddr     = "REDIS_ADDR"
	EnvRedisPassword = "REDIS_PASSWORD"
	EnvCacheEnabled  = "CACHE_ENABLED"
	EnvCacheTTL      = "CACHE_TTL"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvVenueTimeZone         = "VENUE_TIME_ZONE"
	EnvDefaultMaxCovers      = "DEFAULT_MAX_COVERS"
	EnvSlotIntervalMin       = "SLOT_INTERVAL_MIN"
	EnvDefaultDurationMin    = "DEFAULT_BOOKING_DURATION_MIN"
	EnvSlotCapacityOverrides = "SLOT_CAPACITY_OVERRIDES"

	EnvAvailabilityHorizonWeeks = "AVAILABILITY_HORIZON_WEEKS"
	EnvReconcilerChunkSize      = "RECONCILER_CHUNK_SIZE"

	EnvAnalyticsEnabled = "ANALYTICS_ENABLED"
	EnvAnalyticsTopic   = "ANALYTICS_TOPIC"
)
