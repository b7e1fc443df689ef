package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"tably/pkg/client"
	"tably/pkg/logger"
)

// VenueCapacity carries every capacity assumption the availability engine
// needs. It is injected at construction so tests and environments can vary it.
type VenueCapacity struct {
	// DefaultMaxCovers is the venue-wide cover limit per slot.
	DefaultMaxCovers int
	// SlotIntervalMin is the slot generation interval in minutes.
	SlotIntervalMin int
	// DefaultDurationMin is the occupancy assumed for bookings without an
	// explicit duration.
	DefaultDurationMin int
	// SlotOverrides maps "HH:MM" slot starts to a per-slot cover limit.
	SlotOverrides map[string]int
}

// MaxCoversAt returns the cover limit for a slot start time.
func (v VenueCapacity) MaxCoversAt(slot string) int {
	if override, ok := v.SlotOverrides[slot]; ok {
		return override
	}
	return v.DefaultMaxCovers
}

type Config struct {
	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration

	Port string

	SchedulerSecret string

	RedisAddr     string
	RedisPassword string
	CacheEnabled  bool
	CacheTTL      time.Duration

	RateLimitRequests int
	RateLimitWindow   time.Duration

	RequestTimeout time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	VenueTimeZone string
	Venue         VenueCapacity

	AvailabilityHorizonWeeks int
	ReconcilerChunkSize      int

	AnalyticsEnabled bool
	AnalyticsTopic   string

	Log    *logger.Logger
	Client *client.Client
}

func Load(serviceName string) *Config {
	cfg := &Config{
		MongoURI:          getEnvStr(EnvMongoURI, DefaultMongoURI),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),

		Port: getEnvStr(EnvPort, DefaultPort),

		SchedulerSecret: getEnvStr(EnvSchedulerSecret, ""),

		RedisAddr:     getEnvStr(EnvRedisAddr, DefaultRedisAddr),
		RedisPassword: getEnvStr(EnvRedisPassword, ""),
		CacheEnabled:  getEnvBool(EnvCacheEnabled, DefaultCacheEnabled),
		CacheTTL:      getEnvDuration(EnvCacheTTL, DefaultCacheTTL),

		RateLimitRequests: getEnvNum(EnvRateLimitRequests, DefaultRateLimitRequests),
		RateLimitWindow:   getEnvDuration(EnvRateLimitWindow, DefaultRateLimitWindow),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		VenueTimeZone: getEnvStr(EnvVenueTimeZone, DefaultVenueTimeZone),
		Venue: VenueCapacity{
			DefaultMaxCovers:   getEnvNum(EnvDefaultMaxCovers, DefaultDefaultMaxCovers),
			SlotIntervalMin:    getEnvNum(EnvSlotIntervalMin, DefaultSlotIntervalMin),
			DefaultDurationMin: getEnvNum(EnvDefaultDurationMin, DefaultDefaultDurationMin),
			SlotOverrides:      parseSlotOverrides(getEnvStr(EnvSlotCapacityOverrides, "")),
		},

		AvailabilityHorizonWeeks: getEnvNum(EnvAvailabilityHorizonWeeks, DefaultAvailabilityHorizonWeeks),
		ReconcilerChunkSize:      getEnvNum(EnvReconcilerChunkSize, DefaultReconcilerChunkSize),

		AnalyticsEnabled: getEnvBool(EnvAnalyticsEnabled, DefaultAnalyticsEnabled),
		AnalyticsTopic:   getEnvStr(EnvAnalyticsTopic, DefaultAnalyticsTopic),

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, DefaultLogLevel),
			Format:    logger.JSON,
			AddSource: true,
			Service:   serviceName,
		}),
		Client: client.NewClient(),
	}

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

func (cfg *Config) SetMongo() {
	cfg.Client.SetMongo(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
}

func (cfg *Config) SetRedis() {
	cfg.Client.SetRedis(cfg.Log, cfg.RedisAddr, cfg.RedisPassword)
}

func (cfg *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	if cfg.MongoURI == "" {
		errors = append(errors, "MongoURI cannot be empty")
	} else if !regexp.MustCompile(`^mongodb(\+srv)?://`).MatchString(cfg.MongoURI) {
		errors = append(errors, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", cfg.MongoURI))
	}
	if cfg.MongoDatabaseName == "" {
		errors = append(errors, "MongoDatabaseName cannot be empty")
	}
	if cfg.MongoConnTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("MongoConnTimeout must be positive, got: %s", cfg.MongoConnTimeout))
	}

	if _, err := time.LoadLocation(cfg.VenueTimeZone); err != nil {
		errors = append(errors, fmt.Sprintf("VenueTimeZone must be a valid IANA zone, got: %s", cfg.VenueTimeZone))
	}

	if cfg.Venue.DefaultMaxCovers <= 0 {
		errors = append(errors, fmt.Sprintf("DefaultMaxCovers must be positive, got: %d", cfg.Venue.DefaultMaxCovers))
	}
	if cfg.Venue.SlotIntervalMin <= 0 {
		errors = append(errors, fmt.Sprintf("SlotIntervalMin must be positive, got: %d", cfg.Venue.SlotIntervalMin))
	}
	if cfg.Venue.DefaultDurationMin <= 0 {
		errors = append(errors, fmt.Sprintf("DefaultDurationMin must be positive, got: %d", cfg.Venue.DefaultDurationMin))
	}
	for slot, covers := range cfg.Venue.SlotOverrides {
		if covers < 0 {
			errors = append(errors, fmt.Sprintf("Slot override for %s cannot be negative, got: %d", slot, covers))
		}
	}

	if cfg.AvailabilityHorizonWeeks <= 0 {
		errors = append(errors, fmt.Sprintf("AvailabilityHorizonWeeks must be positive, got: %d", cfg.AvailabilityHorizonWeeks))
	}
	if cfg.ReconcilerChunkSize <= 0 {
		errors = append(errors, fmt.Sprintf("ReconcilerChunkSize must be positive, got: %d", cfg.ReconcilerChunkSize))
	}

	if cfg.RateLimitRequests <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitRequests must be positive, got: %d", cfg.RateLimitRequests))
	}
	if cfg.RateLimitWindow <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitWindow must be positive, got: %s", cfg.RateLimitWindow))
	}
	if cfg.RequestTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("RequestTimeout must be positive, got: %s", cfg.RequestTimeout))
	}
	if cfg.MaxRequestSize <= 0 {
		errors = append(errors, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}
	if cfg.CacheTTL <= 0 {
		errors = append(errors, fmt.Sprintf("CacheTTL must be positive, got: %s", cfg.CacheTTL))
	}

	if cfg.ReadTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ReadTimeout must be positive, got: %s", cfg.ReadTimeout))
	}
	if cfg.WriteTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("WriteTimeout must be positive, got: %s", cfg.WriteTimeout))
	}
	if cfg.IdleTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("IdleTimeout must be positive, got: %s", cfg.IdleTimeout))
	}
	if cfg.ShutdownTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ShutdownTimeout must be positive, got: %s", cfg.ShutdownTimeout))
	}

	if len(errors) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, err := range errors {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, err)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"mongo_uri", redactMongoURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabaseName,
		"mongo_conn_timeout", cfg.MongoConnTimeout,
		"port", cfg.Port,
		"scheduler_secret_set", cfg.SchedulerSecret != "",
		"redis_addr", cfg.RedisAddr,
		"cache_enabled", cfg.CacheEnabled,
		"cache_ttl", cfg.CacheTTL,
		"rate_limit_requests", cfg.RateLimitRequests,
		"rate_limit_window", cfg.RateLimitWindow,
		"request_timeout", cfg.RequestTimeout,
		"max_request_size", cfg.MaxRequestSize,
		"venue_time_zone", cfg.VenueTimeZone,
		"default_max_covers", cfg.Venue.DefaultMaxCovers,
		"slot_interval_min", cfg.Venue.SlotIntervalMin,
		"default_booking_duration_min", cfg.Venue.DefaultDurationMin,
		"slot_capacity_overrides", len(cfg.Venue.SlotOverrides),
		"availability_horizon_weeks", cfg.AvailabilityHorizonWeeks,
		"reconciler_chunk_size", cfg.ReconcilerChunkSize,
		"analytics_enabled", cfg.AnalyticsEnabled,
		"analytics_topic", cfg.AnalyticsTopic,
	)
}

// VenueLocation resolves the venue's IANA time zone. Validate guarantees the
// zone parses, so a failure here falls back to UTC.
func (cfg *Config) VenueLocation() *time.Location {
	loc, err := time.LoadLocation(cfg.VenueTimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (cfg *Config) GracefulShutdown() {
	cfg.Client.GracefulShutdown(cfg.Log)
}

func redactMongoURI(uri string) string {
	credentialRegex := regexp.MustCompile(`(mongodb(\+srv)?://)[^:]+:[^@]+@`)
	return credentialRegex.ReplaceAllString(uri, "${1}***:***@")
}

// parseSlotOverrides parses "13:00=30,21:00=20" into a slot→covers map.
// Malformed entries are dropped.
func parseSlotOverrides(raw string) map[string]int {
	overrides := map[string]int{}
	if raw == "" {
		return overrides
	}
	for _, pair := range strings.Split(raw, ",") {
		parts := strings.SplitN(strings.TrimSpace(pair), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if _, err := time.Parse("15:04", parts[0]); err != nil {
			continue
		}
		covers, err := strconv.Atoi(parts[1])
		if err != nil {
			continue
		}
		overrides[parts[0]] = covers
	}
	return overrides
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
