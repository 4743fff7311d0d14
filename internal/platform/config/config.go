package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	LogLevel        string
}

// PostgresConfig selects the durable catalog store. An empty URL keeps the
// catalog in memory.
type PostgresConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig selects the shared sync guard. An empty URL falls back to an
// in-process guard.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// FeedConfig addresses the upstream services feed.
type FeedConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// SyncConfig drives the catalog synchronizer schedule.
type SyncConfig struct {
	Interval time.Duration
	PageSize int
	OnStart  bool
	LockTTL  time.Duration
}

// Config is the full process configuration.
type Config struct {
	Server   Server
	Postgres PostgresConfig
	Redis    RedisConfig
	Feed     FeedConfig
	Sync     SyncConfig
}

// Enabled reports whether scheduled sync can run.
func (f FeedConfig) Enabled() bool {
	return f.BaseURL != ""
}

// FromEnv builds the config from environment variables so main stays lean.
func FromEnv() (Config, error) {
	var errs []string
	dur := func(key string, def time.Duration) time.Duration {
		v, err := durationEnv(key, def)
		if err != nil {
			errs = append(errs, err.Error())
		}
		return v
	}
	num := func(key string, def int) int {
		v, err := intEnv(key, def)
		if err != nil {
			errs = append(errs, err.Error())
		}
		return v
	}
	flag := func(key string, def bool) bool {
		v, err := boolEnv(key, def)
		if err != nil {
			errs = append(errs, err.Error())
		}
		return v
	}

	cfg := Config{
		Server: Server{
			Addr:            stringEnv("PSP_CATALOG_ADDR", ":8080"),
			ReadTimeout:     dur("PSP_HTTP_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    dur("PSP_HTTP_WRITE_TIMEOUT", 15*time.Second),
			ShutdownTimeout: dur("PSP_SHUTDOWN_TIMEOUT", 10*time.Second),
			LogLevel:        stringEnv("PSP_LOG_LEVEL", "info"),
		},
		Postgres: PostgresConfig{
			URL:             os.Getenv("DATABASE_URL"),
			MaxOpenConns:    num("DATABASE_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    num("DATABASE_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: dur("DATABASE_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     num("REDIS_POOL_SIZE", 10),
			MinIdleConns: num("REDIS_MIN_IDLE_CONNS", 1),
			DialTimeout:  dur("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  dur("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: dur("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Feed: FeedConfig{
			BaseURL: strings.TrimRight(os.Getenv("PSP_FEED_BASE_URL"), "/"),
			APIKey:  os.Getenv("PSP_FEED_API_KEY"),
			Timeout: dur("PSP_FEED_TIMEOUT", 10*time.Second),
		},
		Sync: SyncConfig{
			Interval: dur("PSP_SYNC_INTERVAL", time.Hour),
			PageSize: num("PSP_SYNC_PAGE_SIZE", 50),
			OnStart:  flag("PSP_SYNC_ON_START", false),
			LockTTL:  dur("PSP_SYNC_LOCK_TTL", 10*time.Minute),
		},
	}

	if cfg.Sync.Interval <= 0 {
		errs = append(errs, "PSP_SYNC_INTERVAL must be positive")
	}
	if cfg.Sync.PageSize <= 0 {
		errs = append(errs, "PSP_SYNC_PAGE_SIZE must be positive")
	}
	if len(errs) > 0 {
		return Config{}, fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}
	return cfg, nil
}

func stringEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return def, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func intEnv(key string, def int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func boolEnv(key string, def bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return def, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}
