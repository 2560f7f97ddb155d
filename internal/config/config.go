package config

import (
	"os"
	"strconv"
	"time"

	"ideagate/internal/errors"
)

// Store backends selectable at startup.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Breaker  BreakerConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// StoreConfig selects the rule store backend
type StoreConfig struct {
	Backend string
}

// DatabaseConfig holds PostgreSQL connection settings
type DatabaseConfig struct {
	URL string
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// BreakerConfig holds circuit breaker tuning for the remote classifier
type BreakerConfig struct {
	FailureThreshold int
	HalfOpenAfter    time.Duration
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Store: StoreConfig{
			Backend: getEnvOrDefault("RULE_STORE", StoreMemory),
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Redis: RedisConfig{
			Addr:     getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvIntOrDefault("REDIS_DB", 0),
		},
		Breaker: BreakerConfig{
			FailureThreshold: getEnvIntOrDefault("BREAKER_FAILURE_THRESHOLD", 3),
			HalfOpenAfter:    getEnvDurationOrDefault("BREAKER_HALF_OPEN_AFTER", 30*time.Second),
		},
	}

	if err := validate(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validate(c *Config) error {
	switch c.Store.Backend {
	case StoreMemory, StoreRedis:
	case StorePostgres:
		if c.Database.URL == "" {
			return errors.New("CONFIG_INVALID", "DATABASE_URL is required for the postgres rule store")
		}
	default:
		return errors.New("CONFIG_INVALID", "RULE_STORE must be memory, postgres or redis")
	}
	if c.Breaker.FailureThreshold < 1 {
		return errors.New("CONFIG_INVALID", "BREAKER_FAILURE_THRESHOLD must be at least 1")
	}
	return nil
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvIntOrDefault(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDurationOrDefault(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
