package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	SERVICE_NAME                string
	SERVICE_VERSION             string
	ENVIRONMENT                 string
	OTEL_EXPORTER_OTLP_ENDPOINT string
	OTEL_RESOURCE_ATTRIBUTES    string
	LOG_LEVEL                   string
	METRIC_INTERVAL             time.Duration
	RUNTIME_METRICS             bool
	REQUESTS_METRIC             bool
	DEVELOPMENT_MODE            bool
	SERVER_PORT                 string
	CLOUDINARY_CLOUD            string
	CLOUDINARY_API_KEY          string
	CLOUDINARY_API_SECRET       string
	NEWCORE_MYSQL_HOST          string
	NEWCORE_MYSQL_PORT          string
	NEWCORE_MYSQL_USER          string
	NEWCORE_MYSQL_PASSWORD      string
	NEWCORE_MYSQL_DBNAME        string
	LEGACY_MYSQL_HOST           string
	LEGACY_MYSQL_PORT           string
	LEGACY_MYSQL_USER           string
	LEGACY_MYSQL_PASSWORD       string
	LEGACY_MYSQL_DBNAME         string
	REDIS_ADDRESS               string
	REDIS_PASSWORD              string
	JWT_SECRET_KEY              string
	PARTNER_API_KEY             string
	SYNC_SERVICE_KEY            string
	DEFAULT_LOCALE              string
	STATEMENT_WINDOW_YEARS      int
	COMMIT_LOCK_TTL             time.Duration
	SHUTDOWN_TIMEOUT            time.Duration
}

func LoadConfig() (*Config, error) {
	// Helper function to get environment variable with default value
	Env := func(key, defaultValue string) string {
		if value := os.Getenv(key); value != "" {
			return value
		}
		return defaultValue
	}

	// Helper function to parse Duration from environment variable
	Duration := func(key string, defaultValue time.Duration) time.Duration {
		if value := os.Getenv(key); value != "" {
			if duration, err := time.ParseDuration(value); err == nil {
				return duration
			}
		}
		return defaultValue
	}

	// Helper function to parse boolean from environment variable
	Bool := func(key string, defaultValue bool) bool {
		if value := os.Getenv(key); value != "" {
			if boolValue, err := strconv.ParseBool(value); err == nil {
				return boolValue
			}
		}
		return defaultValue
	}

	// Helper function to parse int from environment variable
	Int := func(key string, defaultValue int) int {
		if value := os.Getenv(key); value != "" {
			if intValue, err := strconv.Atoi(value); err == nil {
				return intValue
			}
		}
		return defaultValue
	}

	config := &Config{
		SERVICE_NAME:                Env("SERVICE_NAME", "borrower-onboarding"),
		SERVICE_VERSION:             Env("SERVICE_VERSION", "1.0.0"),
		ENVIRONMENT:                 Env("ENVIRONMENT", "production"),
		OTEL_EXPORTER_OTLP_ENDPOINT: Env("OTEL_EXPORTER_OTLP_ENDPOINT", "0.0.0.0:4317"),
		OTEL_RESOURCE_ATTRIBUTES:    Env("OTEL_RESOURCE_ATTRIBUTES", "service.name=borrower-onboarding,service.namespace=onboarding-group,deployment.environment=production"),
		LOG_LEVEL:                   Env("LOG_LEVEL", "info"),
		METRIC_INTERVAL:             Duration("METRIC_INTERVAL", 15*time.Second),
		RUNTIME_METRICS:             Bool("RUNTIME_METRICS", true),
		REQUESTS_METRIC:             Bool("REQUESTS_METRIC", true),
		DEVELOPMENT_MODE:            Bool("DEVELOPMENT_MODE", false),
		SERVER_PORT:                 Env("SERVER_PORT", "3001"),
		CLOUDINARY_CLOUD:            Env("CLOUDINARY_CLOUD", ""),
		CLOUDINARY_API_KEY:          Env("CLOUDINARY_API_KEY", ""),
		CLOUDINARY_API_SECRET:       Env("CLOUDINARY_API_SECRET", ""),
		NEWCORE_MYSQL_HOST:          Env("NEWCORE_MYSQL_HOST", "127.0.0.1"),
		NEWCORE_MYSQL_PORT:          Env("NEWCORE_MYSQL_PORT", "3306"),
		NEWCORE_MYSQL_USER:          Env("NEWCORE_MYSQL_USER", "root"),
		NEWCORE_MYSQL_PASSWORD:      Env("NEWCORE_MYSQL_PASSWORD", ""),
		NEWCORE_MYSQL_DBNAME:        Env("NEWCORE_MYSQL_DBNAME", "onboarding_core"),
		LEGACY_MYSQL_HOST:           Env("LEGACY_MYSQL_HOST", "127.0.0.1"),
		LEGACY_MYSQL_PORT:           Env("LEGACY_MYSQL_PORT", "3306"),
		LEGACY_MYSQL_USER:           Env("LEGACY_MYSQL_USER", "root"),
		LEGACY_MYSQL_PASSWORD:       Env("LEGACY_MYSQL_PASSWORD", ""),
		LEGACY_MYSQL_DBNAME:         Env("LEGACY_MYSQL_DBNAME", "onboarding_legacy"),
		REDIS_ADDRESS:               Env("REDIS_ADDRESS", "localhost:6379"),
		REDIS_PASSWORD:              Env("REDIS_PASSWORD", ""),
		JWT_SECRET_KEY:              Env("JWT_SECRET_KEY", ""),
		PARTNER_API_KEY:             Env("PARTNER_API_KEY", ""),
		SYNC_SERVICE_KEY:            Env("SYNC_SERVICE_KEY", ""),
		DEFAULT_LOCALE:              Env("DEFAULT_LOCALE", "id_ID"),
		STATEMENT_WINDOW_YEARS:      Int("STATEMENT_WINDOW_YEARS", 5),
		COMMIT_LOCK_TTL:             Duration("COMMIT_LOCK_TTL", 30*time.Second),
		SHUTDOWN_TIMEOUT:            Duration("SHUTDOWN_TIMEOUT", 15*time.Second),
	}

	return config, nil
}
