package config

import (
	"os"
	"strconv"
	"time"

	"salesnorm/internal/errors"
)

// Config represents the complete application configuration. The canonical
// schema itself (column names, numeric set, header rows) is compiled into
// domain/schema and is deliberately not configurable here.
type Config struct {
	Server ServerConfig
	Upload UploadConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port            string
	ShutdownTimeout time.Duration
}

// UploadConfig holds uploaded-workbook handling settings
type UploadConfig struct {
	Dir       string
	MaxBytes  int64
	Retention time.Duration
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:            getEnvOrDefault("PORT", "8080"),
			ShutdownTimeout: getEnvDurationOrDefault("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Upload: UploadConfig{
			Dir:       getEnvOrDefault("UPLOAD_DIR", os.TempDir()),
			MaxBytes:  getEnvInt64OrDefault("UPLOAD_MAX_BYTES", 32<<20),
			Retention: getEnvDurationOrDefault("UPLOAD_RETENTION", time.Hour),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("PORT must not be empty")
	}
	if config.Upload.Dir == "" {
		return errors.ConfigInvalid("UPLOAD_DIR must not be empty")
	}
	if config.Upload.MaxBytes <= 0 {
		return errors.ConfigInvalid("UPLOAD_MAX_BYTES must be positive")
	}
	if config.Upload.Retention <= 0 {
		return errors.ConfigInvalid("UPLOAD_RETENTION must be positive")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
