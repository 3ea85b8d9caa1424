package app

import (
	"os"
	"strconv"
	"time"

	"github.com/opencouncil/deskd/pkg/jwtx"
)

type Config struct {
	Issuer    string        // Optional: issuer claim for tokens (default: deskd)
	JWTSecret string        // Required outside dev: HMAC secret for token signing
	TokenTTL  time.Duration // Optional: token lifetime (default: 7 days)

	DatabaseFile        string        // Optional: path to SQLite database file (default: ./deskd.db)
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	cfg := Config{
		Issuer:              getEnvOrDefault("DESK_ISSUER", "deskd"),
		JWTSecret:           os.Getenv("DESK_JWT_SECRET"),
		TokenTTL:            getEnvDurationOrDefault("DESK_TOKEN_TTL", jwtx.DefaultTokenTTL),
		DatabaseFile:        getEnvOrDefault("DESK_DATABASE_FILE", "deskd.db"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	return cfg
}

// IsDev reports whether the configured environment is a local development
// one. The JWT secret is only optional in dev.
func (c Config) IsDev() bool {
	return c.Env == "dev" || c.Env == "development" || c.Env == ""
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are read as hours, so DESK_TOKEN_TTL=24 works too.
	if hours, err := strconv.Atoi(value); err == nil {
		return time.Duration(hours) * time.Hour
	}

	return defaultValue
}
