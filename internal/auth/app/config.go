package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	DatabaseDriver string // Store driver (sqlite, memory) (default: sqlite)
	DatabaseFile   string // Path to SQLite database file (default: ./gatekit.db)
	PepperFile     string // Optional: path to file containing pepper for secret hashing

	AccessTTL  time.Duration // Access token lifetime (default: 15m)
	RefreshTTL time.Duration // Refresh token lifetime (default: 168h)
	VerifyTTL  time.Duration // Verification token lifetime (default: 24h)
	ResetTTL   time.Duration // Password reset token lifetime (default: 1h)

	SecretLength int // Length of generated token secrets (default: 30)

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Expired token purge interval (default: 1h)
}

func LoadConfig() Config {
	return Config{
		DatabaseDriver: getEnvOrDefault("GATEKIT_DB_DRIVER", "sqlite"),
		DatabaseFile:   getEnvOrDefault("GATEKIT_DB_FILE", "gatekit.db"),
		PepperFile:     os.Getenv("GATEKIT_PEPPER_FILE"),

		AccessTTL:  getEnvDurationOrDefault("GATEKIT_ACCESS_TTL", 15*time.Minute),
		RefreshTTL: getEnvDurationOrDefault("GATEKIT_REFRESH_TTL", 7*24*time.Hour),
		VerifyTTL:  getEnvDurationOrDefault("GATEKIT_VERIFY_TTL", 24*time.Hour),
		ResetTTL:   getEnvDurationOrDefault("GATEKIT_RESET_TTL", time.Hour),

		SecretLength: getEnvIntOrDefault("GATEKIT_SECRET_LENGTH", 30),

		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}
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

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
