package config

import (
	"os"
	"strconv"
	"time"

	"anubhav/internal/ai"
	"anubhav/internal/cache"
	"anubhav/internal/database"
	"anubhav/internal/external"
	"anubhav/internal/messaging"
)

// Config holds the application configuration
type Config struct {
	Port           string
	GinMode        string
	LogLevel       string
	LogFormat      string
	RequestTimeout time.Duration

	// Role assignment: a user is admin iff their email matches this value
	AdminEmail string

	Database database.Config
	NATS     messaging.Config
	Redis    cache.Config
	Gemini   ai.Config
	Notify   external.NotifyConfig
	WhatsApp external.WhatsAppConfig
}

// Load reads the configuration from environment variables
func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "8082"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
		RequestTimeout: time.Duration(getEnvInt("REQUEST_TIMEOUT_SEC", 30)) * time.Second,

		AdminEmail: getEnv("ADMIN_EMAIL", "admin@anubhav.app"),

		Database: database.Config{
			Host:               getEnv("DB_HOST", "localhost"),
			Port:               getEnvInt("DB_PORT", 5432),
			User:               getEnv("DB_USER", "anubhav"),
			Password:           getEnv("DB_PASSWORD", "anubhav123"),
			DBName:             getEnv("DB_NAME", "anubhav"),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 50),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 10),
			ConnMaxLifetimeMin: getEnvInt("DB_CONN_MAX_LIFETIME_MIN", 5),
			ConnMaxIdleTimeMin: getEnvInt("DB_CONN_MAX_IDLE_TIME_MIN", 1),
		},

		NATS: messaging.Config{
			URL:       getEnv("NATS_URL", "nats://localhost:4222"),
			ClusterID: getEnv("NATS_CLUSTER_ID", "anubhav"),
			ClientID:  getEnv("NATS_CLIENT_ID", "anubhav-api"),
		},

		Redis: cache.Config{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvInt("REDIS_DB", 0),
		},

		Gemini: ai.Config{
			// Empty key switches the recommendation engine into canned
			// fallback mode for the whole process lifetime.
			APIKey:      os.Getenv("GEMINI_API_KEY"),
			Model:       getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
			Temperature: float32(getEnvInt("GEMINI_TEMPERATURE_PCT", 50)) / 100,
		},

		Notify: external.NotifyConfig{
			BaseURL: getEnv("NOTIFY_GATEWAY_URL", "http://localhost:8090"),
			Timeout: time.Duration(getEnvInt("NOTIFY_TIMEOUT_SEC", 30)) * time.Second,
		},

		WhatsApp: external.WhatsAppConfig{
			Host:        getEnv("WHATSAPP_HOST", "wa.me"),
			CountryCode: getEnv("WHATSAPP_COUNTRY_CODE", "91"),
		},
	}
}

// getEnv returns the environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns an integer environment variable value or a default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
