package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders; nothing in the
// modules reads the environment directly.
type Config struct {
	ServiceName string
	HTTPPort    string
	PostgresDSN string

	ProviderURL   string
	ProviderToken string

	NotificationsURL     string
	NotificationsToken   string
	NotificationsOwnerID string

	OutboxBatchSize    int
	WorkerPollInterval time.Duration

	MigrationsDir string
}

func Load() (Config, error) {
	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "events"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	migrationsDir := os.Getenv("MIGRATIONS_DIR")
	if migrationsDir == "" {
		migrationsDir = "migrations"
	}

	return Config{
		ServiceName: service,
		HTTPPort:    port,
		PostgresDSN: os.Getenv("POSTGRES_DSN"),

		ProviderURL:   os.Getenv("PROVIDER_URL"),
		ProviderToken: os.Getenv("PROVIDER_TOKEN"),

		NotificationsURL:     os.Getenv("NOTIFICATIONS_API_URL"),
		NotificationsToken:   os.Getenv("NOTIFICATIONS_API_TOKEN"),
		NotificationsOwnerID: os.Getenv("NOTIFICATIONS_OWNER_ID"),

		OutboxBatchSize:    envInt("OUTBOX_BATCH_SIZE", 100),
		WorkerPollInterval: envDuration("WORKER_POLL_INTERVAL", 5*time.Second),

		MigrationsDir: migrationsDir,
	}, nil
}

func envInt(name string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func envDuration(name string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}
