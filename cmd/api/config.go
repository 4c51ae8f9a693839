package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/fastprodman/playereconomy/internal/config"
)

const (
	storagePostgres = "postgres"
	storageMemory   = "memory"
)

type apiConfig struct {
	Port            uint16        `env:"APP_PORT" envDefault:"8080"`
	LogLevel        slog.Level    `env:"APP_LOG_LEVEL" envDefault:"INFO"`
	ShutdownTimeout time.Duration `env:"APP_SHUTDOWN_TIMEOUT" envDefault:"15s"`
	Storage         string        `env:"APP_STORAGE" envDefault:"postgres"`

	Postgres config.PostgresConfig
	Economy  config.EconomyConfig
	Kafka    config.KafkaConfig
}

func (c *apiConfig) validate() error {
	switch c.Storage {
	case storagePostgres:
		if c.Postgres.DSN == "" {
			return fmt.Errorf("PG_DSN is required when APP_STORAGE=%s", storagePostgres)
		}
	case storageMemory:
	default:
		return fmt.Errorf("unknown APP_STORAGE %q", c.Storage)
	}

	if c.Economy.InterestEnabled && c.Economy.InterestInterval <= 0 {
		return fmt.Errorf("ECO_INTEREST_INTERVAL must be positive")
	}

	if c.Economy.LeaderboardInterval <= 0 {
		return fmt.Errorf("ECO_LEADERBOARD_INTERVAL must be positive")
	}

	if c.Economy.LeaderboardDisplayCount < 1 {
		return fmt.Errorf("ECO_LEADERBOARD_DISPLAY_COUNT must be at least 1")
	}

	return nil
}
