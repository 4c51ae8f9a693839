package config

import "time"

// PostgresConfig configures the connection pool. DSN is only required when
// accounts are stored in Postgres.
type PostgresConfig struct {
	DSN             string        `env:"PG_DSN" envDefault:""`
	MaxOpenConns    int           `env:"PG_MAX_OPEN_CONNS" envDefault:"25"`
	MaxIdleConns    int           `env:"PG_MAX_IDLE_CONNS" envDefault:"10"`
	ConnMaxIdleTime time.Duration `env:"PG_CONN_MAX_IDLE_TIME" envDefault:"5m"`
	ConnMaxLifetime time.Duration `env:"PG_CONN_MAX_LIFETIME" envDefault:"30m"`
}

// EconomyConfig carries the tunables of the ledger, interest and leaderboard.
// Defaults match a fresh server install.
type EconomyConfig struct {
	InitialCash    float64 `env:"ECO_INITIAL_CASH" envDefault:"1000"`
	CurrencyName   string  `env:"ECO_CURRENCY_NAME" envDefault:"Coins"`
	CurrencySymbol string  `env:"ECO_CURRENCY_SYMBOL" envDefault:"$"`

	BankEnabled    bool    `env:"ECO_BANK_ENABLED" envDefault:"true"`
	MinDeposit     float64 `env:"ECO_BANK_MIN_DEPOSIT" envDefault:"100"`
	MaxBankBalance float64 `env:"ECO_BANK_MAX_BALANCE" envDefault:"-1"` // <= 0 means unlimited

	InterestEnabled  bool          `env:"ECO_INTEREST_ENABLED" envDefault:"true"`
	InterestRate     float64       `env:"ECO_INTEREST_RATE" envDefault:"0.03"`
	InterestInterval time.Duration `env:"ECO_INTEREST_INTERVAL" envDefault:"30m"`
	MaxInterest      float64       `env:"ECO_INTEREST_MAX" envDefault:"10000"` // <= 0 means unlimited

	LeaderboardInterval     time.Duration `env:"ECO_LEADERBOARD_INTERVAL" envDefault:"60s"`
	LeaderboardDisplayCount int           `env:"ECO_LEADERBOARD_DISPLAY_COUNT" envDefault:"10"`
}

type KafkaConfig struct {
	Brokers []string `env:"KAFKA_BROKERS" envDefault:""`
	Topic   string   `env:"KAFKA_INTEREST_TOPIC" envDefault:"economy.interest_credited"`
}
