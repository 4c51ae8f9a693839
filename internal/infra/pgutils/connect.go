package pgutils

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver

	"github.com/fastprodman/playereconomy/internal/config"
)

var ErrNoDSN = errors.New("postgres dsn is empty")

// OpenDB opens a pooled connection through the pgx stdlib driver, applies
// the pool limits from cfg and pings the server.
func OpenDB(ctx context.Context, cfg config.PostgresConfig) (*sql.DB, error) {
	if cfg.DSN == "" {
		return nil, ErrNoDSN
	}

	db, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	err = db.PingContext(ctx)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}
