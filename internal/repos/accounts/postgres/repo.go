package accounts

import (
	"database/sql"

	"github.com/fastprodman/playereconomy/internal/repos/accounts"
	"github.com/jmoiron/sqlx"
)

var _ accounts.Store = (*accountsRepo)(nil)

const accountColumns = `uuid, player_name, cash, bank, version, created_at, updated_at`

type accountsRepo struct{ db *sqlx.DB }

// New wraps a pgx-backed *sql.DB.
func New(db *sql.DB) *accountsRepo {
	return &accountsRepo{db: sqlx.NewDb(db, "pgx")}
}
