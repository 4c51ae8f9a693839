package accounts

import (
	"context"
	"errors"
	"fmt"

	"github.com/fastprodman/playereconomy/internal/repos/accounts"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

func (r *accountsRepo) Insert(ctx context.Context, acc *accounts.Account) error {
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO economy_accounts (uuid, player_name, cash, bank)
		VALUES ($1, $2, $3, $4)
		RETURNING version, created_at, updated_at
	`, acc.ID, acc.DisplayName, acc.Cash, acc.Bank).Scan(&acc.Version, &acc.CreatedAt, &acc.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return accounts.ErrAccountExists
		}

		return fmt.Errorf("insert account: %w", err)
	}

	return nil
}
