package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fastprodman/playereconomy/internal/repos/accounts"
)

// Update writes acc only if nobody else changed the row since acc was read.
func (r *accountsRepo) Update(ctx context.Context, acc *accounts.Account) error {
	err := r.db.QueryRowxContext(ctx, `
		UPDATE economy_accounts
		SET player_name = $2,
		    cash = $3,
		    bank = $4,
		    version = version + 1,
		    updated_at = now()
		WHERE uuid = $1
		  AND version = $5
		RETURNING version, updated_at
	`, acc.ID, acc.DisplayName, acc.Cash, acc.Bank, acc.Version).Scan(&acc.Version, &acc.UpdatedAt)
	if err == nil {
		return nil
	}

	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update account: %w", err)
	}

	var exists bool

	err = r.db.GetContext(ctx, &exists, `
		SELECT EXISTS(SELECT 1 FROM economy_accounts WHERE uuid = $1)
	`, acc.ID)
	if err != nil {
		return fmt.Errorf("check exists: %w", err)
	}

	if !exists {
		return accounts.ErrAccountNotFound
	}

	return accounts.ErrVersionConflict
}
