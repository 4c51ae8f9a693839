package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fastprodman/playereconomy/internal/repos/accounts"
)

func (r *accountsRepo) Get(ctx context.Context, id string) (*accounts.Account, error) {
	var acc accounts.Account

	err := r.db.GetContext(ctx, &acc, `
		SELECT `+accountColumns+`
		FROM economy_accounts
		WHERE uuid = $1
	`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, accounts.ErrAccountNotFound
		}

		return nil, fmt.Errorf("get account: %w", err)
	}

	return &acc, nil
}
