package accounts

import (
	"context"
	"fmt"

	"github.com/fastprodman/playereconomy/internal/repos/accounts"
)

func (r *accountsRepo) GetAll(ctx context.Context) ([]*accounts.Account, error) {
	all := make([]*accounts.Account, 0)

	err := r.db.SelectContext(ctx, &all, `
		SELECT `+accountColumns+`
		FROM economy_accounts
		ORDER BY created_at, uuid
	`)
	if err != nil {
		return nil, fmt.Errorf("get all accounts: %w", err)
	}

	return all, nil
}
