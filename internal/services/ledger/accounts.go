package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/fastprodman/playereconomy/internal/repos/accounts"
)

// GetAccount returns a copy of the stored record.
func (l *Ledger) GetAccount(ctx context.Context, id string) (*accounts.Account, error) {
	return l.load(ctx, id)
}

// GetOrCreate returns the account for id, creating it with the initial cash
// on first sight. The display name of an existing account is left as is.
func (l *Ledger) GetOrCreate(ctx context.Context, id, displayName string) (acc *accounts.Account, err error) {
	defer l.observe("get_or_create", &err)

	if id == "" {
		return nil, ErrInvalidPlayerID
	}

	acc, err = l.load(ctx, id)
	if err == nil || !errors.Is(err, ErrAccountNotFound) {
		return acc, err
	}

	acc = &accounts.Account{
		ID:          id,
		DisplayName: displayName,
		Cash:        l.cfg.InitialCash,
		Bank:        0,
	}

	err = l.store.Insert(ctx, acc)
	if err == nil {
		l.log.InfoContext(ctx, "account created", "player_id", id, "player_name", displayName)
		return acc, nil
	}

	// Lost a creation race; the winner's record is the account.
	if errors.Is(err, accounts.ErrAccountExists) {
		return l.load(ctx, id)
	}

	return nil, l.storageErr(ctx, "insert account", id, err)
}

func (l *Ledger) HasAccount(ctx context.Context, id string) (bool, error) {
	_, err := l.load(ctx, id)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}

// balanceOf reads one derived value, returning 0 for a missing account.
func (l *Ledger) balanceOf(ctx context.Context, id string, pick func(*accounts.Account) float64) (float64, error) {
	acc, err := l.load(ctx, id)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return 0, nil
		}

		return 0, fmt.Errorf("read balance: %w", err)
	}

	return pick(acc), nil
}

func (l *Ledger) GetCash(ctx context.Context, id string) (float64, error) {
	return l.balanceOf(ctx, id, func(a *accounts.Account) float64 { return a.Cash })
}

func (l *Ledger) GetBank(ctx context.Context, id string) (float64, error) {
	return l.balanceOf(ctx, id, func(a *accounts.Account) float64 { return a.Bank })
}

func (l *Ledger) GetTotalWealth(ctx context.Context, id string) (float64, error) {
	return l.balanceOf(ctx, id, (*accounts.Account).TotalWealth)
}
