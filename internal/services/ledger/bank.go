package ledger

import (
	"context"

	"github.com/fastprodman/playereconomy/internal/repos/accounts"
)

// DepositToBank moves amount from cash to bank in a single write.
func (l *Ledger) DepositToBank(ctx context.Context, id string, amount float64) (err error) {
	defer l.observe("deposit", &err)

	err = positive(amount)
	if err != nil {
		return err
	}

	if amount < l.cfg.MinDeposit {
		return ErrBelowMinDeposit
	}

	_, err = l.mutate(ctx, id, func(acc *accounts.Account) error {
		if acc.Cash < amount {
			return ErrInsufficientFunds
		}

		if l.cfg.MaxBankBalance > 0 && acc.Bank+amount > l.cfg.MaxBankBalance {
			return ErrBankLimitExceeded
		}

		acc.Cash -= amount
		acc.Bank += amount

		return nil
	})

	return err
}

// WithdrawFromBank moves amount from bank to cash in a single write.
func (l *Ledger) WithdrawFromBank(ctx context.Context, id string, amount float64) (err error) {
	defer l.observe("withdraw", &err)

	err = positive(amount)
	if err != nil {
		return err
	}

	_, err = l.mutate(ctx, id, func(acc *accounts.Account) error {
		if acc.Bank < amount {
			return ErrInsufficientFunds
		}

		acc.Bank -= amount
		acc.Cash += amount

		return nil
	})

	return err
}
