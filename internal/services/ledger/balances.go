package ledger

import (
	"context"

	"github.com/fastprodman/playereconomy/internal/repos/accounts"
)

// pocket selects which of the two balances an operation touches.
type pocket struct {
	name string
	ptr  func(*accounts.Account) *float64
}

var (
	cashPocket = pocket{name: "cash", ptr: func(a *accounts.Account) *float64 { return &a.Cash }}
	bankPocket = pocket{name: "bank", ptr: func(a *accounts.Account) *float64 { return &a.Bank }}
)

func (l *Ledger) set(ctx context.Context, p pocket, id string, amount float64) (err error) {
	defer l.observe("set_"+p.name, &err)

	err = nonNegative(amount)
	if err != nil {
		return err
	}

	_, err = l.mutate(ctx, id, func(acc *accounts.Account) error {
		*p.ptr(acc) = amount
		return nil
	})

	return err
}

func (l *Ledger) add(ctx context.Context, p pocket, id string, amount float64) (err error) {
	defer l.observe("add_"+p.name, &err)

	err = positive(amount)
	if err != nil {
		return err
	}

	_, err = l.mutate(ctx, id, func(acc *accounts.Account) error {
		*p.ptr(acc) += amount
		return nil
	})

	return err
}

func (l *Ledger) take(ctx context.Context, p pocket, id string, amount float64) (err error) {
	defer l.observe("take_"+p.name, &err)

	err = positive(amount)
	if err != nil {
		return err
	}

	_, err = l.mutate(ctx, id, func(acc *accounts.Account) error {
		bal := p.ptr(acc)
		if *bal < amount {
			return ErrInsufficientFunds
		}

		*bal -= amount

		return nil
	})

	return err
}

// SetCash overwrites the cash balance. Zero is allowed.
func (l *Ledger) SetCash(ctx context.Context, id string, amount float64) error {
	return l.set(ctx, cashPocket, id, amount)
}

// SetBank overwrites the bank balance. Zero is allowed.
func (l *Ledger) SetBank(ctx context.Context, id string, amount float64) error {
	return l.set(ctx, bankPocket, id, amount)
}

// AddCash credits cash. Zero is rejected, not treated as a no-op.
func (l *Ledger) AddCash(ctx context.Context, id string, amount float64) error {
	return l.add(ctx, cashPocket, id, amount)
}

func (l *Ledger) AddBank(ctx context.Context, id string, amount float64) error {
	return l.add(ctx, bankPocket, id, amount)
}

func (l *Ledger) TakeCash(ctx context.Context, id string, amount float64) error {
	return l.take(ctx, cashPocket, id, amount)
}

func (l *Ledger) TakeBank(ctx context.Context, id string, amount float64) error {
	return l.take(ctx, bankPocket, id, amount)
}
