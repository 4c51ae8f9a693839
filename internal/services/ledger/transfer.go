package ledger

import (
	"context"
	"fmt"

	"github.com/fastprodman/playereconomy/internal/infra/logging"
	"github.com/fastprodman/playereconomy/internal/repos/accounts"
)

// Transfer moves amount of cash from one player to another.
//
// The store cannot write both records atomically, so the sender is debited
// first and the receiver credited second. If the credit fails the sender is
// re-read and re-credited before the failure is returned. If that rollback
// write fails too, money has left the sender without reaching the receiver:
// the error wraps ErrTornTransfer and the event is logged at FATAL.
func (l *Ledger) Transfer(ctx context.Context, from, to string, amount float64) (err error) {
	defer l.observe("transfer", &err)

	err = positive(amount)
	if err != nil {
		return err
	}

	if from == to {
		return ErrSelfTransfer
	}

	unlock := l.locks.lockPair(from, to)
	defer unlock()

	sender, err := l.load(ctx, from)
	if err != nil {
		return err
	}

	if sender.Cash < amount {
		return ErrInsufficientFunds
	}

	_, err = l.load(ctx, to)
	if err != nil {
		return err
	}

	_, err = l.mutateLocked(ctx, from, func(acc *accounts.Account) error {
		if acc.Cash < amount {
			return ErrInsufficientFunds
		}

		acc.Cash -= amount

		return nil
	})
	if err != nil {
		return fmt.Errorf("debit sender: %w", err)
	}

	// Once the debit is durable the transfer finishes or is compensated even
	// if the caller goes away.
	ctx = context.WithoutCancel(ctx)

	_, err = l.mutateLocked(ctx, to, func(acc *accounts.Account) error {
		acc.Cash += amount
		return nil
	})
	if err == nil {
		return nil
	}

	creditErr := err

	_, err = l.mutateLocked(ctx, from, func(acc *accounts.Account) error {
		acc.Cash += amount
		return nil
	})
	if err != nil {
		logging.Fatal(ctx, l.log, "transfer rollback failed, ledger is inconsistent",
			"from", from,
			"to", to,
			"amount", amount,
			"credit_error", creditErr,
			"rollback_error", err,
		)

		return fmt.Errorf("%w: %s -> %s amount %.2f: %w", ErrTornTransfer, from, to, amount, err)
	}

	l.log.WarnContext(ctx, "transfer rolled back", "from", from, "to", to, "amount", amount, "error", creditErr)

	return fmt.Errorf("credit receiver: %w", creditErr)
}
