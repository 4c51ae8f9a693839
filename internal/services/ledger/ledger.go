// Package ledger owns player balances and every operation that changes them.
//
// Operations re-read the account right before applying a delta, hold an
// in-process per-account lock while doing so, and write through the store's
// version check. A version conflict from another process is retried a few
// times before it is reported as a storage failure.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/fastprodman/playereconomy/internal/metrics"
	"github.com/fastprodman/playereconomy/internal/repos/accounts"
)

const maxWriteAttempts = 3

// Settings are the economy rules the ledger enforces.
type Settings struct {
	InitialCash    float64
	MinDeposit     float64
	MaxBankBalance float64 // <= 0 means unlimited
	CurrencySymbol string
}

type Ledger struct {
	store   accounts.Store
	cfg     Settings
	log     *slog.Logger
	metrics *metrics.Metrics
	locks   lockTable
}

// New builds a Ledger over store. A nil logger means slog.Default(); a nil
// metrics records nothing.
func New(store accounts.Store, cfg Settings, logger *slog.Logger, m *metrics.Metrics) *Ledger {
	if logger == nil {
		logger = slog.Default()
	}

	return &Ledger{
		store:   store,
		cfg:     cfg,
		log:     logger,
		metrics: m,
	}
}

func (l *Ledger) Settings() Settings {
	return l.cfg
}

// observe counts the outcome of op. It is deferred with a pointer to the
// named error result.
func (l *Ledger) observe(op string, errp *error) {
	err := *errp

	switch {
	case err == nil:
		l.metrics.LedgerOp(op, metrics.OutcomeOK)
	case IsRuleViolation(err):
		l.log.Debug("ledger operation rejected", "op", op, "reason", err.Error())
		l.metrics.LedgerOp(op, metrics.OutcomeRejected)
	default:
		l.metrics.LedgerOp(op, metrics.OutcomeError)
	}
}

// storageErr logs a store failure and wraps it with ErrStorage.
func (l *Ledger) storageErr(ctx context.Context, what, id string, err error) error {
	l.log.ErrorContext(ctx, "account store failure", "action", what, "player_id", id, "error", err)

	return fmt.Errorf("%w: %s: %w", ErrStorage, what, err)
}

func (l *Ledger) load(ctx context.Context, id string) (*accounts.Account, error) {
	acc, err := l.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, accounts.ErrAccountNotFound) {
			return nil, ErrAccountNotFound
		}

		return nil, l.storageErr(ctx, "get account", id, err)
	}

	return acc, nil
}

// mutateLocked re-reads the account, applies fn and persists the result.
// The caller must hold the account's lock. fn sees a fresh copy on every
// attempt and must not keep it.
func (l *Ledger) mutateLocked(ctx context.Context, id string, fn func(acc *accounts.Account) error) (*accounts.Account, error) {
	for attempt := 1; ; attempt++ {
		acc, err := l.load(ctx, id)
		if err != nil {
			return nil, err
		}

		err = fn(acc)
		if err != nil {
			return nil, err
		}

		err = l.store.Update(ctx, acc)
		switch {
		case err == nil:
			return acc, nil
		case errors.Is(err, accounts.ErrAccountNotFound):
			return nil, ErrAccountNotFound
		case errors.Is(err, accounts.ErrVersionConflict) && attempt < maxWriteAttempts:
			l.log.DebugContext(ctx, "retrying account write", "player_id", id, "attempt", attempt)
			continue
		default:
			return nil, l.storageErr(ctx, "update account", id, err)
		}
	}
}

func (l *Ledger) mutate(ctx context.Context, id string, fn func(acc *accounts.Account) error) (*accounts.Account, error) {
	unlock := l.locks.lock(id)
	defer unlock()

	return l.mutateLocked(ctx, id, fn)
}

func finite(amount float64) bool {
	return !math.IsNaN(amount) && !math.IsInf(amount, 0)
}

// positive rejects zero, negative and non-finite amounts.
func positive(amount float64) error {
	if !finite(amount) || amount <= 0 {
		return ErrInvalidAmount
	}

	return nil
}

// nonNegative rejects negative and non-finite amounts.
func nonNegative(amount float64) error {
	if !finite(amount) || amount < 0 {
		return ErrInvalidAmount
	}

	return nil
}
