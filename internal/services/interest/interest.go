// Package interest pays periodic interest on bank balances.
package interest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fastprodman/playereconomy/internal/metrics"
	"github.com/fastprodman/playereconomy/internal/notify"
	"github.com/fastprodman/playereconomy/internal/repos/accounts"
)

// CalculateInterest returns bank*rate, clamped to limit when limit > 0.
// Non-positive balances earn nothing.
func CalculateInterest(bank, rate, limit float64) float64 {
	if bank <= 0 {
		return 0
	}

	interest := bank * rate
	if limit > 0 && interest > limit {
		return limit
	}

	return interest
}

type Settings struct {
	Rate float64
	Max  float64 // <= 0 means unlimited
}

// Scanner lists every account.
type Scanner interface {
	GetAll(ctx context.Context) ([]*accounts.Account, error)
}

// Crediter applies a bank credit with the ledger's rules.
type Crediter interface {
	AddBank(ctx context.Context, id string, amount float64) error
	FormatAmount(amount float64) string
}

// Notifier is told about each credit. Delivery is best effort.
type Notifier interface {
	InterestCredited(ctx context.Context, ev notify.InterestCredited) error
}

// Summary describes one distribution pass.
type Summary struct {
	Scanned   int
	Credited  int
	Skipped   int
	Failed    int
	TotalPaid float64
}

type Engine struct {
	scanner  Scanner
	crediter Crediter
	notifier Notifier
	cfg      Settings
	log      *slog.Logger
	metrics  *metrics.Metrics
	now      func() time.Time
}

// New builds an Engine. notifier may be nil.
func New(scanner Scanner, crediter Crediter, notifier Notifier, cfg Settings, logger *slog.Logger, m *metrics.Metrics) *Engine {
	if logger == nil {
		logger = slog.Default()
	}

	return &Engine{
		scanner:  scanner,
		crediter: crediter,
		notifier: notifier,
		cfg:      cfg,
		log:      logger,
		metrics:  m,
		now:      time.Now,
	}
}

// Distribute credits interest to every account with a positive bank balance.
// A failure on one account is logged and counted; the pass goes on. Only a
// failed scan, or cancellation of ctx between accounts, returns an error.
func (e *Engine) Distribute(ctx context.Context) (Summary, error) {
	all, err := e.scanner.GetAll(ctx)
	if err != nil {
		e.metrics.InterestRun("error")
		return Summary{}, fmt.Errorf("list accounts: %w", err)
	}

	sum := Summary{Scanned: len(all)}

	for _, acc := range all {
		err = ctx.Err()
		if err != nil {
			e.metrics.InterestRun("interrupted")
			return sum, fmt.Errorf("interest pass interrupted: %w", err)
		}

		amount := CalculateInterest(acc.Bank, e.cfg.Rate, e.cfg.Max)
		if amount <= 0 {
			sum.Skipped++
			e.metrics.InterestAccount("skipped")

			continue
		}

		err = e.crediter.AddBank(ctx, acc.ID, amount)
		if err != nil {
			sum.Failed++
			e.metrics.InterestAccount("failed")
			e.log.WarnContext(ctx, "interest credit failed", "player_id", acc.ID, "amount", amount, "error", err)

			continue
		}

		sum.Credited++
		sum.TotalPaid += amount
		e.metrics.InterestAccount("credited")
		e.metrics.InterestPaid(amount)

		e.notify(ctx, acc, amount)
	}

	e.metrics.InterestRun("ok")
	e.log.InfoContext(ctx, "interest distributed",
		"scanned", sum.Scanned,
		"credited", sum.Credited,
		"skipped", sum.Skipped,
		"failed", sum.Failed,
		"total_paid", sum.TotalPaid,
	)

	return sum, nil
}

// notify never fails the credit it reports on.
func (e *Engine) notify(ctx context.Context, acc *accounts.Account, amount float64) {
	if e.notifier == nil {
		return
	}

	id, err := uuid.Parse(acc.ID)
	if err != nil {
		e.log.DebugContext(ctx, "skipping interest notification for non-uuid player id", "player_id", acc.ID)
		return
	}

	err = e.notifier.InterestCredited(ctx, notify.InterestCredited{
		PlayerID:   id,
		PlayerName: acc.DisplayName,
		Amount:     amount,
		Formatted:  e.crediter.FormatAmount(amount),
		CreditedAt: e.now().UTC(),
	})
	if err != nil {
		e.log.WarnContext(ctx, "interest notification failed", "player_id", acc.ID, "error", err)
	}
}
