// Package notify delivers player-facing economy events.
package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// InterestCredited tells a player that interest landed in their bank.
type InterestCredited struct {
	PlayerID   uuid.UUID `json:"player_id"`
	PlayerName string    `json:"player_name"`
	Amount     float64   `json:"amount"`
	Formatted  string    `json:"formatted"`
	CreditedAt time.Time `json:"credited_at"`
}

// LogNotifier writes events to a structured logger. It is the fallback when
// no message broker is configured.
type LogNotifier struct {
	log *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}

	return &LogNotifier{log: logger}
}

func (n *LogNotifier) InterestCredited(ctx context.Context, ev InterestCredited) error {
	n.log.InfoContext(ctx, "interest credited",
		"player_id", ev.PlayerID.String(),
		"player_name", ev.PlayerName,
		"amount", ev.Amount,
		"formatted", ev.Formatted,
	)

	return nil
}
