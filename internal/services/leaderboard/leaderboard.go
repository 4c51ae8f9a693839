// Package leaderboard ranks players by total wealth.
//
// Queries read an immutable snapshot that Refresh rebuilds and swaps in with
// a single pointer store, so readers never block and never see a half-built
// ranking. Queries never refresh on their own.
package leaderboard

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync/atomic"
	"time"

	"github.com/fastprodman/playereconomy/internal/metrics"
	"github.com/fastprodman/playereconomy/internal/repos/accounts"
)

// NotRanked is returned by PlayerRank for players missing from the snapshot.
const NotRanked = -1

type Entry struct {
	PlayerID    string  `json:"player_id"`
	DisplayName string  `json:"player_name"`
	TotalWealth float64 `json:"total_wealth"`
}

type Scanner interface {
	GetAll(ctx context.Context) ([]*accounts.Account, error)
}

type snapshot struct {
	entries []Entry
	builtAt time.Time
}

type Cache struct {
	scanner      Scanner
	displayCount int
	log          *slog.Logger
	metrics      *metrics.Metrics
	current      atomic.Pointer[snapshot]
}

func New(scanner Scanner, displayCount int, logger *slog.Logger, m *metrics.Metrics) *Cache {
	if logger == nil {
		logger = slog.Default()
	}

	return &Cache{
		scanner:      scanner,
		displayCount: displayCount,
		log:          logger,
		metrics:      m,
	}
}

// Refresh rebuilds the ranking from a full scan. Equal wealth keeps scan
// order. On error the previous snapshot stays in place.
func (c *Cache) Refresh(ctx context.Context) error {
	start := time.Now()

	all, err := c.scanner.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("list accounts: %w", err)
	}

	entries := make([]Entry, 0, len(all))
	for _, acc := range all {
		entries = append(entries, Entry{
			PlayerID:    acc.ID,
			DisplayName: acc.DisplayName,
			TotalWealth: acc.TotalWealth(),
		})
	}

	slices.SortStableFunc(entries, func(a, b Entry) int {
		switch {
		case a.TotalWealth > b.TotalWealth:
			return -1
		case a.TotalWealth < b.TotalWealth:
			return 1
		default:
			return 0
		}
	})

	now := time.Now()
	c.current.Store(&snapshot{entries: entries, builtAt: now})

	c.metrics.LeaderboardRefreshed(len(entries), now.Sub(start), now)
	c.log.DebugContext(ctx, "leaderboard refreshed", "entries", len(entries), "took", now.Sub(start))

	return nil
}

// TopPlayers returns up to n leading entries. The slice is the caller's.
func (c *Cache) TopPlayers(n int) []Entry {
	snap := c.current.Load()
	if snap == nil || n <= 0 {
		return []Entry{}
	}

	n = min(n, len(snap.entries))

	return slices.Clone(snap.entries[:n])
}

// PlayerRank returns the 1-based rank of id, or NotRanked.
func (c *Cache) PlayerRank(id string) int {
	snap := c.current.Load()
	if snap == nil {
		return NotRanked
	}

	for i, e := range snap.entries {
		if e.PlayerID == id {
			return i + 1
		}
	}

	return NotRanked
}

// EntryAt returns the entry at 1-based position pos.
func (c *Cache) EntryAt(pos int) (Entry, bool) {
	snap := c.current.Load()
	if snap == nil || pos < 1 || pos > len(snap.entries) {
		return Entry{}, false
	}

	return snap.entries[pos-1], true
}

// Size is the number of entries in the current snapshot.
func (c *Cache) Size() int {
	snap := c.current.Load()
	if snap == nil {
		return 0
	}

	return len(snap.entries)
}

// LastRefresh reports when the current snapshot was built. The zero time
// means no refresh has happened yet.
func (c *Cache) LastRefresh() time.Time {
	snap := c.current.Load()
	if snap == nil {
		return time.Time{}
	}

	return snap.builtAt
}

func (c *Cache) DefaultDisplayCount() int {
	return c.displayCount
}
