// Package placeholder answers templating lookups such as "cash" or
// "top_name_3" for one player.
package placeholder

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fastprodman/playereconomy/internal/services/leaderboard"
)

const (
	prefixTopName    = "top_name_"
	prefixTopBalance = "top_balance_"

	noRank    = "-"
	noName    = "-"
	noBalance = "0.00"
)

type Balances interface {
	GetCash(ctx context.Context, id string) (float64, error)
	GetBank(ctx context.Context, id string) (float64, error)
	GetTotalWealth(ctx context.Context, id string) (float64, error)
	FormatAmount(amount float64) string
}

type Ranking interface {
	PlayerRank(id string) int
	EntryAt(pos int) (leaderboard.Entry, bool)
}

type Resolver struct {
	balances Balances
	ranking  Ranking
}

func New(b Balances, r Ranking) *Resolver {
	return &Resolver{balances: b, ranking: r}
}

// Resolve returns the value of token for playerID. Tokens are matched
// case-insensitively. ok is false for an unknown token. An empty playerID
// yields an empty value.
func (r *Resolver) Resolve(ctx context.Context, playerID, token string) (value string, ok bool, err error) {
	if playerID == "" {
		return "", true, nil
	}

	token = strings.ToLower(token)

	switch token {
	case "cash":
		return r.amount(ctx, playerID, r.balances.GetCash)
	case "bank":
		return r.amount(ctx, playerID, r.balances.GetBank)
	case "total":
		return r.amount(ctx, playerID, r.balances.GetTotalWealth)
	case "cash_formatted":
		cash, err := r.balances.GetCash(ctx, playerID)
		if err != nil {
			return "", false, fmt.Errorf("read cash: %w", err)
		}

		return r.balances.FormatAmount(cash), true, nil
	case "rank":
		rank := r.ranking.PlayerRank(playerID)
		if rank <= 0 {
			return noRank, true, nil
		}

		return strconv.Itoa(rank), true, nil
	}

	if pos, found := strings.CutPrefix(token, prefixTopName); found {
		e, ok := r.ranking.EntryAt(parsePos(pos))
		if !ok {
			return noName, true, nil
		}

		return e.DisplayName, true, nil
	}

	if pos, found := strings.CutPrefix(token, prefixTopBalance); found {
		e, ok := r.ranking.EntryAt(parsePos(pos))
		if !ok {
			return noBalance, true, nil
		}

		return twoPlaces(e.TotalWealth), true, nil
	}

	return "", false, nil
}

func (r *Resolver) amount(
	ctx context.Context,
	playerID string,
	read func(ctx context.Context, id string) (float64, error),
) (string, bool, error) {
	v, err := read(ctx, playerID)
	if err != nil {
		return "", false, fmt.Errorf("read balance: %w", err)
	}

	return twoPlaces(v), true, nil
}

// twoPlaces rounds half away from zero on the shortest decimal form of v, so
// 2.675 renders "2.68".
func twoPlaces(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

func parsePos(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return -1
	}

	return n
}
