package api

import (
	"net/http"
	"strconv"
	"time"
)

type leaderboardEntry struct {
	Rank           int    `json:"rank"`
	PlayerID       string `json:"playerId"`
	Name           string `json:"name"`
	Total          string `json:"total"`
	TotalFormatted string `json:"totalFormatted"`
}

// LeaderboardHandler handles GET /leaderboard?limit=n. Without a limit the
// configured display count is used.
func (h *HandlerProvider) LeaderboardHandler(w http.ResponseWriter, r *http.Request) {
	limit := h.leaderboard.DefaultDisplayCount()

	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}

		limit = n
	}

	top := h.leaderboard.TopPlayers(limit)

	entries := make([]leaderboardEntry, 0, len(top))
	for i, e := range top {
		entries = append(entries, leaderboardEntry{
			Rank:           i + 1,
			PlayerID:       e.PlayerID,
			Name:           e.DisplayName,
			Total:          money(e.TotalWealth),
			TotalFormatted: h.ledger.FormatAmount(e.TotalWealth),
		})
	}

	resp := map[string]any{"entries": entries}
	if last := h.leaderboard.LastRefresh(); !last.IsZero() {
		resp["refreshedAt"] = last.UTC().Format(time.RFC3339)
	}

	writeJSON(w, http.StatusOK, resp)
}

// RankHandler handles GET /players/{playerId}/rank. Rank is -1 for players
// not in the current snapshot.
func (h *HandlerProvider) RankHandler(w http.ResponseWriter, r *http.Request) {
	playerID, err := parsePlayerIDParam(r, "playerId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid playerId in path")
		return
	}

	rank := h.leaderboard.PlayerRank(playerID)

	writeJSON(w, http.StatusOK, map[string]any{
		"playerId": playerID,
		"rank":     rank,
		"ranked":   rank > 0,
	})
}
