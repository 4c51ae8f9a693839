package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fastprodman/playereconomy/internal/adapters/placeholder"
	"github.com/fastprodman/playereconomy/internal/adapters/provider"
	"github.com/fastprodman/playereconomy/internal/services/leaderboard"
	"github.com/fastprodman/playereconomy/internal/services/ledger"
)

// Deps are the services behind the HTTP API.
type Deps struct {
	Ledger      *ledger.Ledger
	Leaderboard *leaderboard.Cache
	Provider    *provider.Provider
	Placeholder *placeholder.Resolver
	BankEnabled bool
	Metrics     http.Handler // optional; serves /metrics
}

// HandlerProvider exposes the economy services as HTTP handlers.
type HandlerProvider struct {
	ledger      *ledger.Ledger
	leaderboard *leaderboard.Cache
	provider    *provider.Provider
	placeholder *placeholder.Resolver
	bankEnabled bool
}

// NewHandler returns a new Handler provider.
func NewHandler(d Deps) *HandlerProvider {
	return &HandlerProvider{
		ledger:      d.Ledger,
		leaderboard: d.Leaderboard,
		provider:    d.Provider,
		placeholder: d.Placeholder,
		bankEnabled: d.BankEnabled,
	}
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeLedgerError maps ledger failures to HTTP statuses. Every rule
// violation keeps its own message.
func writeLedgerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledger.ErrInvalidAmount):
		writeError(w, http.StatusBadRequest, "invalid amount")
	case errors.Is(err, ledger.ErrInvalidPlayerID):
		writeError(w, http.StatusBadRequest, "invalid player id")
	case errors.Is(err, ledger.ErrSelfTransfer):
		writeError(w, http.StatusBadRequest, "cannot transfer to yourself")
	case errors.Is(err, ledger.ErrAccountNotFound):
		writeError(w, http.StatusNotFound, "account not found")
	case errors.Is(err, ledger.ErrInsufficientFunds):
		writeError(w, http.StatusConflict, "insufficient funds")
	case errors.Is(err, ledger.ErrBankLimitExceeded):
		writeError(w, http.StatusConflict, "bank balance limit exceeded")
	case errors.Is(err, ledger.ErrBelowMinDeposit):
		writeError(w, http.StatusUnprocessableEntity, "amount is below the minimum deposit")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// parsePlayerIDParam reads a UUID path parameter and returns it in canonical
// form.
func parsePlayerIDParam(r *http.Request, name string) (string, error) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		return "", fmt.Errorf("missing %s", name)
	}

	return parsePlayerID(raw)
}

func parsePlayerID(raw string) (string, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("invalid player id: %w", err)
	}

	return id.String(), nil
}

// decodeJSON reads a size-capped JSON body and rejects unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB cap
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("empty body")
		}

		return errors.New("invalid JSON")
	}

	return nil
}

// parseAmount accepts a decimal with at most two fractional digits.
func parseAmount(d *decimal.Decimal) (float64, error) {
	if d == nil {
		return 0, errors.New("amount required")
	}

	if !d.Equal(d.Round(2)) {
		return 0, errors.New("amount supports up to 2 decimals")
	}

	return d.InexactFloat64(), nil
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

type amountRequest struct {
	Amount *decimal.Decimal `json:"amount"`
}

func readAmount(w http.ResponseWriter, r *http.Request) (float64, bool) {
	var req amountRequest

	err := decodeJSON(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return 0, false
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return 0, false
	}

	return amount, true
}

// --- Health ---

func (h *HandlerProvider) HealthHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
