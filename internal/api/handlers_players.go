package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/fastprodman/playereconomy/internal/repos/accounts"
)

type accountResponse struct {
	PlayerID      string `json:"playerId"`
	Name          string `json:"name"`
	Cash          string `json:"cash"`
	Bank          string `json:"bank"`
	Total         string `json:"total"`
	CashFormatted string `json:"cashFormatted"`
	BankFormatted string `json:"bankFormatted"`
	Rank          int    `json:"rank"`
}

func (h *HandlerProvider) accountView(acc *accounts.Account) accountResponse {
	return accountResponse{
		PlayerID:      acc.ID,
		Name:          acc.DisplayName,
		Cash:          money(acc.Cash),
		Bank:          money(acc.Bank),
		Total:         money(acc.TotalWealth()),
		CashFormatted: h.ledger.FormatAmount(acc.Cash),
		BankFormatted: h.ledger.FormatAmount(acc.Bank),
		Rank:          h.leaderboard.PlayerRank(acc.ID),
	}
}

type joinRequest struct {
	Name string `json:"name"`
}

// JoinHandler handles POST /players/{playerId}/join. It creates the account
// on first join and returns it unchanged afterwards.
func (h *HandlerProvider) JoinHandler(w http.ResponseWriter, r *http.Request) {
	playerID, err := parsePlayerIDParam(r, "playerId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid playerId in path")
		return
	}

	var req joinRequest

	err = decodeJSON(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	acc, err := h.ledger.GetOrCreate(r.Context(), playerID, req.Name)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, h.accountView(acc))
}

// GetAccountHandler handles GET /players/{playerId}.
func (h *HandlerProvider) GetAccountHandler(w http.ResponseWriter, r *http.Request) {
	playerID, err := parsePlayerIDParam(r, "playerId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid playerId in path")
		return
	}

	acc, err := h.ledger.GetAccount(r.Context(), playerID)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, h.accountView(acc))
}

type balanceOp func(ctx context.Context, id string, amount float64) error

func (h *HandlerProvider) cashOps() map[string]balanceOp {
	return map[string]balanceOp{
		"set":  h.ledger.SetCash,
		"add":  h.ledger.AddCash,
		"take": h.ledger.TakeCash,
	}
}

func (h *HandlerProvider) bankOps() map[string]balanceOp {
	return map[string]balanceOp{
		"set":  h.ledger.SetBank,
		"add":  h.ledger.AddBank,
		"take": h.ledger.TakeBank,
	}
}

// AdjustCashHandler handles POST /players/{playerId}/cash/{op}.
func (h *HandlerProvider) AdjustCashHandler(w http.ResponseWriter, r *http.Request) {
	h.adjust(w, r, h.cashOps())
}

// AdjustBankHandler handles POST /players/{playerId}/bank/{op}.
func (h *HandlerProvider) AdjustBankHandler(w http.ResponseWriter, r *http.Request) {
	h.adjust(w, r, h.bankOps())
}

func (h *HandlerProvider) adjust(w http.ResponseWriter, r *http.Request, ops map[string]balanceOp) {
	playerID, err := parsePlayerIDParam(r, "playerId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid playerId in path")
		return
	}

	op, ok := ops[chi.URLParam(r, "op")]
	if !ok {
		writeError(w, http.StatusNotFound, "unknown operation")
		return
	}

	amount, ok := readAmount(w, r)
	if !ok {
		return
	}

	err = op(r.Context(), playerID, amount)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	h.writeAccount(w, r, playerID)
}

// DepositHandler handles POST /players/{playerId}/bank/deposit.
func (h *HandlerProvider) DepositHandler(w http.ResponseWriter, r *http.Request) {
	h.bankMove(w, r, h.ledger.DepositToBank)
}

// WithdrawHandler handles POST /players/{playerId}/bank/withdraw.
func (h *HandlerProvider) WithdrawHandler(w http.ResponseWriter, r *http.Request) {
	h.bankMove(w, r, h.ledger.WithdrawFromBank)
}

func (h *HandlerProvider) bankMove(w http.ResponseWriter, r *http.Request, move balanceOp) {
	if !h.bankEnabled {
		writeError(w, http.StatusForbidden, "bank is disabled")
		return
	}

	playerID, err := parsePlayerIDParam(r, "playerId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid playerId in path")
		return
	}

	amount, ok := readAmount(w, r)
	if !ok {
		return
	}

	err = move(r.Context(), playerID, amount)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	h.writeAccount(w, r, playerID)
}

func (h *HandlerProvider) writeAccount(w http.ResponseWriter, r *http.Request, playerID string) {
	acc, err := h.ledger.GetAccount(r.Context(), playerID)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, h.accountView(acc))
}

type transferRequest struct {
	From   string           `json:"from"`
	To     string           `json:"to"`
	Amount *decimal.Decimal `json:"amount"`
}

// TransferHandler handles POST /transfers.
func (h *HandlerProvider) TransferHandler(w http.ResponseWriter, r *http.Request) {
	var req transferRequest

	err := decodeJSON(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	from, err := parsePlayerID(req.From)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid from")
		return
	}

	to, err := parsePlayerID(req.To)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid to")
		return
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	err = h.ledger.Transfer(r.Context(), from, to, amount)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"from":      from,
		"to":        to,
		"amount":    money(amount),
		"formatted": h.ledger.FormatAmount(amount),
	})
}

// PlaceholderHandler handles GET /players/{playerId}/placeholders/{token}.
func (h *HandlerProvider) PlaceholderHandler(w http.ResponseWriter, r *http.Request) {
	playerID, err := parsePlayerIDParam(r, "playerId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid playerId in path")
		return
	}

	token := chi.URLParam(r, "token")

	value, ok, err := h.placeholder.Resolve(r.Context(), playerID, token)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	if !ok {
		writeError(w, http.StatusNotFound, "unknown placeholder")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token, "value": value})
}
