package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/fastprodman/playereconomy/internal/adapters/provider"
)

// ProviderInfoHandler handles GET /provider.
func (h *HandlerProvider) ProviderInfoHandler(w http.ResponseWriter, _ *http.Request) {
	p := h.provider

	writeJSON(w, http.StatusOK, map[string]any{
		"name":                 p.Name(),
		"enabled":              p.Enabled(),
		"hasBankSupport":       p.HasBankSupport(),
		"fractionalDigits":     p.FractionalDigits(),
		"currencyNameSingular": p.CurrencyNameSingular(),
		"currencyNamePlural":   p.CurrencyNamePlural(),
	})
}

// ProviderFormatHandler handles GET /provider/format?amount=x.
func (h *HandlerProvider) ProviderFormatHandler(w http.ResponseWriter, r *http.Request) {
	d, err := decimal.NewFromString(r.URL.Query().Get("amount"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid amount")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"formatted": h.provider.Format(d.InexactFloat64())})
}

type providerAccountRequest struct {
	Name string `json:"name"`
}

// ProviderCreateAccountHandler handles POST /provider/accounts/{playerId}.
func (h *HandlerProvider) ProviderCreateAccountHandler(w http.ResponseWriter, r *http.Request) {
	playerID, err := parsePlayerIDParam(r, "playerId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid playerId in path")
		return
	}

	var req providerAccountRequest

	err = decodeJSON(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.provider.CreateAccount(r.Context(), playerID, req.Name)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"created": created})
}

// ProviderAccountHandler handles GET /provider/accounts/{playerId}.
func (h *HandlerProvider) ProviderAccountHandler(w http.ResponseWriter, r *http.Request) {
	playerID, err := parsePlayerIDParam(r, "playerId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid playerId in path")
		return
	}

	exists, err := h.provider.HasAccount(r.Context(), playerID)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	balance, err := h.provider.Balance(r.Context(), playerID)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"exists":  exists,
		"balance": balance,
	})
}

// ProviderHasHandler handles GET /provider/accounts/{playerId}/has?amount=x.
func (h *HandlerProvider) ProviderHasHandler(w http.ResponseWriter, r *http.Request) {
	playerID, err := parsePlayerIDParam(r, "playerId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid playerId in path")
		return
	}

	d, err := decimal.NewFromString(r.URL.Query().Get("amount"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid amount")
		return
	}

	has, err := h.provider.Has(r.Context(), playerID, d.InexactFloat64())
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"has": has})
}

// ProviderWithdrawHandler handles POST /provider/accounts/{playerId}/withdraw.
func (h *HandlerProvider) ProviderWithdrawHandler(w http.ResponseWriter, r *http.Request) {
	h.providerMove(w, r, h.provider.Withdraw)
}

// ProviderDepositHandler handles POST /provider/accounts/{playerId}/deposit.
func (h *HandlerProvider) ProviderDepositHandler(w http.ResponseWriter, r *http.Request) {
	h.providerMove(w, r, h.provider.Deposit)
}

func (h *HandlerProvider) providerMove(
	w http.ResponseWriter,
	r *http.Request,
	move func(ctx context.Context, id string, amount float64) (provider.Response, error),
) {
	playerID, err := parsePlayerIDParam(r, "playerId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid playerId in path")
		return
	}

	amount, ok := readAmount(w, r)
	if !ok {
		return
	}

	resp, err := move(r.Context(), playerID, amount)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	// Provider failures are outcomes, not transport errors.
	writeJSON(w, http.StatusOK, resp)
}

// ProviderBanksHandler handles GET /provider/banks.
func (h *HandlerProvider) ProviderBanksHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"banks": h.provider.Banks()})
}

// ProviderSharedBankHandler answers every shared-bank operation under
// /provider/banks/{bank}.
func (h *HandlerProvider) ProviderSharedBankHandler(w http.ResponseWriter, r *http.Request) {
	bank := chi.URLParam(r, "bank")
	p := h.provider

	var resp provider.Response

	switch chi.URLParam(r, "action") {
	case "":
		switch r.Method {
		case http.MethodGet:
			resp = p.BankBalance(bank)
		case http.MethodDelete:
			resp = p.DeleteBank(bank)
		default:
			resp = p.CreateBank(bank, r.URL.Query().Get("owner"))
		}
	case "balance":
		resp = p.BankBalance(bank)
	case "has":
		resp = p.BankHas(bank, 0)
	case "withdraw":
		resp = p.BankWithdraw(bank, 0)
	case "deposit":
		resp = p.BankDeposit(bank, 0)
	case "owner":
		resp = p.IsBankOwner(bank, r.URL.Query().Get("player"))
	case "member":
		resp = p.IsBankMember(bank, r.URL.Query().Get("player"))
	default:
		writeError(w, http.StatusNotFound, "unknown bank operation")
		return
	}

	writeJSON(w, http.StatusNotImplemented, resp)
}
