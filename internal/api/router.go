package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs a chi router with all API endpoints registered.
func NewRouter(d Deps) http.Handler {
	h := NewHandler(d)
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.HealthHandler)

	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.Metrics)
	}

	r.Route("/players/{playerId}", func(r chi.Router) {
		r.Get("/", h.GetAccountHandler)
		r.Post("/join", h.JoinHandler)
		r.Get("/rank", h.RankHandler)
		r.Get("/placeholders/{token}", h.PlaceholderHandler)

		r.Post("/cash/{op}", h.AdjustCashHandler)

		// Static segments win over {op} in chi.
		r.Post("/bank/deposit", h.DepositHandler)
		r.Post("/bank/withdraw", h.WithdrawHandler)
		r.Post("/bank/{op}", h.AdjustBankHandler)
	})

	r.Post("/transfers", h.TransferHandler)
	r.Get("/leaderboard", h.LeaderboardHandler)

	r.Route("/provider", func(r chi.Router) {
		r.Get("/", h.ProviderInfoHandler)
		r.Get("/format", h.ProviderFormatHandler)

		r.Post("/accounts/{playerId}", h.ProviderCreateAccountHandler)
		r.Get("/accounts/{playerId}", h.ProviderAccountHandler)
		r.Get("/accounts/{playerId}/has", h.ProviderHasHandler)
		r.Post("/accounts/{playerId}/withdraw", h.ProviderWithdrawHandler)
		r.Post("/accounts/{playerId}/deposit", h.ProviderDepositHandler)

		r.Get("/banks", h.ProviderBanksHandler)
		r.Get("/banks/{bank}", h.ProviderSharedBankHandler)
		r.Post("/banks/{bank}", h.ProviderSharedBankHandler)
		r.Delete("/banks/{bank}", h.ProviderSharedBankHandler)
		r.HandleFunc("/banks/{bank}/{action}", h.ProviderSharedBankHandler)
	})

	return r
}
