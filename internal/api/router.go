package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pusherlabs/pusher-ledger/internal/config"
	"github.com/pusherlabs/pusher-ledger/internal/services/game"
)

// NewRouter constructs the router with all instruction endpoints registered.
func NewRouter(svc *game.GameService, authCfg config.AuthConfig) http.Handler {
	h := NewHandler(svc)
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/v1/players/{player}", func(r chi.Router) {
		r.Use(Authenticate(authCfg))

		r.Group(func(r chi.Router) {
			r.Use(RequireOwner)

			r.Post("/account", h.InitializeHandler)
			r.Get("/account", h.GetAccountHandler)
			r.Post("/collections", h.RecordCollectionHandler)
			r.Post("/rewards", h.CollectRewardHandler)
			r.Post("/score", h.RecordScoreHandler)
			r.Post("/drops", h.DropHandler)
			r.Post("/bumps", h.BumpHandler)
			r.Post("/deposits", h.DepositHandler)
			r.Post("/withdrawals", h.WithdrawHandler)
			r.Post("/reset", h.ResetHandler)
		})

		// Awards are an operator instruction, not a player one.
		r.With(RequireVaultAuthority).Post("/awards", h.AwardHandler)
	})

	return r
}
