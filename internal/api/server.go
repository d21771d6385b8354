package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/pusherlabs/pusher-ledger/internal/config"
	"github.com/pusherlabs/pusher-ledger/internal/services/game"
)

// NewServer creates and returns a configured *http.Server for the ledger API.
func NewServer(port uint16, svc *game.GameService, authCfg config.AuthConfig) *http.Server {
	mux := NewRouter(svc, authCfg)

	addr := fmt.Sprintf(":%d", port)

	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
