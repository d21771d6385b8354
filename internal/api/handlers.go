package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pusherlabs/pusher-ledger/internal/ledger"
	"github.com/pusherlabs/pusher-ledger/internal/repos/accounts"
	"github.com/pusherlabs/pusher-ledger/internal/repos/tokenledger"
	"github.com/pusherlabs/pusher-ledger/internal/repos/treasury"
	"github.com/pusherlabs/pusher-ledger/internal/services/game"
)

// HandlerProvider wraps a GameService and exposes HTTP handlers.
type HandlerProvider struct {
	svc *game.GameService
}

func NewHandler(svc *game.GameService) *HandlerProvider {
	return &HandlerProvider{svc: svc}
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

// writeDomainError maps the domain error set to HTTP statuses; anything
// unrecognized is a 500 and gets logged.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledger.ErrInvalidAmount):
		writeError(w, http.StatusBadRequest, "invalid amount")
	case errors.Is(err, ledger.ErrUnauthorized):
		writeError(w, http.StatusForbidden, "unauthorized")
	case errors.Is(err, accounts.ErrAccountNotFound):
		writeError(w, http.StatusNotFound, "account not found")
	case errors.Is(err, accounts.ErrAccountExists):
		writeError(w, http.StatusConflict, "account already exists")
	case errors.Is(err, ledger.ErrInsufficientBalance):
		writeError(w, http.StatusConflict, "insufficient balance")
	case errors.Is(err, tokenledger.ErrInsufficientTokens),
		errors.Is(err, treasury.ErrInsufficientFunds):
		writeError(w, http.StatusConflict, "insufficient funds")
	case errors.Is(err, ledger.ErrTooManyRequests):
		writeError(w, http.StatusTooManyRequests, "too many requests")
	case errors.Is(err, ledger.ErrUnsupportedByPolicy):
		writeError(w, http.StatusUnprocessableEntity, "not supported by active policy")
	default:
		slog.Error("instruction failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func pathPlayer(r *http.Request) ledger.PlayerID {
	return ledger.PlayerID(chi.URLParam(r, "player"))
}

// decodeBody parses a small JSON body into dst, rejecting unknown fields.
// A missing body is allowed when dst's zero value is acceptable.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return true
		}

		writeError(w, http.StatusBadRequest, "invalid JSON")
		return false
	}

	return true
}

// accountResponse is the external view of a game account. The derivation
// nonce is a capability proof and stays internal.
type accountResponse struct {
	Address           ledger.Address  `json:"address"`
	Owner             ledger.PlayerID `json:"owner"`
	Score             uint64          `json:"score"`
	Balance           uint64          `json:"balance"`
	NetProfit         int64           `json:"netProfit"`
	TotalRewardEvents uint64          `json:"totalRewardEvents"`
	RareRewardEvents  uint64          `json:"rareRewardEvents"`
	CreatedAt         time.Time       `json:"createdAt"`
	LastActionAt      time.Time       `json:"lastActionAt"`
}

func toAccountResponse(a *ledger.Account) accountResponse {
	return accountResponse{
		Address:           a.Address,
		Owner:             a.Owner,
		Score:             a.Score,
		Balance:           a.Balance,
		NetProfit:         a.NetProfit,
		TotalRewardEvents: a.TotalRewardEvents,
		RareRewardEvents:  a.RareRewardEvents,
		CreatedAt:         a.CreatedAt,
		LastActionAt:      a.LastActionAt,
	}
}

// --- Handlers ---

// InitializeHandler handles POST /v1/players/{player}/account
func (h *HandlerProvider) InitializeHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StartingBalance uint64 `json:"startingBalance"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	acct, err := h.svc.Initialize(r.Context(), pathPlayer(r), req.StartingBalance)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toAccountResponse(acct))
}

// GetAccountHandler handles GET /v1/players/{player}/account
func (h *HandlerProvider) GetAccountHandler(w http.ResponseWriter, r *http.Request) {
	acct, err := h.svc.GetAccount(r.Context(), pathPlayer(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toAccountResponse(acct))
}

// RecordCollectionHandler handles POST /v1/players/{player}/collections
func (h *HandlerProvider) RecordCollectionHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount uint64 `json:"amount"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	acct, err := h.svc.RecordCollection(r.Context(), pathPlayer(r), req.Amount)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toAccountResponse(acct))
}

// CollectRewardHandler handles POST /v1/players/{player}/rewards
func (h *HandlerProvider) CollectRewardHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IsRare bool `json:"isRare"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	acct, err := h.svc.CollectReward(r.Context(), pathPlayer(r), req.IsRare)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toAccountResponse(acct))
}

// RecordScoreHandler handles POST /v1/players/{player}/score
func (h *HandlerProvider) RecordScoreHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Score uint64 `json:"score"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	acct, err := h.svc.RecordScore(r.Context(), pathPlayer(r), req.Score)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toAccountResponse(acct))
}

// DropHandler handles POST /v1/players/{player}/drops
func (h *HandlerProvider) DropHandler(w http.ResponseWriter, r *http.Request) {
	acct, err := h.svc.Drop(r.Context(), pathPlayer(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toAccountResponse(acct))
}

// BumpHandler handles POST /v1/players/{player}/bumps
func (h *HandlerProvider) BumpHandler(w http.ResponseWriter, r *http.Request) {
	acct, err := h.svc.Bump(r.Context(), pathPlayer(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toAccountResponse(acct))
}

// DepositHandler handles POST /v1/players/{player}/deposits
func (h *HandlerProvider) DepositHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount uint64 `json:"amount"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	acct, err := h.svc.Deposit(r.Context(), pathPlayer(r), req.Amount)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toAccountResponse(acct))
}

// WithdrawHandler handles POST /v1/players/{player}/withdrawals
func (h *HandlerProvider) WithdrawHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount uint64 `json:"amount"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	acct, err := h.svc.Withdraw(r.Context(), pathPlayer(r), req.Amount)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toAccountResponse(acct))
}

// AwardHandler handles POST /v1/players/{player}/awards
func (h *HandlerProvider) AwardHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount uint64 `json:"amount"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	transferID, err := h.svc.AwardRareToken(r.Context(), pathPlayer(r), req.Amount)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"transferId": transferID})
}

// ResetHandler handles POST /v1/players/{player}/reset
func (h *HandlerProvider) ResetHandler(w http.ResponseWriter, r *http.Request) {
	acct, err := h.svc.Reset(r.Context(), pathPlayer(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toAccountResponse(acct))
}
