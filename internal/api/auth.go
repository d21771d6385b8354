package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"

	"github.com/pusherlabs/pusher-ledger/internal/config"
	"github.com/pusherlabs/pusher-ledger/internal/ledger"
)

// RoleVaultAuthority marks tokens allowed to invoke the rare-token award
// instruction on behalf of the program's vault.
const RoleVaultAuthority = "vault-authority"

type callerClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role,omitempty"`
}

// Caller is the authenticated identity extracted from the bearer token.
type Caller struct {
	Player ledger.PlayerID
	Role   string
}

type callerKey struct{}

// CallerFromContext returns the authenticated caller, if any.
func CallerFromContext(ctx context.Context) (Caller, bool) {
	c, ok := ctx.Value(callerKey{}).(Caller)

	return c, ok
}

// Authenticate verifies the bearer token and stores the caller identity.
// Token subject is the player identity the caller controls.
func Authenticate(cfg config.AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if raw == "" || raw == r.Header.Get("Authorization") {
				writeError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			caller, err := verifyToken(raw, cfg)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), callerKey{}, caller)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func verifyToken(raw string, cfg config.AuthConfig) (Caller, error) {
	var claims callerClaims

	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return []byte(cfg.Secret), nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(cfg.Issuer),
	)
	if err != nil {
		return Caller{}, fmt.Errorf("parse token: %w", err)
	}

	if claims.Subject == "" {
		return Caller{}, fmt.Errorf("token has no subject")
	}

	return Caller{
		Player: ledger.PlayerID(claims.Subject),
		Role:   claims.Role,
	}, nil
}

// RequireOwner gates player-scoped instructions: the authenticated caller
// must be the player named in the path. This is the ownership half of the
// authorization gate; the derivation proof is re-checked in the service.
func RequireOwner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller, ok := CallerFromContext(r.Context())
		if !ok || caller.Player != ledger.PlayerID(chi.URLParam(r, "player")) {
			writeError(w, http.StatusForbidden, "caller does not own this account")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireVaultAuthority gates the award instruction to operator tokens
// carrying the vault-authority role.
func RequireVaultAuthority(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller, ok := CallerFromContext(r.Context())
		if !ok || caller.Role != RoleVaultAuthority {
			writeError(w, http.StatusForbidden, "vault authority required")
			return
		}

		next.ServeHTTP(w, r)
	})
}
