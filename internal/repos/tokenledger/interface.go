package tokenledger

import (
	"database/sql"
	"errors"

	"github.com/pusherlabs/pusher-ledger/internal/ledger"
)

var ErrInsufficientTokens = errors.New("insufficient token funds")

// Mint identifies an externally minted fungible token. Which mints exist is
// configuration, not core logic.
type Mint string

// VaultAuthority is the capability required to move tokens out of the vault
// holding. It is held by the service process only; it is never serialized and
// never crosses the API surface.
type VaultAuthority struct {
	valid bool
}

func NewVaultAuthority() VaultAuthority {
	return VaultAuthority{valid: true}
}

// Granted reports whether this is a real capability rather than a zero value.
func (a VaultAuthority) Granted() bool {
	return a.valid
}

// TokenLedger moves fungible-token value between player-owned and vault-owned
// holdings. Both operations are fallible and must be driven as the first,
// irrevocable step of the instruction that uses them; they journal every
// transfer and return its id.
type TokenLedger interface {
	// DebitToVault moves amount of mint from the player's holding into the
	// vault. Authorization is the player's own: callers must only pass the
	// authenticated instruction caller as player.
	DebitToVault(tx *sql.Tx, player ledger.PlayerID, mint Mint, amount uint64) (string, error)

	// CreditFromVault moves amount of mint from the vault to the player's
	// holding. It requires the vault authority capability.
	CreditFromVault(tx *sql.Tx, auth VaultAuthority, player ledger.PlayerID, mint Mint, amount uint64) (string, error)
}
