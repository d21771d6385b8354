package treasury

import (
	"database/sql"
	"errors"

	"github.com/pusherlabs/pusher-ledger/internal/ledger"
)

// ErrInsufficientFunds covers both an underfunded and a missing wallet: the
// guarded debit cannot tell them apart and the caller treats them the same.
var ErrInsufficientFunds = errors.New("insufficient funds")

// Treasury moves native value between a player's own wallet and the
// program-owned account bound to that player. As with the token ledger, a
// transfer is the first, irrevocable step of its instruction.
type Treasury interface {
	// TransferToProgram pays amount from the player's wallet into the program
	// account, authorized by the player (the authenticated caller).
	TransferToProgram(tx *sql.Tx, player ledger.PlayerID, programAddr ledger.Address, amount uint64) error

	// TransferToPlayer pays amount out of the program account to the player.
	// The program authorizes this on its own behalf: the account's derivation
	// proof (address + nonce re-derived from the owner) is the signing
	// capability, so no player signature is involved.
	TransferToPlayer(tx *sql.Tx, programAddr ledger.Address, nonce uint8, player ledger.PlayerID, amount uint64) error
}
