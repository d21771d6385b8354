package treasury

import (
	"database/sql"
	"fmt"

	"github.com/pusherlabs/pusher-ledger/internal/ledger"
)

// TransferToPlayer pays out of the program account. The derivation proof is
// re-checked here: only an address that truly derives from the receiving
// player may be debited on the program's behalf.
func (r *treasuryRepo) TransferToPlayer(tx *sql.Tx, programAddr ledger.Address, nonce uint8, player ledger.PlayerID, amount uint64) error {
	if !ledger.VerifyAddress(player, programAddr, nonce) {
		return ledger.ErrUnauthorized
	}

	err := r.move(tx, programAddr, ledger.Address(player), amount)
	if err != nil {
		return fmt.Errorf("transfer to player: %w", err)
	}

	return nil
}
