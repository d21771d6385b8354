package treasury

import (
	"database/sql"
	"fmt"

	"github.com/pusherlabs/pusher-ledger/internal/ledger"
)

func (r *treasuryRepo) TransferToProgram(tx *sql.Tx, player ledger.PlayerID, programAddr ledger.Address, amount uint64) error {
	err := r.move(tx, ledger.Address(player), programAddr, amount)
	if err != nil {
		return fmt.Errorf("transfer to program: %w", err)
	}

	return nil
}
