package tokenledger

import (
	"database/sql"
	"fmt"

	"github.com/pusherlabs/pusher-ledger/internal/ledger"
	"github.com/pusherlabs/pusher-ledger/internal/repos/tokenledger"
)

func (r *tokenRepo) DebitToVault(tx *sql.Tx, player ledger.PlayerID, mint tokenledger.Mint, amount uint64) (string, error) {
	id, err := r.move(tx, ledger.Address(player), ledger.VaultAddress, mint, amount)
	if err != nil {
		return "", fmt.Errorf("debit %s to vault: %w", mint, err)
	}

	return id, nil
}
