package tokenledger

import (
	"database/sql"
	"fmt"

	"github.com/pusherlabs/pusher-ledger/internal/ledger"
	"github.com/pusherlabs/pusher-ledger/internal/repos/tokenledger"
)

func (r *tokenRepo) CreditFromVault(tx *sql.Tx, auth tokenledger.VaultAuthority, player ledger.PlayerID, mint tokenledger.Mint, amount uint64) (string, error) {
	if !auth.Granted() {
		return "", ledger.ErrUnauthorized
	}

	id, err := r.move(tx, ledger.VaultAddress, ledger.Address(player), mint, amount)
	if err != nil {
		return "", fmt.Errorf("credit %s from vault: %w", mint, err)
	}

	return id, nil
}
