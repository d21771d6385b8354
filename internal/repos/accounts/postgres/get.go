package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pusherlabs/pusher-ledger/internal/ledger"
	"github.com/pusherlabs/pusher-ledger/internal/repos/accounts"
)

// Get reads the account without locking; suitable for the read endpoint.
func (r *accountsRepo) Get(ctx context.Context, addr ledger.Address) (*ledger.Account, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+accountColumns+`
		FROM game_accounts
		WHERE address = $1
	`, addr)

	acct, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, accounts.ErrAccountNotFound
		}

		return nil, fmt.Errorf("get game account: %w", err)
	}

	return acct, nil
}
