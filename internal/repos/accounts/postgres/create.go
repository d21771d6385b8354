package accounts

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pusherlabs/pusher-ledger/internal/ledger"
	"github.com/pusherlabs/pusher-ledger/internal/repos/accounts"
)

func (r *accountsRepo) Create(tx *sql.Tx, acct *ledger.Account) error {
	_, err := tx.Exec(`
		INSERT INTO game_accounts (`+accountColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`,
		acct.Address, acct.Owner, int16(acct.Nonce),
		int64(acct.Score), int64(acct.Balance), acct.NetProfit,
		int64(acct.TotalRewardEvents), int64(acct.RareRewardEvents),
		acct.CreatedAt, acct.LastActionAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return accounts.ErrAccountExists
			}
		}

		return fmt.Errorf("insert game account: %w", err)
	}

	return nil
}
