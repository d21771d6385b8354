package accounts

import (
	"database/sql"
	"fmt"

	"github.com/pusherlabs/pusher-ledger/internal/ledger"
	"github.com/pusherlabs/pusher-ledger/internal/repos/accounts"
)

// Save writes the mutable fields back. Address, owner, nonce and created_at
// are immutable after Create and deliberately not part of the update.
func (r *accountsRepo) Save(tx *sql.Tx, acct *ledger.Account) error {
	res, err := tx.Exec(`
		UPDATE game_accounts
		SET score = $2,
		    balance = $3,
		    net_profit = $4,
		    total_reward_events = $5,
		    rare_reward_events = $6,
		    last_action_at = $7
		WHERE address = $1
	`,
		acct.Address,
		int64(acct.Score), int64(acct.Balance), acct.NetProfit,
		int64(acct.TotalRewardEvents), int64(acct.RareRewardEvents),
		acct.LastActionAt,
	)
	if err != nil {
		return fmt.Errorf("save game account: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if affected == 0 {
		return accounts.ErrAccountNotFound
	}

	return nil
}
