package accounts

import (
	"database/sql"

	"github.com/pusherlabs/pusher-ledger/internal/repos/accounts"
)

var _ accounts.Accounts = (*accountsRepo)(nil)

type accountsRepo struct{ db *sql.DB }

func New(db *sql.DB) *accountsRepo {
	return &accountsRepo{db: db}
}

const accountColumns = `
	address, owner, nonce, score, balance, net_profit,
	total_reward_events, rare_reward_events, created_at, last_action_at
`
