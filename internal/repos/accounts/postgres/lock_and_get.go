package accounts

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/pusherlabs/pusher-ledger/internal/ledger"
	"github.com/pusherlabs/pusher-ledger/internal/repos/accounts"
)

// LockAndGet reads the account under FOR UPDATE so conflicting instructions
// against the same account serialize on the row lock.
func (r *accountsRepo) LockAndGet(tx *sql.Tx, addr ledger.Address) (*ledger.Account, error) {
	row := tx.QueryRow(`
		SELECT `+accountColumns+`
		FROM game_accounts
		WHERE address = $1
		FOR UPDATE
	`, addr)

	acct, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, accounts.ErrAccountNotFound
		}

		return nil, fmt.Errorf("lock game account: %w", err)
	}

	return acct, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*ledger.Account, error) {
	var (
		acct    ledger.Account
		nonce   int16
		score   int64
		balance int64
		total   int64
		rare    int64
	)

	err := row.Scan(
		&acct.Address, &acct.Owner, &nonce, &score, &balance, &acct.NetProfit,
		&total, &rare, &acct.CreatedAt, &acct.LastActionAt,
	)
	if err != nil {
		return nil, err
	}

	acct.Nonce = uint8(nonce)
	acct.Score = uint64(score)
	acct.Balance = uint64(balance)
	acct.TotalRewardEvents = uint64(total)
	acct.RareRewardEvents = uint64(rare)

	return &acct, nil
}
