package treasury

import (
	"database/sql"
	"fmt"

	"github.com/pusherlabs/pusher-ledger/internal/ledger"
	"github.com/pusherlabs/pusher-ledger/internal/repos/treasury"
)

var _ treasury.Treasury = (*treasuryRepo)(nil)

type treasuryRepo struct{ db *sql.DB }

func New(db *sql.DB) *treasuryRepo {
	return &treasuryRepo{db: db}
}

func (r *treasuryRepo) move(tx *sql.Tx, from, to ledger.Address, amount uint64) error {
	res, err := tx.Exec(`
		UPDATE wallets
		SET balance = balance - $2
		WHERE address = $1
		  AND balance >= $2
	`, from, int64(amount))
	if err != nil {
		return fmt.Errorf("debit wallet: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if affected == 0 {
		return treasury.ErrInsufficientFunds
	}

	_, err = tx.Exec(`
		INSERT INTO wallets (address, balance)
		VALUES ($1, $2)
		ON CONFLICT (address) DO UPDATE
		SET balance = wallets.balance + EXCLUDED.balance
	`, to, int64(amount))
	if err != nil {
		return fmt.Errorf("credit wallet: %w", err)
	}

	return nil
}
