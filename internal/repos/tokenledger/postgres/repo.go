package tokenledger

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/pusherlabs/pusher-ledger/internal/ledger"
	"github.com/pusherlabs/pusher-ledger/internal/repos/tokenledger"
)

var _ tokenledger.TokenLedger = (*tokenRepo)(nil)

type tokenRepo struct{ db *sql.DB }

func New(db *sql.DB) *tokenRepo {
	return &tokenRepo{db: db}
}

// move debits the source holding and credits the destination inside the
// caller's transaction, journaling the transfer. The guarded UPDATE on the
// source is the insufficiency check: zero rows affected means the holding is
// missing or underfunded.
func (r *tokenRepo) move(tx *sql.Tx, from, to ledger.Address, mint tokenledger.Mint, amount uint64) (string, error) {
	res, err := tx.Exec(`
		UPDATE token_holdings
		SET amount = amount - $3
		WHERE address = $1
		  AND mint = $2
		  AND amount >= $3
	`, from, mint, int64(amount))
	if err != nil {
		return "", fmt.Errorf("debit holding: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return "", fmt.Errorf("rows affected: %w", err)
	}

	if affected == 0 {
		return "", tokenledger.ErrInsufficientTokens
	}

	_, err = tx.Exec(`
		INSERT INTO token_holdings (address, mint, amount)
		VALUES ($1, $2, $3)
		ON CONFLICT (address, mint) DO UPDATE
		SET amount = token_holdings.amount + EXCLUDED.amount
	`, to, mint, int64(amount))
	if err != nil {
		return "", fmt.Errorf("credit holding: %w", err)
	}

	transferID := uuid.NewString()

	_, err = tx.Exec(`
		INSERT INTO token_transfers (id, from_address, to_address, mint, amount)
		VALUES ($1, $2, $3, $4, $5)
	`, transferID, from, to, mint, int64(amount))
	if err != nil {
		return "", fmt.Errorf("journal transfer: %w", err)
	}

	return transferID, nil
}
