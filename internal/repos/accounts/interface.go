package accounts

import (
	"context"
	"database/sql"
	"errors"

	"github.com/pusherlabs/pusher-ledger/internal/ledger"
)

var ErrAccountExists = errors.New("account already exists")
var ErrAccountNotFound = errors.New("account not found")

// Accounts persists GameAccount records keyed by their derived address.
// Mutating methods take the enclosing *sql.Tx so one instruction stays one
// atomic unit of work.
type Accounts interface {
	Create(tx *sql.Tx, acct *ledger.Account) error
	Get(ctx context.Context, addr ledger.Address) (*ledger.Account, error)
	LockAndGet(tx *sql.Tx, addr ledger.Address) (*ledger.Account, error)
	Save(tx *sql.Tx, acct *ledger.Account) error
}
