// Package game implements the instruction handlers of the game-economy
// ledger. Each instruction runs as one database transaction: lock the target
// account, validate preconditions, drive any external value transfer first,
// then mutate local state. Any error aborts the whole unit with nothing
// persisted. Events are emitted only after a successful commit.
package game

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/pusherlabs/pusher-ledger/internal/events"
	"github.com/pusherlabs/pusher-ledger/internal/infra/clock"
	"github.com/pusherlabs/pusher-ledger/internal/infra/pgutils"
	"github.com/pusherlabs/pusher-ledger/internal/ledger"
	"github.com/pusherlabs/pusher-ledger/internal/repos/accounts"
	pgaccounts "github.com/pusherlabs/pusher-ledger/internal/repos/accounts/postgres"
	"github.com/pusherlabs/pusher-ledger/internal/repos/tokenledger"
	pgtokens "github.com/pusherlabs/pusher-ledger/internal/repos/tokenledger/postgres"
	"github.com/pusherlabs/pusher-ledger/internal/repos/treasury"
	pgtreasury "github.com/pusherlabs/pusher-ledger/internal/repos/treasury/postgres"
)

// mintBaseUnits converts whole in-game cost units to fungible-token base
// units (the mints use 6 decimals).
const mintBaseUnits = 1_000_000

type Config struct {
	Policy       ledger.Policy
	OrdinaryMint tokenledger.Mint
	RareMint     tokenledger.Mint
}

type GameService struct {
	db       *sql.DB
	accounts accounts.Accounts
	tokens   tokenledger.TokenLedger
	treasury treasury.Treasury
	emitter  events.Emitter
	clock    clock.Clock

	// vault is the program's own capability for paying out of the vault
	// holding. It never leaves the service.
	vault tokenledger.VaultAuthority

	cfg Config
}

func New(db *sql.DB, emitter events.Emitter, clk clock.Clock, cfg Config) *GameService {
	return &GameService{
		db:       db,
		accounts: pgaccounts.New(db),
		tokens:   pgtokens.New(db),
		treasury: pgtreasury.New(db),
		emitter:  emitter,
		clock:    clk,
		vault:    tokenledger.NewVaultAuthority(),
		cfg:      cfg,
	}
}

func (s *GameService) requirePolicy(p ledger.Policy) error {
	if s.cfg.Policy != p {
		return ledger.ErrUnsupportedByPolicy
	}

	return nil
}

// withAccount runs fn against the locked, ownership-verified account and
// saves the result, all inside one transaction.
func (s *GameService) withAccount(ctx context.Context, player ledger.PlayerID, fn func(tx *sql.Tx, acct *ledger.Account) error) (*ledger.Account, error) {
	addr, _ := ledger.DeriveAddress(player)

	var acct *ledger.Account

	err := pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		var err error

		acct, err = s.accounts.LockAndGet(tx, addr)
		if err != nil {
			return fmt.Errorf("lock account: %w", err)
		}

		// The stored record must be bound to the caller and must verify
		// against its own derivation proof.
		if acct.Owner != player || !ledger.VerifyAddress(acct.Owner, acct.Address, acct.Nonce) {
			return ledger.ErrUnauthorized
		}

		err = fn(tx, acct)
		if err != nil {
			return err
		}

		err = s.accounts.Save(tx, acct)
		if err != nil {
			return fmt.Errorf("save account: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return acct, nil
}

func (s *GameService) emit(ctx context.Context, ev events.Event) {
	ev.ID = uuid.NewString()
	s.emitter.Emit(ctx, ev)
}
