package game

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pusherlabs/pusher-ledger/internal/events"
	"github.com/pusherlabs/pusher-ledger/internal/infra/pgutils"
	"github.com/pusherlabs/pusher-ledger/internal/ledger"
)

// Initialize creates the single game account for a player. It fails with
// accounts.ErrAccountExists if the derived address is already occupied.
func (s *GameService) Initialize(ctx context.Context, player ledger.PlayerID, startingBalance uint64) (*ledger.Account, error) {
	now := s.clock.Now()
	acct := ledger.NewAccount(player, startingBalance, now)

	err := pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		err := s.accounts.Create(tx, acct)
		if err != nil {
			return fmt.Errorf("create account: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("initialize: %w", err)
	}

	s.emit(ctx, events.Event{
		Kind:       events.KindAccountInitialized,
		Player:     player,
		Amount:     startingBalance,
		NewBalance: acct.Balance,
		Timestamp:  now,
	})

	return acct, nil
}

// GetAccount reads the player's account without locking.
func (s *GameService) GetAccount(ctx context.Context, player ledger.PlayerID) (*ledger.Account, error) {
	addr, _ := ledger.DeriveAddress(player)

	acct, err := s.accounts.Get(ctx, addr)
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}

	if acct.Owner != player || !ledger.VerifyAddress(acct.Owner, acct.Address, acct.Nonce) {
		return nil, ledger.ErrUnauthorized
	}

	return acct, nil
}

// Reset returns the account's counters to their fixed defaults. The record
// itself is never deleted.
func (s *GameService) Reset(ctx context.Context, player ledger.PlayerID) (*ledger.Account, error) {
	now := s.clock.Now()

	acct, err := s.withAccount(ctx, player, func(_ *sql.Tx, acct *ledger.Account) error {
		acct.Reset(now)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reset: %w", err)
	}

	s.emit(ctx, events.Event{
		Kind:       events.KindReset,
		Player:     player,
		NewBalance: acct.Balance,
		Timestamp:  now,
	})

	return acct, nil
}
