package game

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pusherlabs/pusher-ledger/internal/events"
	"github.com/pusherlabs/pusher-ledger/internal/ledger"
)

// Drop pays one unit of the ordinary mint into the vault to drop a coin into
// the machine, then applies the local debit.
func (s *GameService) Drop(ctx context.Context, player ledger.PlayerID) (*ledger.Account, error) {
	return s.spend(ctx, player, ledger.DropCost, false)
}

// Bump pays fifty units of the ordinary mint to bump the machine. Bumping is
// rate limited to one call per second per account.
func (s *GameService) Bump(ctx context.Context, player ledger.PlayerID) (*ledger.Account, error) {
	return s.spend(ctx, player, ledger.BumpCost, true)
}

func (s *GameService) spend(ctx context.Context, player ledger.PlayerID, cost uint64, rateLimited bool) (*ledger.Account, error) {
	err := s.requirePolicy(ledger.PolicyToken)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()

	var transferID string

	acct, err := s.withAccount(ctx, player, func(tx *sql.Tx, acct *ledger.Account) error {
		if rateLimited {
			err := acct.CheckRate(now)
			if err != nil {
				return err
			}
		}

		// The external token debit is the first, irrevocable step; if it
		// fails the whole instruction aborts with no local mutation.
		transferID, err = s.tokens.DebitToVault(tx, player, s.cfg.OrdinaryMint, cost*mintBaseUnits)
		if err != nil {
			return fmt.Errorf("token debit: %w", err)
		}

		acct.Spend(cost, now)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("spend: %w", err)
	}

	s.emit(ctx, events.Event{
		Kind:       events.KindSpent,
		Player:     player,
		Amount:     cost,
		NewBalance: acct.Balance,
		TransferID: transferID,
		Timestamp:  now,
	})

	return acct, nil
}
