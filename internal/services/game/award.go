package game

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pusherlabs/pusher-ledger/internal/events"
	"github.com/pusherlabs/pusher-ledger/internal/infra/pgutils"
	"github.com/pusherlabs/pusher-ledger/internal/ledger"
)

// AwardRareToken pays amount base units of the rare mint from the vault to
// the player, under the program's vault authority.
//
// Nothing here verifies the player earned this amount. Entitlement is
// delegated entirely to the operator process holding the vault-authority
// credential; the API gate restricting this instruction to that role is the
// only check.
func (s *GameService) AwardRareToken(ctx context.Context, player ledger.PlayerID, amount uint64) (string, error) {
	err := s.requirePolicy(ledger.PolicyToken)
	if err != nil {
		return "", err
	}

	if amount == 0 {
		return "", ledger.ErrInvalidAmount
	}

	now := s.clock.Now()

	var transferID string

	err = pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		transferID, err = s.tokens.CreditFromVault(tx, s.vault, player, s.cfg.RareMint, amount)
		if err != nil {
			return fmt.Errorf("vault credit: %w", err)
		}

		return nil
	})
	if err != nil {
		return "", fmt.Errorf("award rare token: %w", err)
	}

	s.emit(ctx, events.Event{
		Kind:       events.KindRareTokenAwarded,
		Player:     player,
		Amount:     amount,
		TransferID: transferID,
		Timestamp:  now,
	})

	return transferID, nil
}
