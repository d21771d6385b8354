package game

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pusherlabs/pusher-ledger/internal/events"
	"github.com/pusherlabs/pusher-ledger/internal/ledger"
)

// RecordCollection is the currency-policy collection instruction: credit the
// raw collected amount, rate limited to one call per second per account.
func (s *GameService) RecordCollection(ctx context.Context, player ledger.PlayerID, amount uint64) (*ledger.Account, error) {
	err := s.requirePolicy(ledger.PolicyCurrency)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()

	acct, err := s.withAccount(ctx, player, func(_ *sql.Tx, acct *ledger.Account) error {
		return acct.RecordCollection(amount, now)
	})
	if err != nil {
		return nil, fmt.Errorf("record collection: %w", err)
	}

	s.emit(ctx, events.Event{
		Kind:       events.KindCollected,
		Player:     player,
		Amount:     amount,
		NewBalance: acct.Balance,
		Timestamp:  now,
	})

	return acct, nil
}

// CollectReward is the token-policy collection instruction: fixed reward of 1
// for an ordinary collection, 5 for a rare one. Not rate limited; under this
// policy the throttle sits on the cost-paying bump action instead.
func (s *GameService) CollectReward(ctx context.Context, player ledger.PlayerID, isRare bool) (*ledger.Account, error) {
	err := s.requirePolicy(ledger.PolicyToken)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()

	var reward uint64

	acct, err := s.withAccount(ctx, player, func(_ *sql.Tx, acct *ledger.Account) error {
		reward = acct.CollectReward(isRare, now)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("collect reward: %w", err)
	}

	s.emit(ctx, events.Event{
		Kind:       events.KindCollected,
		Player:     player,
		Amount:     reward,
		IsRare:     isRare,
		NewBalance: acct.Balance,
		Timestamp:  now,
	})

	return acct, nil
}

// RecordScore overwrites the stored score with the caller-supplied absolute
// value. Deliberately unconstrained: the owner is trusted for their own
// score, and no plausibility check is applied.
func (s *GameService) RecordScore(ctx context.Context, player ledger.PlayerID, score uint64) (*ledger.Account, error) {
	now := s.clock.Now()

	acct, err := s.withAccount(ctx, player, func(_ *sql.Tx, acct *ledger.Account) error {
		acct.RecordScore(score, now)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("record score: %w", err)
	}

	s.emit(ctx, events.Event{
		Kind:      events.KindScoreRecorded,
		Player:    player,
		Score:     score,
		Timestamp: now,
	})

	return acct, nil
}
