package game

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pusherlabs/pusher-ledger/internal/events"
	"github.com/pusherlabs/pusher-ledger/internal/ledger"
)

// Deposit moves native value from the player's wallet into the program
// account and credits the in-game balance.
func (s *GameService) Deposit(ctx context.Context, player ledger.PlayerID, amount uint64) (*ledger.Account, error) {
	if amount == 0 {
		return nil, ledger.ErrInvalidAmount
	}

	now := s.clock.Now()

	acct, err := s.withAccount(ctx, player, func(tx *sql.Tx, acct *ledger.Account) error {
		err := s.treasury.TransferToProgram(tx, player, acct.Address, amount)
		if err != nil {
			return fmt.Errorf("native transfer: %w", err)
		}

		return acct.Deposit(amount, now)
	})
	if err != nil {
		return nil, fmt.Errorf("deposit: %w", err)
	}

	s.emit(ctx, events.Event{
		Kind:       events.KindDeposited,
		Player:     player,
		Amount:     amount,
		NewBalance: acct.Balance,
		Timestamp:  now,
	})

	return acct, nil
}

// Withdraw pays native value out of the program account back to the player.
// The program authorizes the transfer with the account's own derivation
// proof; the balance precondition is checked before any value moves.
func (s *GameService) Withdraw(ctx context.Context, player ledger.PlayerID, amount uint64) (*ledger.Account, error) {
	now := s.clock.Now()

	acct, err := s.withAccount(ctx, player, func(tx *sql.Tx, acct *ledger.Account) error {
		err := acct.CheckWithdraw(amount)
		if err != nil {
			return err
		}

		err = s.treasury.TransferToPlayer(tx, acct.Address, acct.Nonce, player, amount)
		if err != nil {
			return fmt.Errorf("native transfer: %w", err)
		}

		acct.Withdraw(amount, now)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("withdraw: %w", err)
	}

	s.emit(ctx, events.Event{
		Kind:       events.KindWithdrawn,
		Player:     player,
		Amount:     amount,
		NewBalance: acct.Balance,
		Timestamp:  now,
	})

	return acct, nil
}
