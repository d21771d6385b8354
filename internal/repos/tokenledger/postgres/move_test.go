package tokenledger

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/pusherlabs/pusher-ledger/internal/infra/pgtestutil"
	"github.com/pusherlabs/pusher-ledger/internal/ledger"
	"github.com/pusherlabs/pusher-ledger/internal/repos/tokenledger"
)

func seedHolding(t *testing.T, db *sql.DB, addr ledger.Address, mint tokenledger.Mint, amount int64) {
	t.Helper()

	_, err := db.Exec(`
		INSERT INTO token_holdings (address, mint, amount) VALUES ($1, $2, $3)
		ON CONFLICT (address, mint) DO UPDATE SET amount = EXCLUDED.amount
	`, addr, mint, amount)
	if err != nil {
		t.Fatalf("seed holding(%s, %s): %v", addr, mint, err)
	}
}

func holdingAmount(t *testing.T, db *sql.DB, addr ledger.Address, mint tokenledger.Mint) int64 {
	t.Helper()

	var amount int64
	err := db.QueryRow(`
		SELECT amount FROM token_holdings WHERE address = $1 AND mint = $2
	`, addr, mint).Scan(&amount)
	if err != nil {
		t.Fatalf("read holding(%s, %s): %v", addr, mint, err)
	}

	return amount
}

func TestTokenLedger_DebitToVault_Table(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		seedAmount  int64
		seed        bool
		debit       uint64
		wantErr     bool // true -> expect ErrInsufficientTokens
		wantBalance int64
	}{
		{
			name:        "sufficient_partial_debit",
			seed:        true,
			seedAmount:  5_000_000,
			debit:       1_000_000,
			wantBalance: 4_000_000,
		},
		{
			name:        "sufficient_exact_to_zero",
			seed:        true,
			seedAmount:  1_000_000,
			debit:       1_000_000,
			wantBalance: 0,
		},
		{
			name:        "insufficient_holding_unchanged",
			seed:        true,
			seedAmount:  500_000,
			debit:       1_000_000,
			wantErr:     true,
			wantBalance: 500_000,
		},
		{
			name:    "missing_holding_treated_as_insufficient",
			seed:    false,
			debit:   1_000_000,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			db, cleanup := pgtestutil.NewTestDB(t)
			defer cleanup()

			const player = ledger.PlayerID("alice")
			const mint = tokenledger.Mint("JUNK")

			if tt.seed {
				seedHolding(t, db, ledger.Address(player), mint, tt.seedAmount)
			}

			repo := New(db)

			tx, err := db.Begin()
			if err != nil {
				t.Fatalf("begin tx: %v", err)
			}
			defer func() { _ = tx.Rollback() }()

			transferID, err := repo.DebitToVault(tx, player, mint, tt.debit)

			if tt.wantErr {
				if !errors.Is(err, tokenledger.ErrInsufficientTokens) {
					t.Fatalf("want ErrInsufficientTokens, got %v", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("debit to vault: %v", err)
			}
			if transferID == "" {
				t.Fatalf("expected a transfer id")
			}
			if err := tx.Commit(); err != nil {
				t.Fatalf("commit: %v", err)
			}

			if got := holdingAmount(t, db, ledger.Address(player), mint); got != tt.wantBalance {
				t.Fatalf("player holding: want %d, got %d", tt.wantBalance, got)
			}
		})
	}
}

func TestTokenLedger_DebitToVault_JournalsTransfer(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	const player = ledger.PlayerID("bob")
	const mint = tokenledger.Mint("JUNK")

	seedHolding(t, db, ledger.Address(player), mint, 2_000_000)

	vaultBefore := holdingAmount(t, db, ledger.VaultAddress, mint)

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin tx: %v", err)
	}

	transferID, err := New(db).DebitToVault(tx, player, mint, 1_000_000)
	if err != nil {
		t.Fatalf("debit to vault: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}

	if got := holdingAmount(t, db, ledger.VaultAddress, mint); got != vaultBefore+1_000_000 {
		t.Fatalf("vault holding: want %d, got %d", vaultBefore+1_000_000, got)
	}

	var from, to, jMint string
	var amount int64
	err = db.QueryRow(`
		SELECT from_address, to_address, mint, amount FROM token_transfers WHERE id = $1
	`, transferID).Scan(&from, &to, &jMint, &amount)
	if err != nil {
		t.Fatalf("read journal row: %v", err)
	}
	if from != "bob" || to != string(ledger.VaultAddress) || jMint != "JUNK" || amount != 1_000_000 {
		t.Fatalf("journal mismatch: from=%s to=%s mint=%s amount=%d", from, to, jMint, amount)
	}
}

func TestTokenLedger_CreditFromVault_RequiresAuthority(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin tx: %v", err)
	}
	defer func() { _ = tx.Rollback() }()

	// Zero-value authority must be rejected before any rows move.
	var noAuth tokenledger.VaultAuthority

	_, err = New(db).CreditFromVault(tx, noAuth, "alice", "TRASHCOIN", 1_000_000)
	if !errors.Is(err, ledger.ErrUnauthorized) {
		t.Fatalf("want ErrUnauthorized, got %v", err)
	}
}

func TestTokenLedger_CreditFromVault_MovesFromSeededVault(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	const player = ledger.PlayerID("carol")
	const mint = tokenledger.Mint("TRASHCOIN")

	// The vault TRASHCOIN holding is seeded by the init migration.
	vaultBefore := holdingAmount(t, db, ledger.VaultAddress, mint)
	if vaultBefore <= 0 {
		t.Fatalf("expected seeded vault holding, got %d", vaultBefore)
	}

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin tx: %v", err)
	}

	transferID, err := New(db).CreditFromVault(tx, tokenledger.NewVaultAuthority(), player, mint, 5_000_000)
	if err != nil {
		t.Fatalf("credit from vault: %v", err)
	}
	if transferID == "" {
		t.Fatalf("expected a transfer id")
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}

	if got := holdingAmount(t, db, ledger.VaultAddress, mint); got != vaultBefore-5_000_000 {
		t.Fatalf("vault holding: want %d, got %d", vaultBefore-5_000_000, got)
	}
	if got := holdingAmount(t, db, ledger.Address(player), mint); got != 5_000_000 {
		t.Fatalf("player holding: want 5000000, got %d", got)
	}
}
