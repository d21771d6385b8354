package ledger

import (
	"errors"
	"math"
	"testing"
	"time"
)

var t0 = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestDeriveAddress_DeterministicPerPlayer(t *testing.T) {
	t.Parallel()

	a1, n1 := DeriveAddress("alice")
	a2, n2 := DeriveAddress("alice")
	b1, _ := DeriveAddress("bob")

	if a1 != a2 || n1 != n2 {
		t.Fatalf("derivation not deterministic: (%s,%d) vs (%s,%d)", a1, n1, a2, n2)
	}
	if a1 == b1 {
		t.Fatalf("different players derived the same address: %s", a1)
	}
	if !VerifyAddress("alice", a1, n1) {
		t.Fatalf("verify rejected a correctly derived address")
	}
	if VerifyAddress("bob", a1, n1) {
		t.Fatalf("verify accepted an address derived for another player")
	}
}

func TestNewAccount_Defaults(t *testing.T) {
	t.Parallel()

	acct := NewAccount("alice", 100, t0)

	if acct.Score != 0 || acct.TotalRewardEvents != 0 || acct.RareRewardEvents != 0 {
		t.Fatalf("fresh account has nonzero counters: %+v", acct)
	}
	if acct.Balance != 100 {
		t.Fatalf("starting balance: want 100, got %d", acct.Balance)
	}
	if acct.NetProfit != 0 {
		t.Fatalf("starting net profit: want 0, got %d", acct.NetProfit)
	}
	if !acct.CreatedAt.Equal(t0) || !acct.LastActionAt.Equal(t0) {
		t.Fatalf("timestamps not set from clock: %+v", acct)
	}
	if !VerifyAddress(acct.Owner, acct.Address, acct.Nonce) {
		t.Fatalf("new account does not verify against its own derivation")
	}
}

func TestRecordCollection_Table(t *testing.T) {
	t.Parallel()

	maxUint64 := uint64(math.MaxUint64)

	tests := []struct {
		name        string
		balance     uint64
		amount      uint64
		at          time.Time
		wantErr     error
		wantBalance uint64
		wantProfit  int64
	}{
		{
			name:        "credits_amount_and_recomputes_profit",
			balance:     100,
			amount:      10,
			at:          t0.Add(2 * time.Second),
			wantBalance: 110,
			wantProfit:  10,
		},
		{
			name:    "zero_amount_rejected",
			balance: 100,
			amount:  0,
			at:      t0.Add(2 * time.Second),
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "same_second_rate_limited",
			balance: 100,
			amount:  10,
			at:      t0,
			wantErr: ErrTooManyRequests,
		},
		{
			name:        "profit_clamps_at_zero_below_baseline",
			balance:     20,
			amount:      30,
			at:          t0.Add(2 * time.Second),
			wantBalance: 50,
			wantProfit:  0,
		},
		{
			name:        "balance_saturates_at_max",
			balance:     math.MaxUint64 - 1,
			amount:      10,
			at:          t0.Add(2 * time.Second),
			wantBalance: math.MaxUint64,
			wantProfit:  int64(maxUint64 - currencyProfitBaseline), // negative after the int64 conversion
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			acct := NewAccount("alice", tt.balance, t0)

			err := acct.RecordCollection(tt.amount, tt.at)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("want %v, got %v", tt.wantErr, err)
				}
				if acct.Balance != tt.balance {
					t.Fatalf("failed collection mutated balance: %d -> %d", tt.balance, acct.Balance)
				}
				if acct.TotalRewardEvents != 0 {
					t.Fatalf("failed collection bumped counter")
				}

				return
			}

			if err != nil {
				t.Fatalf("record collection: %v", err)
			}
			if acct.Balance != tt.wantBalance {
				t.Fatalf("balance: want %d, got %d", tt.wantBalance, acct.Balance)
			}
			if acct.NetProfit != tt.wantProfit {
				t.Fatalf("net profit: want %d, got %d", tt.wantProfit, acct.NetProfit)
			}
			if acct.TotalRewardEvents != 1 {
				t.Fatalf("total reward events: want 1, got %d", acct.TotalRewardEvents)
			}
			if !acct.LastActionAt.Equal(tt.at) {
				t.Fatalf("last action not advanced")
			}
		})
	}
}

func TestRecordCollection_BackToBackSeconds(t *testing.T) {
	t.Parallel()

	acct := NewAccount("alice", 100, t0)

	// Two calls with identical timestamps: second must fail.
	if err := acct.RecordCollection(10, t0.Add(2*time.Second)); err != nil {
		t.Fatalf("first collection: %v", err)
	}
	err := acct.RecordCollection(5, t0.Add(2*time.Second))
	if !errors.Is(err, ErrTooManyRequests) {
		t.Fatalf("same-second collection: want ErrTooManyRequests, got %v", err)
	}
	if acct.Balance != 110 {
		t.Fatalf("balance after rejected collection: want 110, got %d", acct.Balance)
	}

	// One second apart: both succeed.
	if err := acct.RecordCollection(5, t0.Add(3*time.Second)); err != nil {
		t.Fatalf("collection one second later: %v", err)
	}
	if acct.Balance != 115 || acct.TotalRewardEvents != 2 {
		t.Fatalf("after second collection: balance=%d events=%d", acct.Balance, acct.TotalRewardEvents)
	}
}

func TestCollectReward_OrdinaryAndRare(t *testing.T) {
	t.Parallel()

	acct := NewAccount("alice", 100, t0)

	reward := acct.CollectReward(false, t0.Add(time.Second))
	if reward != OrdinaryReward {
		t.Fatalf("ordinary reward: want %d, got %d", OrdinaryReward, reward)
	}
	if acct.Score != 1 || acct.Balance != 101 || acct.NetProfit != 1 {
		t.Fatalf("after ordinary: score=%d balance=%d profit=%d", acct.Score, acct.Balance, acct.NetProfit)
	}
	if acct.TotalRewardEvents != 1 || acct.RareRewardEvents != 0 {
		t.Fatalf("ordinary counters: total=%d rare=%d", acct.TotalRewardEvents, acct.RareRewardEvents)
	}

	reward = acct.CollectReward(true, t0.Add(2*time.Second))
	if reward != RareReward {
		t.Fatalf("rare reward: want %d, got %d", RareReward, reward)
	}
	if acct.Score != 6 || acct.Balance != 106 || acct.NetProfit != 6 {
		t.Fatalf("after rare: score=%d balance=%d profit=%d", acct.Score, acct.Balance, acct.NetProfit)
	}
	if acct.TotalRewardEvents != 2 || acct.RareRewardEvents != 1 {
		t.Fatalf("rare counters: total=%d rare=%d", acct.TotalRewardEvents, acct.RareRewardEvents)
	}
}

func TestSpend_SaturatesAndTracksProfit(t *testing.T) {
	t.Parallel()

	acct := NewAccount("alice", 30, t0)

	acct.Spend(BumpCost, t0.Add(time.Second))

	if acct.Balance != 0 {
		t.Fatalf("balance must clamp at zero, got %d", acct.Balance)
	}
	if acct.NetProfit != -BumpCost {
		t.Fatalf("net profit tracks full cost past the floor: want %d, got %d", -BumpCost, acct.NetProfit)
	}
}

func TestWithdraw_Table(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		balance uint64
		amount  uint64
		wantErr error
	}{
		{name: "exceeds_balance", balance: 110, amount: 200, wantErr: ErrInsufficientBalance},
		{name: "zero_amount", balance: 110, amount: 0, wantErr: ErrInvalidAmount},
		{name: "partial", balance: 110, amount: 50},
		{name: "exact_to_zero", balance: 110, amount: 110},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			acct := NewAccount("alice", tt.balance, t0)

			err := acct.CheckWithdraw(tt.amount)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("want %v, got %v", tt.wantErr, err)
				}
				if acct.Balance != tt.balance {
					t.Fatalf("rejected withdraw mutated balance")
				}

				return
			}

			if err != nil {
				t.Fatalf("check withdraw: %v", err)
			}

			acct.Withdraw(tt.amount, t0.Add(time.Second))

			if acct.Balance != tt.balance-tt.amount {
				t.Fatalf("balance: want %d, got %d", tt.balance-tt.amount, acct.Balance)
			}
		})
	}
}

func TestDepositThenWithdraw_RestoresBalance(t *testing.T) {
	t.Parallel()

	acct := NewAccount("alice", 75, t0)

	if err := acct.Deposit(40, t0.Add(time.Second)); err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if acct.Balance != 115 {
		t.Fatalf("after deposit: want 115, got %d", acct.Balance)
	}

	if err := acct.CheckWithdraw(40); err != nil {
		t.Fatalf("check withdraw: %v", err)
	}
	acct.Withdraw(40, t0.Add(2*time.Second))

	if acct.Balance != 75 {
		t.Fatalf("deposit+withdraw must restore balance exactly: want 75, got %d", acct.Balance)
	}
}

func TestReset_FixedDefaults(t *testing.T) {
	t.Parallel()

	for _, startBalance := range []uint64{0, 42, 100, 10_000} {
		acct := NewAccount("alice", startBalance, t0)
		acct.CollectReward(true, t0.Add(time.Second))
		acct.RecordScore(9_000, t0.Add(2*time.Second))

		acct.Reset(t0.Add(3 * time.Second))

		if acct.Balance != ResetBalance {
			t.Fatalf("start=%d: reset balance want %d, got %d", startBalance, ResetBalance, acct.Balance)
		}
		if acct.Score != 0 || acct.NetProfit != 0 || acct.TotalRewardEvents != 0 || acct.RareRewardEvents != 0 {
			t.Fatalf("start=%d: reset left residue: %+v", startBalance, acct)
		}
		if !acct.CreatedAt.Equal(t0) {
			t.Fatalf("reset must not touch CreatedAt")
		}
		if acct.Owner != "alice" {
			t.Fatalf("reset must not touch Owner")
		}
	}
}

func TestLastActionAt_Monotone(t *testing.T) {
	t.Parallel()

	acct := NewAccount("alice", 100, t0)

	// A clock reading behind the stored timestamp must not rewind it.
	acct.RecordScore(10, t0.Add(-time.Minute))

	if !acct.LastActionAt.Equal(t0) {
		t.Fatalf("last action rewound to %v", acct.LastActionAt)
	}
}
