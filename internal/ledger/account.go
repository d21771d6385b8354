package ledger

import "time"

const (
	// ResetBalance is the fixed balance an account returns to on reset.
	ResetBalance = 100

	// currencyProfitBaseline is the reference balance the currency policy
	// measures net profit against. It is a fixed constant, not the account's
	// actual starting balance.
	currencyProfitBaseline = 100

	// OrdinaryReward and RareReward are the token-policy collection payouts.
	OrdinaryReward = 1
	RareReward     = 5

	// DropCost and BumpCost are the token-policy machine action prices in
	// whole in-game units.
	DropCost = 1
	BumpCost = 50

	// rateLimitSeconds is the minimum whole-second gap between rate-limited
	// actions on the same account.
	rateLimitSeconds = 1
)

// Account is the single persistent game-economy record for one player.
// All arithmetic on it saturates; Balance never goes negative and counters
// never wrap.
type Account struct {
	Address           Address
	Owner             PlayerID
	Nonce             uint8
	Score             uint64
	Balance           uint64
	NetProfit         int64
	TotalRewardEvents uint64
	RareRewardEvents  uint64
	CreatedAt         time.Time
	LastActionAt      time.Time
}

// NewAccount builds the initial record for a player. The address and nonce
// are derived, never supplied.
func NewAccount(owner PlayerID, startingBalance uint64, now time.Time) *Account {
	addr, nonce := DeriveAddress(owner)

	return &Account{
		Address:      addr,
		Owner:        owner,
		Nonce:        nonce,
		Balance:      startingBalance,
		CreatedAt:    now,
		LastActionAt: now,
	}
}

func satAdd(a, b uint64) uint64 {
	if a+b < a {
		return ^uint64(0)
	}

	return a + b
}

func satSub(a, b uint64) uint64 {
	if b > a {
		return 0
	}

	return a - b
}

// rateLimited reports whether now is still within the minimum gap since the
// last action. Granularity is whole seconds, matching the clock source.
func (a *Account) rateLimited(now time.Time) bool {
	return now.Unix()-a.LastActionAt.Unix() < rateLimitSeconds
}

// touch advances LastActionAt, keeping it monotonically non-decreasing even
// if the clock source reads slightly behind the stored value.
func (a *Account) touch(now time.Time) {
	if now.After(a.LastActionAt) {
		a.LastActionAt = now
	}
}

// RecordCollection applies the currency-policy collection: credit the raw
// collected amount and recompute net profit against the fixed baseline.
// This is the rate-limited defense against rapid-fire submission.
func (a *Account) RecordCollection(amount uint64, now time.Time) error {
	if amount == 0 {
		return ErrInvalidAmount
	}
	if a.rateLimited(now) {
		return ErrTooManyRequests
	}

	a.Balance = satAdd(a.Balance, amount)
	a.TotalRewardEvents = satAdd(a.TotalRewardEvents, 1)
	a.NetProfit = int64(satSub(a.Balance, currencyProfitBaseline))
	a.touch(now)

	return nil
}

// CollectReward applies the token-policy collection and returns the reward
// credited. Rare collections pay RareReward and bump the rare counter.
func (a *Account) CollectReward(isRare bool, now time.Time) uint64 {
	reward := uint64(OrdinaryReward)
	if isRare {
		reward = RareReward
	}

	a.Score = satAdd(a.Score, reward)
	a.Balance = satAdd(a.Balance, reward)
	a.NetProfit += int64(reward)
	a.TotalRewardEvents = satAdd(a.TotalRewardEvents, 1)

	if isRare {
		a.RareRewardEvents = satAdd(a.RareRewardEvents, 1)
	}

	a.touch(now)

	return reward
}

// RecordScore overwrites the score with a caller-supplied absolute value.
// Named precondition, deliberately absent: no monotonicity or plausibility
// check — the handler trusts whatever the authenticated owner reports.
func (a *Account) RecordScore(score uint64, now time.Time) {
	a.Score = score
	a.touch(now)
}

// CheckRate is the explicit precondition for rate-limited spend actions.
// It must run before the external debit so a throttled instruction aborts
// without moving any value.
func (a *Account) CheckRate(now time.Time) error {
	if a.rateLimited(now) {
		return ErrTooManyRequests
	}

	return nil
}

// Spend applies the local side of a cost-paying action after the external
// token debit has already succeeded.
func (a *Account) Spend(cost uint64, now time.Time) {
	a.Balance = satSub(a.Balance, cost)
	a.NetProfit -= int64(cost)
	a.touch(now)
}

// Deposit credits a native-value pay-in after the transfer to the program
// account succeeded.
func (a *Account) Deposit(amount uint64, now time.Time) error {
	if amount == 0 {
		return ErrInvalidAmount
	}

	a.Balance = satAdd(a.Balance, amount)
	a.touch(now)

	return nil
}

// CheckWithdraw validates a withdrawal request against the recorded balance.
// It runs before the native transfer is driven.
func (a *Account) CheckWithdraw(amount uint64) error {
	if amount == 0 {
		return ErrInvalidAmount
	}
	if amount > a.Balance {
		return ErrInsufficientBalance
	}

	return nil
}

// Withdraw applies the local side of a pay-out after the native transfer
// succeeded.
func (a *Account) Withdraw(amount uint64, now time.Time) {
	a.Balance = satSub(a.Balance, amount)
	a.touch(now)
}

// Reset returns counters to defaults without removing the record. Owner and
// CreatedAt are untouched.
func (a *Account) Reset(now time.Time) {
	a.Score = 0
	a.Balance = ResetBalance
	a.NetProfit = 0
	a.TotalRewardEvents = 0
	a.RareRewardEvents = 0
	a.touch(now)
}
