package ledger

import "errors"

var (
	// ErrInvalidAmount is returned where a positive quantity is required and
	// the caller supplied zero.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInsufficientBalance is returned when a withdrawal exceeds the
	// recorded balance.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrTooManyRequests is returned when a rate-limited instruction arrives
	// before a full time unit has elapsed since the last action.
	ErrTooManyRequests = errors.New("too many requests")

	// ErrUnauthorized is returned when the caller does not own the targeted
	// account or lacks the required signing capability.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUnsupportedByPolicy is returned when an instruction belongs to the
	// economic policy variant that is not active.
	ErrUnsupportedByPolicy = errors.New("instruction not supported by active policy")
)
