// Package events defines the append-only notification contracts emitted by
// instruction handlers. Events are fire-and-forget: the program never reads
// them back, and emission failure never fails an instruction.
package events

import (
	"context"
	"time"

	"github.com/pusherlabs/pusher-ledger/internal/ledger"
)

type Kind string

const (
	KindAccountInitialized Kind = "account-initialized"
	KindCollected          Kind = "collected"
	KindScoreRecorded      Kind = "score-recorded"
	KindSpent              Kind = "spent"
	KindDeposited          Kind = "deposited"
	KindWithdrawn          Kind = "withdrawn"
	KindRareTokenAwarded   Kind = "rare-token-awarded"
	KindReset              Kind = "reset"
)

// Event is the flat notification record. Fields that a given kind does not
// use stay zero and are omitted from the wire form.
type Event struct {
	ID         string          `json:"id"`
	Kind       Kind            `json:"kind"`
	Player     ledger.PlayerID `json:"player"`
	Amount     uint64          `json:"amount,omitempty"`
	IsRare     bool            `json:"isRare,omitempty"`
	NewBalance uint64          `json:"newBalance,omitempty"`
	Score      uint64          `json:"score,omitempty"`
	TransferID string          `json:"transferId,omitempty"`
	Timestamp  time.Time       `json:"timestamp"`
}

// Emitter appends events to the notification channel. Implementations must
// not block instruction handling on downstream failures.
type Emitter interface {
	Emit(ctx context.Context, e Event)
}

// Nop discards all events.
type Nop struct{}

func (Nop) Emit(context.Context, Event) {}

// Recorder keeps emitted events in memory for assertions in tests.
type Recorder struct {
	Events []Event
}

func (r *Recorder) Emit(_ context.Context, e Event) {
	r.Events = append(r.Events, e)
}

// Last returns the most recently emitted event, or a zero event.
func (r *Recorder) Last() Event {
	if len(r.Events) == 0 {
		return Event{}
	}

	return r.Events[len(r.Events)-1]
}
