// Package redisstream appends game events to a Redis stream.
package redisstream

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pusherlabs/pusher-ledger/internal/events"
)

type Config struct {
	URL    string `env:"REDIS_URL"`
	Stream string `env:"REDIS_EVENT_STREAM" envDefault:"pusher:events"`

	// MaxLen caps the stream with approximate trimming; 0 disables trimming.
	MaxLen int64 `env:"REDIS_EVENT_STREAM_MAXLEN" envDefault:"100000"`

	PoolSize     int `env:"REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConns int `env:"REDIS_MIN_IDLE_CONNS" envDefault:"2"`
}

// Emitter writes events with XADD. Failures are logged and swallowed: the
// stream is a notification channel, not part of the instruction's atomic
// unit of work.
type Emitter struct {
	client *redis.Client
	cfg    Config
}

var _ events.Emitter = (*Emitter)(nil)

func New(cfg Config) (*Emitter, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Emitter{client: client, cfg: cfg}, nil
}

// NewWithClient wraps an existing client (for testing).
func NewWithClient(client *redis.Client, cfg Config) *Emitter {
	return &Emitter{client: client, cfg: cfg}
}

func (e *Emitter) Close() error {
	return e.client.Close()
}

func (e *Emitter) Emit(ctx context.Context, ev events.Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		slog.Error("marshal event", "kind", ev.Kind, "error", err)

		return
	}

	args := &redis.XAddArgs{
		Stream: e.cfg.Stream,
		Values: map[string]any{
			"kind":    string(ev.Kind),
			"player":  string(ev.Player),
			"payload": payload,
		},
	}
	if e.cfg.MaxLen > 0 {
		args.MaxLen = e.cfg.MaxLen
		args.Approx = true
	}

	err = e.client.XAdd(ctx, args).Err()
	if err != nil {
		slog.Error("emit event", "kind", ev.Kind, "player", ev.Player, "error", err)
	}
}
