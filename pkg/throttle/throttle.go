// Package throttle limits how often the pumps may be driven between refills.
//
// The counter lives in a ports.CounterStore. Within one process Increment is
// never called concurrently, so there is no write race. When several processes
// share the same store the load/save pair can interleave and lose an update;
// configure WithLocker to serialize it.
package throttle

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dkuanyshbaev/ioracle-core/internal/logging"
	"github.com/dkuanyshbaev/ioracle-core/pkg/domain"
	"github.com/dkuanyshbaev/ioracle-core/pkg/ports"
)

// DefaultLimit is the highest value ever stored.
const DefaultLimit = 6

// Throttle is the persisted usage counter.
type Throttle struct {
	store  ports.CounterStore
	limit  int
	logger *slog.Logger
	hooks  domain.LifecycleHooks

	locker  ports.Locker
	lockKey string
	lockTTL time.Duration
}

// Option configures the Throttle.
type Option func(*Throttle)

// WithLimit overrides DefaultLimit.
func WithLimit(limit int) Option {
	return func(t *Throttle) {
		t.limit = limit
	}
}

// WithLogger configures a logger for the Throttle.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Throttle) {
		t.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(t *Throttle) {
		t.hooks = hooks
	}
}

// WithLocker serializes Increment across processes sharing the store.
func WithLocker(locker ports.Locker, key string, ttl time.Duration) Option {
	return func(t *Throttle) {
		t.locker = locker
		t.lockKey = key
		t.lockTTL = ttl
	}
}

// New creates a Throttle backed by store.
func New(store ports.CounterStore, opts ...Option) *Throttle {
	t := &Throttle{
		store:   store,
		limit:   DefaultLimit,
		logger:  logging.NewNop(),
		lockKey: "usage",
		lockTTL: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Increment adds one use. When the result would exceed the limit it raises an
// alert, stores 0 and returns (0, true). Storage failures are logged and absorbed:
// a missing or unreadable value counts as 0.
func (t *Throttle) Increment(ctx context.Context) (value int, alert bool) {
	if t.locker != nil {
		lockCtx, cancel := context.WithTimeout(ctx, t.lockTTL)
		unlock, err := t.locker.Lock(lockCtx, t.lockKey, t.lockTTL)
		cancel()
		if err != nil {
			t.logger.Warn("Usage counter lock unavailable, updating without it", "err", err)
		} else {
			defer func() {
				if err := unlock(ctx); err != nil {
					t.logger.Warn("Failed to release usage counter lock (will expire via TTL)", "err", err)
				}
			}()
		}
	}

	stored, err := t.store.Load(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrCounterNotFound) {
			t.logger.Warn("Usage counter unreadable, treating as 0", "err", err)
		}
		stored = 0
	}

	value = stored + 1
	if value > t.limit {
		value, alert = 0, true
		t.logger.Warn("Usage limit exceeded, counter reset", "limit", t.limit)
	}

	if err := t.store.Save(ctx, value); err != nil {
		t.logger.Warn("Failed to save usage counter", "value", value, "err", err)
	}

	t.logger.Debug("Usage counter incremented", "value", value, "alert", alert)
	if t.hooks.OnThrottle != nil {
		t.hooks.OnThrottle(ctx, &domain.ThrottleEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventThrottle},
			Value:     value,
			Alert:     alert,
		})
	}
	return value, alert
}
