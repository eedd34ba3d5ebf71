package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dkuanyshbaev/ioracle-core/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// DefaultKey is the key holding the usage counter.
const DefaultKey = "ioracle:usage"

// CounterStore implements ports.CounterStore using Redis.
// Several installations can point at the same key; pair it with Locker to avoid lost updates.
type CounterStore struct {
	client *backend.Client
	key    string
}

// Option configures the CounterStore.
type Option func(*CounterStore)

// WithKey sets the key holding the counter.
func WithKey(key string) Option {
	return func(s *CounterStore) {
		s.key = key
	}
}

// New creates a new Redis counter store with options.
func New(address, password string, db int, opts ...Option) *CounterStore {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis counter store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *CounterStore {
	store := &CounterStore{
		client: client,
		key:    DefaultKey,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

// Load reads the counter as decimal text.
func (s *CounterStore) Load(ctx context.Context) (int, error) {
	val, err := s.client.Get(ctx, s.key).Result()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return 0, domain.ErrCounterNotFound
		}
		return 0, fmt.Errorf("failed to get from redis: %w", err)
	}

	value, err := strconv.Atoi(val)
	if err != nil || value < 0 {
		return 0, fmt.Errorf("%w: %q at %s", domain.ErrCounterMalformed, val, s.key)
	}
	return value, nil
}

// Save stores the counter as decimal text without expiration.
func (s *CounterStore) Save(ctx context.Context, value int) error {
	if err := s.client.Set(ctx, s.key, strconv.Itoa(value), 0).Err(); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Client returns the underlying client, so a Locker can share the connection.
func (s *CounterStore) Client() *backend.Client {
	return s.client
}

// Close closes the redis client.
func (s *CounterStore) Close() error {
	return s.client.Close()
}
