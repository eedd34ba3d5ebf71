package redis_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/dkuanyshbaev/ioracle-core/pkg/adapters/redis"
	"github.com/dkuanyshbaev/ioracle-core/pkg/domain"
	"github.com/dkuanyshbaev/ioracle-core/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisCounterStore_Contract(t *testing.T) {
	_, client := newClient(t)
	ports.RunCounterStoreContract(t, redis.NewFromClient(client))
}

func TestRedisCounterStore_DecimalText(t *testing.T) {
	mr, client := newClient(t)
	store := redis.NewFromClient(client, redis.WithKey("gallery:usage"))

	require.NoError(t, store.Save(context.Background(), 5))

	got, err := mr.Get("gallery:usage")
	require.NoError(t, err)
	assert.Equal(t, "5", got)
}

func TestRedisCounterStore_Malformed(t *testing.T) {
	mr, client := newClient(t)
	require.NoError(t, mr.Set(redis.DefaultKey, "lots"))

	_, err := redis.NewFromClient(client).Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrCounterMalformed)
}

func TestRedisCounterStore_Unreachable(t *testing.T) {
	mr, client := newClient(t)
	mr.Close()

	_, err := redis.NewFromClient(client).Load(context.Background())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrCounterNotFound)
}
