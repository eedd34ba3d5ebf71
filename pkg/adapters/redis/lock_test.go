package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/dkuanyshbaev/ioracle-core/pkg/adapters/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisLocker_LockUnlock(t *testing.T) {
	mr, client := newClient(t)
	locker := redis.NewLocker(client, "test:")
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "usage", 5*time.Second)
	require.NoError(t, err)
	assert.True(t, mr.Exists("test:lock:usage"), "Lock key should be set in Redis")

	require.NoError(t, unlock(ctx))
	assert.False(t, mr.Exists("test:lock:usage"), "Lock key should be removed after unlock")
}

func TestRedisLocker_Contention(t *testing.T) {
	mr, client := newClient(t)
	locker1 := redis.NewLocker(client, "test:")
	locker2 := redis.NewLocker(client, "test:")
	ctx := context.Background()

	unlock1, err := locker1.Lock(ctx, "usage", 5*time.Second)
	require.NoError(t, err)

	ctxTimeout, cancel := context.WithTimeout(ctx, 200*time.Millisecond)
	defer cancel()
	_, err = locker2.Lock(ctxTimeout, "usage", 5*time.Second)
	assert.ErrorIs(t, err, redis.ErrLockAcquire)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	require.NoError(t, unlock1(ctx))

	unlock2, err := locker2.Lock(ctx, "usage", 5*time.Second)
	require.NoError(t, err)
	defer unlock2(ctx)
	assert.True(t, mr.Exists("test:lock:usage"))
}

func TestRedisLocker_UnlockKeepsForeignLock(t *testing.T) {
	mr, client := newClient(t)
	locker := redis.NewLocker(client, "test:")
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "usage", 5*time.Second)
	require.NoError(t, err)

	// Lock expired and was taken by another instance.
	require.NoError(t, mr.Set("test:lock:usage", "someone-else"))
	require.NoError(t, unlock(ctx))

	got, err := mr.Get("test:lock:usage")
	require.NoError(t, err)
	assert.Equal(t, "someone-else", got)
}
