package ports

import (
	"context"
	"testing"

	"github.com/dkuanyshbaev/ioracle-core/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunCounterStoreContract runs a suite of tests to verify that a CounterStore implementation
// adheres to the defined interface contract. The store must be empty.
func RunCounterStoreContract(t *testing.T, store CounterStore) {
	ctx := context.Background()

	t.Run("Load Empty", func(t *testing.T) {
		_, err := store.Load(ctx)
		assert.ErrorIs(t, err, domain.ErrCounterNotFound)
	})

	t.Run("Save and Load", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, 3), "Save should not return error")

		v, err := store.Load(ctx)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, 3, v)
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, 6))
		require.NoError(t, store.Save(ctx, 0))

		v, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, v, "zero must be stored, not treated as absent")
	})
}
