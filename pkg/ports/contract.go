package ports

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunClosureStoreContract runs a suite of tests to verify that a ClosureStore
// implementation adheres to the defined interface contract.
// The store must be empty when passed in.
func RunClosureStoreContract(t *testing.T, store ClosureStore) {
	ctx := context.Background()

	t.Run("Empty", func(t *testing.T) {
		closed, err := store.Closed(ctx)
		require.NoError(t, err)
		assert.Empty(t, closed)
	})

	t.Run("Close and List Sorted", func(t *testing.T) {
		require.NoError(t, store.Close(ctx, "e2"))
		require.NoError(t, store.Close(ctx, "e1"))
		require.NoError(t, store.Close(ctx, "e2"), "closing twice should not fail")

		closed, err := store.Closed(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"e1", "e2"}, closed)
	})

	t.Run("Open", func(t *testing.T) {
		require.NoError(t, store.Open(ctx, "e1"))
		require.NoError(t, store.Open(ctx, "never-closed"))

		closed, err := store.Closed(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"e2"}, closed)

		require.NoError(t, store.Open(ctx, "e2"))
	})
}
