// Package storetest holds the behavior every store.Backend must share.
package storetest

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablelog/tablelog-server/internal/store"
)

// RunBackendTests exercises a Backend created fresh for each subtest by newBackend.
func RunBackendTests(t *testing.T, newBackend func(t *testing.T) store.Backend) {
	t.Helper()

	t.Run("get missing key", func(t *testing.T) {
		b := newBackend(t)
		_, err := b.Get(context.Background(), "absent")
		assert.ErrorIs(t, err, store.ErrKeyNotFound)
	})

	t.Run("set then get", func(t *testing.T) {
		b := newBackend(t)
		ctx := context.Background()

		require.NoError(t, b.Set(ctx, "users", []byte(`[{"id":"user-1"}]`)))
		got, err := b.Get(ctx, "users")
		require.NoError(t, err)
		assert.JSONEq(t, `[{"id":"user-1"}]`, string(got))
	})

	t.Run("set overwrites", func(t *testing.T) {
		b := newBackend(t)
		ctx := context.Background()

		require.NoError(t, b.Set(ctx, "currentUserId", []byte("user-1")))
		require.NoError(t, b.Set(ctx, "currentUserId", []byte("user-2")))
		got, err := b.Get(ctx, "currentUserId")
		require.NoError(t, err)
		assert.Equal(t, "user-2", string(got))
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		b := newBackend(t)
		ctx := context.Background()

		require.NoError(t, b.Set(ctx, "restaurants", []byte(`[]`)))
		require.NoError(t, b.Delete(ctx, "restaurants"))
		require.NoError(t, b.Delete(ctx, "restaurants"))
		_, err := b.Get(ctx, "restaurants")
		assert.ErrorIs(t, err, store.ErrKeyNotFound)
	})

	t.Run("cancelled context", func(t *testing.T) {
		b := newBackend(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := b.Get(ctx, "users")
		assert.Error(t, err)
		assert.Error(t, b.Set(ctx, "users", []byte(`[]`)))
	})

	t.Run("ping", func(t *testing.T) {
		b := newBackend(t)
		assert.NoError(t, b.Ping(context.Background()))
	})

	t.Run("concurrent writers on distinct keys", func(t *testing.T) {
		b := newBackend(t)
		ctx := context.Background()

		var wg sync.WaitGroup
		for i := range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				key := fmt.Sprintf("userLists_user-%d", i)
				assert.NoError(t, b.Set(ctx, key, []byte(`[]`)))
			}()
		}
		wg.Wait()

		for i := range 8 {
			_, err := b.Get(ctx, fmt.Sprintf("userLists_user-%d", i))
			assert.NoError(t, err)
		}
	})
}
