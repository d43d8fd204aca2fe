package store_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/taskd/pkg/store"
)

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	t.Run("keeps payloads in order", func(t *testing.T) {
		t.Parallel()

		s := store.NewMemoryStore()
		ctx := context.Background()

		require.NoError(t, s.Store(ctx, json.RawMessage(`{"a":1}`)))
		require.NoError(t, s.Store(ctx, json.RawMessage(`null`)))

		assert.Equal(t, 2, s.Len())
		assert.Equal(t, []json.RawMessage{json.RawMessage(`{"a":1}`), json.RawMessage(`null`)}, s.Payloads())
	})

	t.Run("copies the payload", func(t *testing.T) {
		t.Parallel()

		s := store.NewMemoryStore()
		payload := json.RawMessage(`[1,2]`)
		require.NoError(t, s.Store(context.Background(), payload))

		payload[1] = '9'
		assert.Equal(t, json.RawMessage(`[1,2]`), s.Payloads()[0])
	})

	t.Run("closed store rejects writes", func(t *testing.T) {
		t.Parallel()

		s := store.NewMemoryStore()
		require.NoError(t, s.Healthcheck(context.Background()))
		require.NoError(t, s.Close(context.Background()))

		assert.ErrorIs(t, s.Store(context.Background(), json.RawMessage(`1`)), store.ErrStoreClosed)
		assert.ErrorIs(t, s.Healthcheck(context.Background()), store.ErrStoreClosed)
	})

	t.Run("concurrent writes", func(t *testing.T) {
		t.Parallel()

		s := store.NewMemoryStore()
		var wg sync.WaitGroup
		for range 100 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_ = s.Store(context.Background(), json.RawMessage(`{}`))
			}()
		}
		wg.Wait()
		assert.Equal(t, 100, s.Len())
	})
}
