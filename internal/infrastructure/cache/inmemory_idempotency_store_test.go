package cache

import (
	"context"
	"testing"
	"time"

	"github.com/costledger/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryIdempotencyStore(t *testing.T) {
	ctx := context.Background()

	t.Run("first claim wins, second loses", func(t *testing.T) {
		store := NewInMemoryIdempotencyStore()
		defer store.Close()

		claimed, err := store.Claim(ctx, "key-1", time.Hour)
		require.NoError(t, err)
		assert.True(t, claimed)

		claimed, err = store.Claim(ctx, "key-1", time.Hour)
		require.NoError(t, err)
		assert.False(t, claimed)
	})

	t.Run("get is nil while claim is unresolved", func(t *testing.T) {
		store := NewInMemoryIdempotencyStore()
		defer store.Close()

		_, err := store.Claim(ctx, "key-1", time.Hour)
		require.NoError(t, err)

		resp, err := store.Get(ctx, "key-1")
		require.NoError(t, err)
		assert.Nil(t, resp)
	})

	t.Run("saved response is returned on get", func(t *testing.T) {
		store := NewInMemoryIdempotencyStore()
		defer store.Close()

		_, err := store.Claim(ctx, "key-1", time.Hour)
		require.NoError(t, err)

		stored := shared.StoredResponse{Status: 201, ContentType: "application/json", Body: []byte(`{"success":true}`)}
		require.NoError(t, store.Save(ctx, "key-1", stored, time.Hour))

		resp, err := store.Get(ctx, "key-1")
		require.NoError(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, 201, resp.Status)
		assert.Equal(t, []byte(`{"success":true}`), resp.Body)
	})

	t.Run("release makes the key claimable again", func(t *testing.T) {
		store := NewInMemoryIdempotencyStore()
		defer store.Close()

		_, err := store.Claim(ctx, "key-1", time.Hour)
		require.NoError(t, err)
		require.NoError(t, store.Release(ctx, "key-1"))

		claimed, err := store.Claim(ctx, "key-1", time.Hour)
		require.NoError(t, err)
		assert.True(t, claimed)
	})

	t.Run("expired claim is claimable again", func(t *testing.T) {
		store := NewInMemoryIdempotencyStore()
		defer store.Close()

		_, err := store.Claim(ctx, "key-1", 10*time.Millisecond)
		require.NoError(t, err)
		time.Sleep(20 * time.Millisecond)

		claimed, err := store.Claim(ctx, "key-1", time.Hour)
		require.NoError(t, err)
		assert.True(t, claimed)
	})
}
