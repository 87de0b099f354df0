package echoapi

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_memorySessionStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySessionStore(time.Hour).(*memorySessionStore)

	t.Run("create and get", func(t *testing.T) {
		token, err := store.Create(ctx, "grace.otieno@lecturer.goldworth.com")
		require.NoError(t, err)
		require.NotEmpty(t, token)

		email, err := store.Get(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, "grace.otieno@lecturer.goldworth.com", email)
	})

	t.Run("unknown token", func(t *testing.T) {
		_, err := store.Get(ctx, "nope")
		assert.Equal(t, errSessionNotFound, err)
	})

	t.Run("expired session is dropped", func(t *testing.T) {
		token, err := store.Create(ctx, "miriam.kariuki@family.goldworth.com")
		require.NoError(t, err)

		store.mutex.Lock()
		sess := store.sessions[token]
		sess.expiresAt = time.Now().Add(-time.Minute)
		store.sessions[token] = sess
		store.mutex.Unlock()

		_, err = store.Get(ctx, token)
		assert.Equal(t, errSessionNotFound, err)

		// a second hit fails the same way; the entry is gone
		_, err = store.Get(ctx, token)
		assert.Equal(t, errSessionNotFound, err)
	})

	t.Run("get slides the idle timeout", func(t *testing.T) {
		token, err := store.Create(ctx, "brian.kariuki@student.goldworth.com")
		require.NoError(t, err)

		store.mutex.Lock()
		sess := store.sessions[token]
		sess.expiresAt = time.Now().Add(time.Second)
		store.sessions[token] = sess
		store.mutex.Unlock()

		_, err = store.Get(ctx, token)
		require.NoError(t, err)

		store.mutex.Lock()
		slid := store.sessions[token].expiresAt
		store.mutex.Unlock()
		assert.True(t, slid.After(time.Now().Add(30*time.Minute)))
	})

	t.Run("delete", func(t *testing.T) {
		token, err := store.Create(ctx, "alice.wambui@student.goldworth.com")
		require.NoError(t, err)

		require.NoError(t, store.Delete(ctx, token))
		assert.Equal(t, errSessionNotFound, store.Delete(ctx, token))

		_, err = store.Get(ctx, token)
		assert.Equal(t, errSessionNotFound, err)
	})
}
