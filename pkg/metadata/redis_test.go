package metadata_test

import (
	"context"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sudhikumaran/ripple-ai/pkg/metadata"
)

func setupRedisStore(t *testing.T) (*metadata.RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return metadata.NewRedisStore(client, "test:"), mr
}

func TestRedisStore_Get(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("decodes json values and keeps raw strings", func(t *testing.T) {
		t.Parallel()
		s, mr := setupRedisStore(t)
		mr.HSet("test:account:user_1:private", "free_usage", "3", "note", "not json")
		mr.HSet("test:account:user_1:public", "plan", `"Pro"`, "tags", `["beta","plus"]`, "hasPremiumPlan", "true")

		a, err := s.Get(ctx, "user_1")
		require.NoError(t, err)
		assert.Equal(t, float64(3), a.Private["free_usage"])
		assert.Equal(t, "not json", a.Private["note"])
		assert.Equal(t, "Pro", a.Public["plan"])
		assert.Equal(t, []any{"beta", "plus"}, a.Public["tags"])
		assert.Equal(t, true, a.Public["hasPremiumPlan"])
	})

	t.Run("unknown account reads empty", func(t *testing.T) {
		t.Parallel()
		s, _ := setupRedisStore(t)
		a, err := s.Get(ctx, "nobody")
		require.NoError(t, err)
		assert.Empty(t, a.Private)
		assert.Empty(t, a.Public)
	})

	t.Run("server down is a lookup failure", func(t *testing.T) {
		t.Parallel()
		s, mr := setupRedisStore(t)
		mr.Close()
		_, err := s.Get(ctx, "user_1")
		assert.ErrorIs(t, err, metadata.ErrLookupFailed)
	})
}

func TestRedisStore_UpdatePrivate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, _ := setupRedisStore(t)

	require.NoError(t, s.UpdatePrivate(ctx, "user_1", map[string]any{"free_usage": 0, "plan": "free"}))
	require.NoError(t, s.UpdatePrivate(ctx, "user_1", map[string]any{"free_usage": 4}))

	a, err := s.Get(ctx, "user_1")
	require.NoError(t, err)
	assert.Equal(t, float64(4), a.Private["free_usage"])
	assert.Equal(t, "free", a.Private["plan"])
}

func TestRedisStore_IncrementPrivate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("starts from stored value", func(t *testing.T) {
		t.Parallel()
		s, mr := setupRedisStore(t)
		mr.HSet("test:account:user_1:private", "free_usage", "7")

		n, err := s.IncrementPrivate(ctx, "user_1", metadata.FreeUsageKey)
		require.NoError(t, err)
		assert.Equal(t, int64(8), n)
	})

	t.Run("quoted and garbage values", func(t *testing.T) {
		t.Parallel()
		s, mr := setupRedisStore(t)
		mr.HSet("test:account:user_1:private", "free_usage", `"5"`)
		mr.HSet("test:account:user_2:private", "free_usage", `"many"`)

		n, err := s.IncrementPrivate(ctx, "user_1", metadata.FreeUsageKey)
		require.NoError(t, err)
		assert.Equal(t, int64(6), n)

		n, err = s.IncrementPrivate(ctx, "user_2", metadata.FreeUsageKey)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})

	t.Run("concurrent increments are not lost", func(t *testing.T) {
		t.Parallel()
		s, _ := setupRedisStore(t)

		const workers = 25
		var wg sync.WaitGroup
		for range workers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := s.IncrementPrivate(ctx, "user_1", metadata.FreeUsageKey)
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		a, err := s.Get(ctx, "user_1")
		require.NoError(t, err)
		assert.Equal(t, int64(workers), metadata.Counter(a.Private["free_usage"]))
	})
}
