package metadata_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sudhikumaran/ripple-ai/pkg/metadata"
	pkgredis "github.com/Sudhikumaran/ripple-ai/pkg/redis"
)

func TestOpen(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		t.Parallel()
		b, err := metadata.Open(ctx, metadata.Config{Backend: metadata.BackendMemory}, metadata.Connections{})
		require.NoError(t, err)
		assert.Equal(t, metadata.BackendMemory, b.Name)
		assert.Nil(t, b.Healthcheck)
		assert.NoError(t, b.Close(ctx))
	})

	t.Run("redis", func(t *testing.T) {
		t.Parallel()
		mr := miniredis.RunT(t)
		b, err := metadata.Open(ctx, metadata.Config{Backend: metadata.BackendRedis, RedisPrefix: "t:"}, metadata.Connections{
			Redis: pkgredis.Config{
				ConnectionURL:  "redis://" + mr.Addr(),
				RetryAttempts:  1,
				RetryInterval:  time.Millisecond,
				ConnectTimeout: time.Second,
			},
		})
		require.NoError(t, err)
		t.Cleanup(func() { _ = b.Close(ctx) })

		require.NotNil(t, b.Healthcheck)
		assert.NoError(t, b.Healthcheck(ctx))
		_, ok := b.Store.(metadata.Incrementer)
		assert.True(t, ok)
	})

	t.Run("clerk without key", func(t *testing.T) {
		t.Parallel()
		_, err := metadata.Open(ctx, metadata.Config{Backend: metadata.BackendClerk}, metadata.Connections{})
		assert.ErrorIs(t, err, metadata.ErrMissingClerkKey)
	})

	t.Run("unknown", func(t *testing.T) {
		t.Parallel()
		_, err := metadata.Open(ctx, metadata.Config{Backend: "dynamo"}, metadata.Connections{})
		assert.ErrorIs(t, err, metadata.ErrUnknownBackend)
	})
}
