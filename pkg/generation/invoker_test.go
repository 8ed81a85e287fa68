package generation_test

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sudhikumaran/ripple-ai/core"
	"github.com/Sudhikumaran/ripple-ai/pkg/generation"
)

type fakeAuth struct {
	strategy   generation.Strategy
	configured bool
	text       string
	err        error
	delay      time.Duration
	calls      atomic.Int32
	lastReq    generation.Request
}

func (f *fakeAuth) Strategy() generation.Strategy { return f.strategy }
func (f *fakeAuth) Configured() bool              { return f.configured }

func (f *fakeAuth) Attempt(ctx context.Context, req generation.Request) (string, error) {
	f.calls.Add(1)
	f.lastReq = req
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.text, f.err
}

func serviceAccount(text string, err error) *fakeAuth {
	return &fakeAuth{strategy: generation.StrategyServiceAccount, configured: true, text: text, err: err}
}

func apiKey(text string, err error) *fakeAuth {
	return &fakeAuth{strategy: generation.StrategyAPIKey, configured: true, text: text, err: err}
}

func TestInvoker_Generate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("first strategy success skips the rest", func(t *testing.T) {
		t.Parallel()
		sa, key := serviceAccount("from sa", nil), apiKey("from key", nil)
		inv := generation.NewInvoker([]generation.Authenticator{sa, key})

		res, err := inv.Generate(ctx, "write", 100)
		require.NoError(t, err)
		assert.Equal(t, "from sa", res.Text)
		assert.Equal(t, generation.StrategyServiceAccount, res.Strategy)
		assert.Len(t, res.Attempts, 1)
		assert.Zero(t, key.calls.Load())
	})

	t.Run("fallback to api key", func(t *testing.T) {
		t.Parallel()
		sa := serviceAccount("", &generation.BackendError{StatusCode: http.StatusUnauthorized, Message: "bad token"})
		key := apiKey("from key", nil)
		inv := generation.NewInvoker([]generation.Authenticator{sa, key})

		res, err := inv.Generate(ctx, "write", 100)
		require.NoError(t, err)
		assert.Equal(t, "from key", res.Text)
		require.Len(t, res.Attempts, 2)
		assert.False(t, res.Attempts[0].Succeeded())
		assert.Equal(t, http.StatusUnauthorized, res.Attempts[0].StatusCode)
		assert.Equal(t, generation.StrategyServiceAccount, res.Attempts[0].Strategy)
		assert.True(t, res.Attempts[1].Succeeded())
		assert.Equal(t, generation.StrategyAPIKey, res.Attempts[1].Strategy)
	})

	t.Run("none configured", func(t *testing.T) {
		t.Parallel()
		sa := &fakeAuth{strategy: generation.StrategyServiceAccount}
		key := &fakeAuth{strategy: generation.StrategyAPIKey}
		inv := generation.NewInvoker([]generation.Authenticator{sa, key})

		_, err := inv.Generate(ctx, "write", 100)
		require.ErrorIs(t, err, generation.ErrGenerationUnavailable)

		var ue *generation.UnavailableError
		require.ErrorAs(t, err, &ue)
		assert.Empty(t, ue.Attempts)
		assert.Zero(t, sa.calls.Load())
		assert.Zero(t, key.calls.Load())
	})

	t.Run("all fail", func(t *testing.T) {
		t.Parallel()
		inv := generation.NewInvoker([]generation.Authenticator{
			serviceAccount("", errors.New("dial tcp: refused")),
			apiKey("", &generation.BackendError{StatusCode: 500, Message: "internal"}),
		})

		_, err := inv.Generate(ctx, "write", 100)
		var ue *generation.UnavailableError
		require.ErrorAs(t, err, &ue)
		assert.Equal(t, []generation.Strategy{generation.StrategyServiceAccount, generation.StrategyAPIKey}, ue.Strategies())
		assert.Contains(t, ue.Error(), "service_account")
		assert.Contains(t, ue.Error(), "api_key")
		assert.Equal(t, "AI generation is unavailable, tried: service_account (failed), api_key (status 500)", ue.UserMessage())
	})

	t.Run("empty text is a failure", func(t *testing.T) {
		t.Parallel()
		key := apiKey("from key", nil)
		inv := generation.NewInvoker([]generation.Authenticator{serviceAccount("   ", nil), key})

		res, err := inv.Generate(ctx, "write", 100)
		require.NoError(t, err)
		require.Len(t, res.Attempts, 2)
		assert.ErrorIs(t, res.Attempts[0].Err, generation.ErrEmptyCompletion)
		assert.Equal(t, "from key", res.Text)
	})

	t.Run("unconfigured strategy is not recorded", func(t *testing.T) {
		t.Parallel()
		sa := &fakeAuth{strategy: generation.StrategyServiceAccount}
		inv := generation.NewInvoker([]generation.Authenticator{sa, apiKey("ok", nil)})

		res, err := inv.Generate(ctx, "write", 100)
		require.NoError(t, err)
		assert.Len(t, res.Attempts, 1)
	})

	t.Run("attempt timeout falls through", func(t *testing.T) {
		t.Parallel()
		slow := serviceAccount("late", nil)
		slow.delay = time.Second
		inv := generation.NewInvoker(
			[]generation.Authenticator{slow, apiKey("fast", nil)},
			generation.WithAttemptTimeout(20*time.Millisecond),
		)

		res, err := inv.Generate(ctx, "write", 100)
		require.NoError(t, err)
		assert.Equal(t, "fast", res.Text)
		assert.ErrorIs(t, res.Attempts[0].Err, context.DeadlineExceeded)
	})

	t.Run("empty prompt", func(t *testing.T) {
		t.Parallel()
		key := apiKey("ok", nil)
		_, err := generation.NewInvoker([]generation.Authenticator{key}).Generate(ctx, "  ", 10)
		require.ErrorIs(t, err, generation.ErrEmptyPrompt)
		assert.Zero(t, key.calls.Load())
	})
}

func TestInvoker_Budget(t *testing.T) {
	t.Parallel()

	inv := generation.NewInvoker(nil)
	assert.Equal(t, 2048, inv.Budget(0))
	assert.Equal(t, 2048, inv.Budget(-5))
	assert.Equal(t, 100, inv.Budget(100))
	assert.Equal(t, 2048, inv.Budget(100000))

	key := apiKey("ok", nil)
	_, err := generation.NewInvoker([]generation.Authenticator{key}, generation.WithMaxTokens(512)).
		Generate(context.Background(), "write", 4000)
	require.NoError(t, err)
	assert.Equal(t, 512, key.lastReq.MaxTokens)
}

func TestHTTPError(t *testing.T) {
	t.Parallel()

	err := generation.HTTPError(&generation.UnavailableError{})
	var httpErr core.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusBadGateway, httpErr.Code)
	assert.Equal(t, "AI generation is unavailable: no credentials configured", httpErr.UserMessage())
	assert.ErrorIs(t, err, generation.ErrGenerationUnavailable)

	other := errors.New("x")
	assert.Equal(t, other, generation.HTTPError(other))
}
