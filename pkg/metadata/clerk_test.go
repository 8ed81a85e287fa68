package metadata_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sudhikumaran/ripple-ai/pkg/metadata"
)

func TestNewClerkStore(t *testing.T) {
	t.Parallel()
	_, err := metadata.NewClerkStore("")
	assert.ErrorIs(t, err, metadata.ErrMissingClerkKey)
}

func TestClerkStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var patched map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer sk_test", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		path := strings.TrimPrefix(r.URL.Path, "/v1")
		switch {
		case r.Method == http.MethodGet && path == "/users/user_1":
			_, _ = w.Write([]byte(`{"object":"user","id":"user_1","private_metadata":{"free_usage":4},"public_metadata":{"plan":"Pro"}}`))
		case r.Method == http.MethodPatch && path == "/users/user_1/metadata":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&patched))
			_, _ = w.Write([]byte(`{"object":"user","id":"user_1"}`))
		case path == "/users/broken":
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"errors":[{"code":"internal_clerk_error","message":"Oops"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"errors":[{"code":"resource_not_found","message":"not found"}]}`))
		}
	}))
	t.Cleanup(srv.Close)

	s, err := metadata.NewClerkStore("sk_test", metadata.WithClerkBaseURL(srv.URL))
	require.NoError(t, err)

	t.Run("get", func(t *testing.T) {
		a, err := s.Get(ctx, "user_1")
		require.NoError(t, err)
		assert.Equal(t, int64(4), metadata.Counter(a.Private["free_usage"]))
		assert.Equal(t, "Pro", a.Public["plan"])
	})

	t.Run("update sends only changed fields", func(t *testing.T) {
		require.NoError(t, s.UpdatePrivate(ctx, "user_1", map[string]any{"free_usage": 0}))
		assert.Equal(t, map[string]any{"private_metadata": map[string]any{"free_usage": float64(0)}}, patched)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := s.Get(ctx, "ghost")
		assert.ErrorIs(t, err, metadata.ErrLookupFailed)
		assert.ErrorIs(t, err, metadata.ErrAccountNotFound)
	})

	t.Run("server error", func(t *testing.T) {
		_, err := s.Get(ctx, "broken")
		assert.ErrorIs(t, err, metadata.ErrUnexpectedStatus)
	})
}
