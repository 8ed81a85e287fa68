package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sudhikumaran/ripple-ai/pkg/entitlement"
	"github.com/Sudhikumaran/ripple-ai/pkg/identity"
	"github.com/Sudhikumaran/ripple-ai/pkg/metadata"
	"github.com/Sudhikumaran/ripple-ai/pkg/quota"
)

func memoryApp(t *testing.T, store metadata.Store, withKey bool) wireFunc {
	t.Helper()
	return func(context.Context) (*app, error) {
		a := &app{
			store:    store,
			resolver: entitlement.NewResolver(store),
			gate:     quota.NewGate(quota.DefaultFreeLimit),
			close:    func(context.Context) error { return nil },
		}
		if withKey {
			v, err := identity.NewVerifier(identity.Config{Secret: "s"})
			require.NoError(t, err)
			a.verifier = v
		}
		return a, nil
	}
}

func executeCLI(t *testing.T, wire wireFunc, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(wire)
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func counter(t *testing.T, store *metadata.MemoryStore, id string) int64 {
	t.Helper()
	a, err := store.Get(context.Background(), id)
	require.NoError(t, err)
	return metadata.Counter(a.Private[metadata.FreeUsageKey])
}

func TestEntitlementShow(t *testing.T) {
	t.Parallel()

	t.Run("free account", func(t *testing.T) {
		t.Parallel()
		store := metadata.NewMemoryStore()
		store.Put(metadata.Account{ID: "u1", Private: map[string]any{"free_usage": 4}})

		out, err := executeCLI(t, memoryApp(t, store, false), "entitlement", "show", "u1")
		require.NoError(t, err)
		assert.Contains(t, out, "tier:       free")
		assert.Contains(t, out, "remaining:  6")
		assert.Contains(t, out, "used:       40%")
	})

	t.Run("premium account as json", func(t *testing.T) {
		t.Parallel()
		store := metadata.NewMemoryStore()
		store.Put(metadata.Account{
			ID:      "u1",
			Private: map[string]any{"free_usage": 4},
			Public:  map[string]any{"plan": "premium"},
		})

		out, err := executeCLI(t, memoryApp(t, store, false), "entitlement", "show", "u1", "--json")
		require.NoError(t, err)

		var view decisionView
		require.NoError(t, json.Unmarshal([]byte(out), &view))
		assert.Equal(t, "premium", view.Tier)
		assert.Equal(t, quota.Unlimited, view.Limit)
		assert.Equal(t, int64(0), counter(t, store, "u1"))
	})

	t.Run("unknown account starts free", func(t *testing.T) {
		t.Parallel()
		out, err := executeCLI(t, memoryApp(t, metadata.NewMemoryStore(), false), "entitlement", "show", "ghost")
		require.NoError(t, err)
		assert.Contains(t, out, "tier:       free")
		assert.Contains(t, out, "remaining:  10")
	})

	t.Run("account unknown to the identity provider", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"errors":[{"code":"resource_not_found","message":"not found"}]}`))
		}))
		t.Cleanup(srv.Close)
		store, err := metadata.NewClerkStore("sk_test", metadata.WithClerkBaseURL(srv.URL))
		require.NoError(t, err)

		_, err = executeCLI(t, memoryApp(t, store, false), "entitlement", "show", "ghost")
		assert.ErrorIs(t, err, entitlement.ErrLookupFailed)
		assert.ErrorIs(t, err, metadata.ErrAccountNotFound)
	})
}

func TestUsage(t *testing.T) {
	t.Parallel()

	t.Run("set then reset", func(t *testing.T) {
		t.Parallel()
		store := metadata.NewMemoryStore()
		store.Put(metadata.Account{ID: "u1", Private: map[string]any{"free_usage": 2, "keep": "me"}})
		wire := memoryApp(t, store, false)

		out, err := executeCLI(t, wire, "usage", "set", "u1", "9")
		require.NoError(t, err)
		assert.Equal(t, "u1: free usage set to 9\n", out)
		assert.Equal(t, int64(9), counter(t, store, "u1"))

		_, err = executeCLI(t, wire, "usage", "reset", "u1")
		require.NoError(t, err)
		assert.Equal(t, int64(0), counter(t, store, "u1"))

		a, err := store.Get(context.Background(), "u1")
		require.NoError(t, err)
		assert.Equal(t, "me", a.Private["keep"])
	})

	t.Run("rejects non-numeric values", func(t *testing.T) {
		t.Parallel()
		_, err := executeCLI(t, memoryApp(t, metadata.NewMemoryStore(), false), "usage", "set", "u1", "abc")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "non-negative")
	})
}

func TestTokenIssue(t *testing.T) {
	t.Parallel()

	t.Run("issues a verifiable token", func(t *testing.T) {
		t.Parallel()
		out, err := executeCLI(t, memoryApp(t, metadata.NewMemoryStore(), true), "token", "issue", "u1")
		require.NoError(t, err)

		v, err := identity.NewVerifier(identity.Config{Secret: "s"})
		require.NoError(t, err)
		claims, err := v.Verify(strings.TrimSpace(out))
		require.NoError(t, err)
		assert.Equal(t, "u1", claims.Subject)
	})

	t.Run("needs a secret", func(t *testing.T) {
		t.Parallel()
		_, err := executeCLI(t, memoryApp(t, metadata.NewMemoryStore(), false), "token", "issue", "u1")
		assert.ErrorIs(t, err, errNoSigningKey)
	})
}
