package entitlement_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sudhikumaran/ripple-ai/pkg/entitlement"
	"github.com/Sudhikumaran/ripple-ai/pkg/metadata"
)

type failingStore struct {
	metadata.Store
	getErr    error
	updateErr error
	updates   int
}

func (s *failingStore) Get(ctx context.Context, id string) (metadata.Account, error) {
	if s.getErr != nil {
		return metadata.Account{}, s.getErr
	}
	return s.Store.Get(ctx, id)
}

func (s *failingStore) UpdatePrivate(ctx context.Context, id string, fields map[string]any) error {
	s.updates++
	if s.updateErr != nil {
		return s.updateErr
	}
	return s.Store.UpdatePrivate(ctx, id, fields)
}

func seed(private, public map[string]any) *metadata.MemoryStore {
	store := metadata.NewMemoryStore()
	store.Put(metadata.Account{ID: "user_1", Private: private, Public: public})
	return store
}

func TestResolver_Resolve(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("free account reports counter", func(t *testing.T) {
		t.Parallel()
		r := entitlement.NewResolver(seed(map[string]any{"free_usage": 7}, nil))

		d, err := r.Resolve(ctx, "user_1")
		require.NoError(t, err)
		assert.Equal(t, entitlement.Decision{Tier: entitlement.Free, RemainingFreeUsage: 7}, d)
		assert.False(t, d.IsPremium())
	})

	t.Run("counter normalization", func(t *testing.T) {
		t.Parallel()
		cases := map[string]struct {
			raw  any
			want int64
		}{
			"missing":     {raw: nil, want: 0},
			"non-numeric": {raw: "lots", want: 0},
			"string":      {raw: "5", want: 5},
			"negative":    {raw: -3, want: 0},
			"float":       {raw: 4.0, want: 4},
		}
		for name, tc := range cases {
			private := map[string]any{}
			if tc.raw != nil {
				private["free_usage"] = tc.raw
			}
			d, err := entitlement.NewResolver(seed(private, nil)).Resolve(ctx, "user_1")
			require.NoError(t, err, name)
			assert.Equal(t, tc.want, d.RemainingFreeUsage, name)
		}
	})

	t.Run("premium resets nonzero counter", func(t *testing.T) {
		t.Parallel()
		store := seed(map[string]any{"free_usage": 5, "keep": "me"}, map[string]any{"plan": "Pro"})
		r := entitlement.NewResolver(store)

		d, err := r.Resolve(ctx, "user_1")
		require.NoError(t, err)
		assert.Equal(t, entitlement.Decision{Tier: entitlement.Premium, RemainingFreeUsage: 0}, d)

		account, err := store.Get(ctx, "user_1")
		require.NoError(t, err)
		assert.Equal(t, int64(0), metadata.Counter(account.Private["free_usage"]))
		assert.Equal(t, "me", account.Private["keep"])
	})

	t.Run("premium with zero counter does not write", func(t *testing.T) {
		t.Parallel()
		store := &failingStore{Store: seed(nil, map[string]any{"hasPremiumPlan": true})}
		d, err := entitlement.NewResolver(store).Resolve(ctx, "user_1")
		require.NoError(t, err)
		assert.True(t, d.IsPremium())
		assert.Zero(t, store.updates)
	})

	t.Run("lookup failure fails closed", func(t *testing.T) {
		t.Parallel()
		store := &failingStore{Store: metadata.NewMemoryStore(), getErr: errors.New("connection refused")}
		_, err := entitlement.NewResolver(store).Resolve(ctx, "user_1")
		assert.ErrorIs(t, err, entitlement.ErrLookupFailed)
	})

	t.Run("reset failure fails closed", func(t *testing.T) {
		t.Parallel()
		store := &failingStore{
			Store:     seed(map[string]any{"free_usage": 3}, map[string]any{"plan": "premium"}),
			updateErr: errors.New("rate limited"),
		}
		_, err := entitlement.NewResolver(store).Resolve(ctx, "user_1")
		assert.ErrorIs(t, err, entitlement.ErrLookupFailed)
	})
}

func TestResolver_Overrides(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("allow list upgrades", func(t *testing.T) {
		t.Parallel()
		r := entitlement.NewResolver(seed(map[string]any{"free_usage": 9}, nil),
			entitlement.WithOverrides(entitlement.Overrides{PremiumAccountIDs: []string{"other", " user_1 "}}))
		d, err := r.Resolve(ctx, "user_1")
		require.NoError(t, err)
		assert.Equal(t, entitlement.Decision{Tier: entitlement.Premium}, d)
	})

	t.Run("force premium upgrades everyone", func(t *testing.T) {
		t.Parallel()
		r := entitlement.NewResolver(seed(nil, nil),
			entitlement.WithOverrides(entitlement.Overrides{ForcePremium: true}))
		d, err := r.Resolve(ctx, "user_1")
		require.NoError(t, err)
		assert.True(t, d.IsPremium())
	})

	t.Run("overrides never downgrade", func(t *testing.T) {
		t.Parallel()
		r := entitlement.NewResolver(seed(nil, map[string]any{"plan": "premium"}),
			entitlement.WithOverrides(entitlement.Overrides{PremiumAccountIDs: []string{"someone_else"}}))
		d, err := r.Resolve(ctx, "user_1")
		require.NoError(t, err)
		assert.True(t, d.IsPremium())
	})

	t.Run("config trims ids", func(t *testing.T) {
		t.Parallel()
		cfg := entitlement.Config{PremiumUserIDs: []string{" a ", "", "b"}}
		assert.Equal(t, []string{"a", "b"}, cfg.Overrides().PremiumAccountIDs)
	})
}

func TestTier_String(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "free", entitlement.Free.String())
	assert.Equal(t, "premium", entitlement.Premium.String())
}
