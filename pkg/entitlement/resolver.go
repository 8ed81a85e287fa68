package entitlement

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"

	"github.com/Sudhikumaran/ripple-ai/pkg/logger"
	"github.com/Sudhikumaran/ripple-ai/pkg/metadata"
)

// Tier is the caller's plan level.
type Tier int

const (
	Free Tier = iota
	Premium
)

func (t Tier) String() string {
	if t == Premium {
		return "premium"
	}
	return "free"
}

// Decision is the per-request entitlement: the tier plus how much free usage
// has been consumed. Premium decisions always report zero.
type Decision struct {
	Tier               Tier
	RemainingFreeUsage int64
}

// IsPremium reports whether the decision grants premium access.
func (d Decision) IsPremium() bool {
	return d.Tier == Premium
}

// Overrides are operator exceptions that upgrade accounts to premium
// regardless of their metadata. They never downgrade.
type Overrides struct {
	ForcePremium      bool
	PremiumAccountIDs []string
}

// Upgrades reports whether accountID is upgraded by the overrides.
func (o Overrides) Upgrades(accountID string) bool {
	if o.ForcePremium {
		return true
	}
	return slices.ContainsFunc(o.PremiumAccountIDs, func(id string) bool {
		return strings.TrimSpace(id) == accountID
	})
}

// Resolver derives the entitlement decision for an account and keeps the
// persisted usage counter normalized for premium accounts.
type Resolver struct {
	store      metadata.Store
	classifier *Classifier
	overrides  Overrides
	logger     *slog.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithClassifier replaces the default classifier.
func WithClassifier(c *Classifier) ResolverOption {
	return func(r *Resolver) {
		if c != nil {
			r.classifier = c
		}
	}
}

// WithOverrides sets operator overrides.
func WithOverrides(o Overrides) ResolverOption {
	return func(r *Resolver) {
		r.overrides = o
	}
}

// WithLogger sets the resolver logger.
func WithLogger(l *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewResolver creates a resolver over a metadata store.
func NewResolver(store metadata.Store, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		store:      store,
		classifier: DefaultClassifier(),
		logger:     logger.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve loads the account metadata and returns its decision. Any failure
// reading or normalizing metadata returns ErrLookupFailed; the caller must
// reject the request rather than pick a tier.
func (r *Resolver) Resolve(ctx context.Context, accountID string) (Decision, error) {
	account, err := r.store.Get(ctx, accountID)
	if err != nil {
		return Decision{}, errors.Join(ErrLookupFailed, err)
	}

	premium := r.classifier.Classify(account) || r.overrides.Upgrades(accountID)
	counter := metadata.Counter(account.Private[metadata.FreeUsageKey])

	if !premium {
		return Decision{Tier: Free, RemainingFreeUsage: counter}, nil
	}

	if counter != 0 {
		err := r.store.UpdatePrivate(ctx, accountID, map[string]any{metadata.FreeUsageKey: 0})
		if err != nil {
			return Decision{}, errors.Join(ErrLookupFailed, err)
		}
		r.logger.DebugContext(ctx, "reset free usage for premium account",
			logger.UserID(accountID),
			logger.Usage(counter),
			logger.Component("entitlement"),
		)
	}
	return Decision{Tier: Premium}, nil
}
