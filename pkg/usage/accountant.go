package usage

import (
	"context"
	"log/slog"

	"github.com/Sudhikumaran/ripple-ai/pkg/entitlement"
	"github.com/Sudhikumaran/ripple-ai/pkg/logger"
	"github.com/Sudhikumaran/ripple-ai/pkg/metadata"
)

// Mode selects how the free usage counter is persisted.
type Mode int

const (
	// ModeAtomic increments the counter server-side. Concurrent increments
	// are never lost.
	ModeAtomic Mode = iota
	// ModeLastWriteWins writes the decision's counter plus one. Concurrent
	// requests can overwrite each other.
	ModeLastWriteWins
)

func (m Mode) String() string {
	if m == ModeLastWriteWins {
		return "last_write_wins"
	}
	return "atomic"
}

// Accountant records a successful metered generation.
type Accountant struct {
	store       metadata.Store
	incrementer metadata.Incrementer
	mode        Mode
	logger      *slog.Logger
}

// Option configures an Accountant.
type Option func(*Accountant)

// WithMode forces a mode. ModeAtomic is ignored when the store cannot
// increment.
func WithMode(m Mode) Option {
	return func(a *Accountant) {
		a.mode = m
	}
}

// WithLogger sets the accountant logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *Accountant) {
		if l != nil {
			a.logger = l
		}
	}
}

// NewAccountant creates an accountant. It uses ModeAtomic when the store
// implements metadata.Incrementer and ModeLastWriteWins otherwise.
func NewAccountant(store metadata.Store, opts ...Option) *Accountant {
	a := &Accountant{store: store, mode: ModeAtomic, logger: logger.Discard()}
	for _, opt := range opts {
		opt(a)
	}
	if inc, ok := store.(metadata.Incrementer); ok {
		a.incrementer = inc
	}
	if a.incrementer == nil {
		a.mode = ModeLastWriteWins
	}
	return a
}

// Mode reports the effective mode.
func (a *Accountant) Mode() Mode {
	return a.mode
}

// Record increments the free usage counter for free accounts. Premium is a
// no-op. Failures are logged and never returned: the generation already
// succeeded.
func (a *Accountant) Record(ctx context.Context, accountID string, d entitlement.Decision) {
	if d.IsPremium() {
		return
	}

	var (
		next int64
		err  error
	)
	switch a.mode {
	case ModeAtomic:
		next, err = a.incrementer.IncrementPrivate(ctx, accountID, metadata.FreeUsageKey)
	default:
		next = d.RemainingFreeUsage + 1
		err = a.store.UpdatePrivate(ctx, accountID, map[string]any{metadata.FreeUsageKey: next})
	}

	if err != nil {
		a.logger.ErrorContext(ctx, "failed to record free usage",
			logger.UserID(accountID),
			logger.Usage(d.RemainingFreeUsage),
			slog.String("mode", a.mode.String()),
			logger.Error(err),
			logger.Component("usage"),
		)
		return
	}

	a.logger.DebugContext(ctx, "recorded free usage",
		logger.UserID(accountID),
		logger.Usage(next),
		slog.String("mode", a.mode.String()),
	)
}
