package entitlement

import "context"

type decisionCtxKey struct{}

// WithDecision stores the decision in the context.
func WithDecision(ctx context.Context, d Decision) context.Context {
	return context.WithValue(ctx, decisionCtxKey{}, d)
}

// FromContext returns the decision stored by Middleware.
func FromContext(ctx context.Context) (Decision, bool) {
	d, ok := ctx.Value(decisionCtxKey{}).(Decision)
	return d, ok
}
