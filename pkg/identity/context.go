package identity

import "context"

type accountIDCtxKey struct{}
type claimsCtxKey struct{}

// WithAccountID stores the authenticated account ID in the context.
func WithAccountID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, accountIDCtxKey{}, id)
}

// AccountID returns the authenticated account ID.
func AccountID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(accountIDCtxKey{}).(string)
	return id, ok && id != ""
}

// ClaimsFromContext returns the verified token claims.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(claimsCtxKey{}).(*Claims)
	return c, ok
}
