// Package identity verifies caller session tokens.
//
// Tokens arrive as "Authorization: Bearer <jwt>" and are checked with
// github.com/golang-jwt/jwt/v4, either against an RS256 public key (the
// identity provider's JWKS key in PEM form) or an HS256 shared secret. The
// token subject is the account ID used for metadata lookups.
//
//	v, err := identity.NewVerifier(cfg)
//	r.Use(identity.Middleware(v, log))
//	id, ok := identity.AccountID(r.Context())
package identity
