package identity

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Sudhikumaran/ripple-ai/core"
	"github.com/Sudhikumaran/ripple-ai/handler"
	"github.com/Sudhikumaran/ripple-ai/pkg/logger"
)

// TokenExtractorFunc extracts a token from an HTTP request.
type TokenExtractorFunc func(r *http.Request) (string, error)

// BearerTokenExtractor reads "Authorization: Bearer <token>".
func BearerTokenExtractor(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", ErrMissingToken
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", ErrInvalidToken
	}
	return strings.TrimSpace(token), nil
}

// Middleware verifies the session token and stores the account ID and claims
// in the request context. Failures respond 401.
func Middleware(v *Verifier, log *slog.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = logger.Discard()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := BearerTokenExtractor(r)
			if err == nil {
				var claims *Claims
				if claims, err = v.Verify(token); err == nil {
					ctx := WithAccountID(r.Context(), claims.Subject)
					ctx = context.WithValue(ctx, claimsCtxKey{}, claims)
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
			}

			log.DebugContext(r.Context(), "rejected session token",
				logger.Error(err),
				logger.Component("identity"),
			)
			msg := "Unauthorized: Missing or invalid authentication"
			_ = handler.Error(core.ErrUnauthorized.WithMessage(msg)).Render(w, r)
		})
	}
}
