package entitlement

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Sudhikumaran/ripple-ai/core"
	"github.com/Sudhikumaran/ripple-ai/handler"
	"github.com/Sudhikumaran/ripple-ai/pkg/logger"
)

// AccountIDFunc extracts the authenticated account ID from the request context.
type AccountIDFunc func(ctx context.Context) (string, bool)

// Middleware resolves the caller's entitlement and stores it in the request
// context. Missing identity and lookup failures respond 401.
func Middleware(resolver *Resolver, accountID AccountIDFunc, log *slog.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = logger.Discard()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			id, ok := accountID(ctx)
			if !ok || id == "" {
				unauthorized(w, r, ErrMissingIdentity)
				return
			}

			decision, err := resolver.Resolve(ctx, id)
			if err != nil {
				log.WarnContext(ctx, "entitlement lookup failed",
					logger.UserID(id),
					logger.Error(err),
					logger.Component("entitlement"),
				)
				unauthorized(w, r, err)
				return
			}

			log.DebugContext(ctx, "entitlement resolved",
				logger.UserID(id),
				logger.Tier(decision.Tier.String()),
				logger.Usage(decision.RemainingFreeUsage),
			)
			next.ServeHTTP(w, r.WithContext(WithDecision(ctx, decision)))
		})
	}
}

func unauthorized(w http.ResponseWriter, r *http.Request, err error) {
	reason := "missing account identity"
	if errors.Is(err, ErrLookupFailed) {
		reason = "account metadata unavailable"
	}
	httpErr := core.ErrUnauthorized.WithMessage("Unauthorized: " + reason)
	_ = handler.Error(httpErr).Render(w, r)
}
