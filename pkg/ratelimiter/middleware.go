package ratelimiter

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Sudhikumaran/ripple-ai/core"
	"github.com/Sudhikumaran/ripple-ai/handler"
	"github.com/Sudhikumaran/ripple-ai/pkg/clientip"
	"github.com/Sudhikumaran/ripple-ai/pkg/logger"
)

// DeniedMessage is returned with 429 responses.
const DeniedMessage = "Too many requests. Please slow down."

// KeyFunc extracts a rate limit key from the request.
type KeyFunc func(r *http.Request) string

// AccountKey keys by account ID, falling back to the client IP for
// anonymous requests.
func AccountKey(accountID func(ctx context.Context) (string, bool)) KeyFunc {
	return func(r *http.Request) string {
		if id, ok := accountID(r.Context()); ok && id != "" {
			return "account:" + id
		}
		ip := clientip.FromContext(r.Context())
		if ip == "" {
			ip = clientip.GetIP(r)
		}
		return "ip:" + ip
	}
}

// Middleware rejects requests over the limit with 429 and the JSON envelope.
// Store failures answer 500.
func Middleware(b *Bucket, key KeyFunc, log *slog.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = logger.Discard()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			k := key(r)
			result, err := b.Allow(r.Context(), k)
			if err != nil {
				log.ErrorContext(r.Context(), "rate limit check failed",
					slog.String("key", k),
					logger.Error(err),
					logger.Component("ratelimiter"),
				)
				_ = handler.Error(core.ErrInternalServerError).Render(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(max(0, result.Remaining)))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))

			if !result.Allowed() {
				if retry := int(result.RetryAfter().Seconds()); retry > 0 {
					w.Header().Set("Retry-After", strconv.Itoa(retry))
				}
				log.InfoContext(r.Context(), "rate limited",
					slog.String("key", k),
					logger.Event("rate_limited"),
				)
				_ = handler.Fail(DeniedMessage, http.StatusTooManyRequests).Render(w, r)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
