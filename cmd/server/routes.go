package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Sudhikumaran/ripple-ai/modules/ai"
	"github.com/Sudhikumaran/ripple-ai/modules/user"
	"github.com/Sudhikumaran/ripple-ai/pkg/clientip"
	"github.com/Sudhikumaran/ripple-ai/pkg/entitlement"
	"github.com/Sudhikumaran/ripple-ai/pkg/httpserver"
	"github.com/Sudhikumaran/ripple-ai/pkg/identity"
	"github.com/Sudhikumaran/ripple-ai/pkg/ratelimiter"
	"github.com/Sudhikumaran/ripple-ai/pkg/requestid"
)

type routerDeps struct {
	log      *slog.Logger
	verifier *identity.Verifier
	resolver *entitlement.Resolver
	ai       *ai.Service
	user     *user.Service
	checks   []httpserver.Check
	// limiter throttles generation routes; nil disables it.
	limiter *ratelimiter.Bucket
	// uploadsDir is served under /uploads when images are stored locally.
	uploadsDir string
}

func newRouter(d routerDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(clientip.Middleware)
	r.Use(middleware.Recoverer)

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("Server is Live"))
	})
	r.Get("/health/live", httpserver.LivenessHandler())
	r.Get("/health/ready", httpserver.ReadinessHandler(d.log, d.checks...))

	if d.uploadsDir != "" {
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(d.uploadsDir))))
	}

	r.Route("/api", func(api chi.Router) {
		api.Use(identity.Middleware(d.verifier, d.log))

		api.Route("/ai", func(gen chi.Router) {
			if d.limiter != nil {
				gen.Use(ratelimiter.Middleware(d.limiter, ratelimiter.AccountKey(identity.AccountID), d.log))
			}
			gen.Use(entitlement.Middleware(d.resolver, identity.AccountID, d.log))
			gen.Mount("/", d.ai.Handle())
		})
		api.Mount("/user", d.user.Handle())
	})

	return r
}
