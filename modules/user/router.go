package user

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Sudhikumaran/ripple-ai/binder"
	"github.com/Sudhikumaran/ripple-ai/handler"
)

// Handle returns the /api/user routes. Identity middleware must run first.
func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()
	errs := handler.NewErrorHandler(s.logger)

	r.Get("/get-user-creations", handler.Wrap(s.getUserCreations,
		handler.WithErrorHandler[struct{}](errs),
	))
	r.Get("/get-published-creations", handler.Wrap(s.getPublishedCreations,
		handler.WithErrorHandler[struct{}](errs),
	))
	r.Post("/toggle-like-creation", handler.Wrap(s.toggleLikeCreation,
		handler.WithBinder[ToggleLikeRequest](binder.BindJSON()),
		handler.WithErrorHandler[ToggleLikeRequest](errs),
	))

	return r
}
