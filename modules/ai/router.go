package ai

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Sudhikumaran/ripple-ai/binder"
	"github.com/Sudhikumaran/ripple-ai/handler"
)

// maxBodyBytes bounds generation request bodies.
const maxBodyBytes = 64 << 10

// Handle returns the /api/ai routes. Identity and entitlement middleware
// must run before these handlers.
func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()
	errs := handler.NewErrorHandler(s.logger)
	bind := binder.BindJSON(binder.WithMaxBodyBytes(maxBodyBytes))

	r.Post("/generate-article", handler.Wrap(s.generateArticle,
		handler.WithBinder[ArticleRequest](bind),
		handler.WithErrorHandler[ArticleRequest](errs),
	))
	r.Post("/generate-blog-title", handler.Wrap(s.generateBlogTitle,
		handler.WithBinder[BlogTitleRequest](bind),
		handler.WithErrorHandler[BlogTitleRequest](errs),
	))
	r.Post("/generate-image", handler.Wrap(s.generateImage,
		handler.WithBinder[ImageRequest](bind),
		handler.WithErrorHandler[ImageRequest](errs),
	))

	return r
}
