package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Sudhikumaran/ripple-ai/binder"
	"github.com/Sudhikumaran/ripple-ai/core"
)

// HandlerFunc handles a bound request of type R and returns a Response.
//
//	func (s *Service) generateArticle(ctx handler.Context, req ArticleRequest) handler.Response {
//		text, err := s.generate(ctx, req.Prompt, req.Length)
//		if err != nil {
//			return handler.Error(err)
//		}
//		return handler.OK(text)
//	}
type HandlerFunc[R any] func(ctx Context, req R) Response

// Response renders itself to an http.ResponseWriter.
// Errors returned from Render are passed to the error handler.
type Response interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

// Bind parses HTTP requests into typed values.
type Bind func(r *http.Request, v any) error

// ErrorHandler handles errors from binding or rendering.
type ErrorHandler func(ctx Context, err error)

// WrapOption configures the Wrap function.
type WrapOption[R any] func(*wrapConfig[R])

type wrapConfig[R any] struct {
	binder       Bind
	errorHandler ErrorHandler
}

// WithBinder sets the request binder.
func WithBinder[R any](b Bind) WrapOption[R] {
	return func(c *wrapConfig[R]) {
		if b != nil {
			c.binder = b
		}
	}
}

// WithErrorHandler sets a custom error handler.
func WithErrorHandler[R any](h ErrorHandler) WrapOption[R] {
	return func(c *wrapConfig[R]) {
		if h != nil {
			c.errorHandler = h
		}
	}
}

// Wrap converts a typed HandlerFunc to http.HandlerFunc.
//
//	r.Post("/generate-blog-title", handler.Wrap(svc.generateBlogTitle,
//		handler.WithBinder[BlogTitleRequest](binder.BindJSON()),
//		handler.WithErrorHandler[BlogTitleRequest](handler.NewErrorHandler(log)),
//	))
func Wrap[R any](h HandlerFunc[R], opts ...WrapOption[R]) http.HandlerFunc {
	cfg := &wrapConfig[R]{
		errorHandler: defaultErrorHandler,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := NewContext(w, r)

		var req R
		if cfg.binder != nil {
			if err := cfg.binder(r, &req); err != nil {
				cfg.errorHandler(ctx, bindError(err))
				return
			}
		}

		response := h(ctx, req)
		if response == nil {
			cfg.errorHandler(ctx, ErrNilResponse)
			return
		}
		if err := response.Render(w, r); err != nil {
			cfg.errorHandler(ctx, err)
		}
	}
}

// bindError maps binder failures onto client errors.
func bindError(err error) error {
	if errors.Is(err, binder.ErrBodyTooLarge) {
		return errors.Join(err, core.NewHTTPError(http.StatusRequestEntityTooLarge, "request_too_large").
			WithMessage("Request body too large"))
	}
	return errors.Join(err, core.ErrBadRequest.WithMessage(fmt.Sprintf("Invalid request: %v", err)))
}

func defaultErrorHandler(ctx Context, err error) {
	status, msg := classify(err)
	_ = Fail(msg, status).Render(ctx.ResponseWriter(), ctx.Request())
}
