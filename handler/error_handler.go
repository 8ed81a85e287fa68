package handler

import (
	"log/slog"
	"net/http"

	"github.com/Sudhikumaran/ripple-ai/pkg/logger"
	"github.com/Sudhikumaran/ripple-ai/pkg/requestid"
)

// NewErrorHandler returns an ErrorHandler that logs the failure and renders
// the JSON envelope. Client errors log at warn, server errors at error.
func NewErrorHandler(log *slog.Logger) ErrorHandler {
	if log == nil {
		log = logger.Discard()
	}
	return func(ctx Context, err error) {
		status, msg := classify(err)
		r := ctx.Request()

		level := slog.LevelError
		if status < http.StatusInternalServerError {
			level = slog.LevelWarn
		}
		log.LogAttrs(r.Context(), level, "request error",
			logger.RequestID(requestid.FromContext(r.Context())),
			logger.Error(err),
			logger.StatusCode(status),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			logger.Component("error_handler"),
		)

		if renderErr := Fail(msg, status).Render(ctx.ResponseWriter(), r); renderErr != nil {
			log.Error("failed to render error response",
				logger.Error(renderErr),
				logger.Event("render_error"),
			)
		}
	}
}
