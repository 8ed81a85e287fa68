package imagegen

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Sudhikumaran/ripple-ai/core"
)

// UpstreamServiceError is a non-2xx answer from an auxiliary service. Body is
// kept for logs and never shown to callers.
type UpstreamServiceError struct {
	Service    string
	StatusCode int
	Body       string
}

func (e *UpstreamServiceError) Error() string {
	return fmt.Sprintf("%s: upstream status %d: %s", e.Service, e.StatusCode, e.Body)
}

// UserMessage translates well-known statuses into operator-actionable text.
func (e *UpstreamServiceError) UserMessage() string {
	switch e.StatusCode {
	case http.StatusPaymentRequired:
		return e.Service + ": Payment required or invalid API key/credits"
	case http.StatusForbidden:
		return e.Service + ": Forbidden — invalid API key or insufficient permissions"
	}
	return fmt.Sprintf("%s: request failed with status %d", e.Service, e.StatusCode)
}

// HTTPError maps image generation errors to HTTP errors. Upstream failures
// keep the upstream status.
func HTTPError(err error) error {
	var ue *UpstreamServiceError
	switch {
	case errors.As(err, &ue):
		return errors.Join(err, core.NewHTTPError(ue.StatusCode, "upstream_error").WithMessage(ue.UserMessage()))
	case errors.Is(err, ErrMissingAPIKey):
		return errors.Join(err, core.ErrInternalServerError.WithMessage("Server misconfiguration: CLIPDROP_API_KEY is missing"))
	case errors.Is(err, ErrEmptyPrompt):
		return errors.Join(err, core.ErrBadRequest.WithMessage("Prompt is required"))
	}
	return err
}
