package generation

import (
	"errors"

	"github.com/Sudhikumaran/ripple-ai/core"
)

func asBackendError(err error) (*BackendError, bool) {
	var be *BackendError
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}

// HTTPError maps generation errors to HTTP errors. Unavailability is a 502
// naming the attempted strategies.
func HTTPError(err error) error {
	var ue *UnavailableError
	switch {
	case errors.As(err, &ue):
		return errors.Join(err, core.ErrBadGateway.WithMessage(ue.UserMessage()))
	case errors.Is(err, ErrEmptyPrompt):
		return errors.Join(err, core.ErrBadRequest.WithMessage("Prompt is required"))
	}
	return err
}
