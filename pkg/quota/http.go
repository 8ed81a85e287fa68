package quota

import (
	"errors"

	"github.com/Sudhikumaran/ripple-ai/core"
)

// HTTPError maps quota errors to HTTP errors. Other errors pass through.
func HTTPError(err error) error {
	if errors.Is(err, ErrPremiumRequired) {
		return errors.Join(err, core.ErrForbidden.WithMessage("This feature is only available for premium subscriptions"))
	}
	return err
}
