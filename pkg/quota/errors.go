package quota

import "errors"

var ErrPremiumRequired = errors.New("quota.errors.premium_required")
