package entitlement

import "errors"

var (
	ErrLookupFailed    = errors.New("entitlement.errors.lookup_failed")
	ErrMissingIdentity = errors.New("entitlement.errors.missing_identity")
	ErrNoDecision      = errors.New("entitlement.errors.no_decision_in_context")
	ErrInvalidRules    = errors.New("entitlement.errors.invalid_rules")
)
