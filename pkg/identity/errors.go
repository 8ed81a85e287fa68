package identity

import "errors"

var (
	ErrMissingToken        = errors.New("identity.errors.missing_token")
	ErrInvalidToken        = errors.New("identity.errors.invalid_token")
	ErrMissingSubject      = errors.New("identity.errors.missing_subject")
	ErrNoVerificationKey   = errors.New("identity.errors.no_verification_key")
	ErrInvalidPublicKey    = errors.New("identity.errors.invalid_public_key")
	ErrSigningNotSupported = errors.New("identity.errors.signing_not_supported")
)
