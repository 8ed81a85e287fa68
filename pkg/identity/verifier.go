package identity

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Claims are the session token claims the service reads. The account ID is
// the subject.
type Claims struct {
	jwt.RegisteredClaims
	SessionID string `json:"sid,omitempty"`
}

// Verifier validates session tokens and returns their claims.
type Verifier struct {
	hmacSecret []byte
	publicKey  *rsa.PublicKey
	issuer     string
}

// NewVerifier builds a verifier from config. At least one key is required.
func NewVerifier(cfg Config) (*Verifier, error) {
	v := &Verifier{issuer: cfg.Issuer}

	if pem := strings.TrimSpace(cfg.PublicKey); pem != "" {
		// Env files often carry the PEM with literal \n sequences.
		pem = strings.ReplaceAll(pem, `\n`, "\n")
		key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(pem))
		if err != nil {
			return nil, errors.Join(ErrInvalidPublicKey, err)
		}
		v.publicKey = key
	}
	if cfg.Secret != "" {
		v.hmacSecret = []byte(cfg.Secret)
	}
	if v.publicKey == nil && v.hmacSecret == nil {
		return nil, ErrNoVerificationKey
	}
	return v, nil
}

// Verify parses and validates a token. Expiry and not-before are checked by
// the parser; the issuer is checked when configured.
func (v *Verifier) Verify(token string) (*Claims, error) {
	if token == "" {
		return nil, ErrMissingToken
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, v.keyFunc)
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if v.issuer != "" && !claims.VerifyIssuer(v.issuer, true) {
		return nil, errors.Join(ErrInvalidToken, fmt.Errorf("unexpected issuer %q", claims.Issuer))
	}
	if claims.Subject == "" {
		return nil, ErrMissingSubject
	}
	return claims, nil
}

func (v *Verifier) keyFunc(t *jwt.Token) (any, error) {
	switch t.Method.(type) {
	case *jwt.SigningMethodRSA:
		if v.publicKey != nil {
			return v.publicKey, nil
		}
	case *jwt.SigningMethodHMAC:
		if v.hmacSecret != nil {
			return v.hmacSecret, nil
		}
	}
	return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
}

// Sign issues an HS256 session token for accountID. It only works with a
// shared secret and is meant for local runs and operator tooling.
func (v *Verifier) Sign(accountID string, ttl time.Duration) (string, error) {
	if v.hmacSecret == nil {
		return "", ErrSigningNotSupported
	}
	now := time.Now()
	claims := Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   accountID,
		Issuer:    v.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.hmacSecret)
}
