package generation

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// TokenExchangeTimeout bounds a single token endpoint round trip. The exchange
// can outlive the attempt that started it, since other attempts share the
// cached token source.
const TokenExchangeTimeout = 30 * time.Second

// Authenticator is one strategy for reaching the backend. Unconfigured
// authenticators are skipped by the Invoker.
type Authenticator interface {
	Strategy() Strategy
	Configured() bool
	Attempt(ctx context.Context, req Request) (string, error)
}

// ServiceAccountAuthenticator exchanges service account credentials for a
// short-lived bearer token and calls the backend with it.
type ServiceAccountAuthenticator struct {
	client          *Client
	credentialsFile string

	mu     sync.Mutex
	source oauth2.TokenSource
}

// ServiceAccountOption configures a ServiceAccountAuthenticator.
type ServiceAccountOption func(*ServiceAccountAuthenticator)

// WithTokenSource uses ts instead of loading the credentials file.
func WithTokenSource(ts oauth2.TokenSource) ServiceAccountOption {
	return func(a *ServiceAccountAuthenticator) {
		a.source = ts
	}
}

// NewServiceAccountAuthenticator creates the authenticator. It is configured
// when credentialsFile is set or a token source is supplied. The file is read
// on first use so a broken file fails the attempt, not startup.
func NewServiceAccountAuthenticator(client *Client, credentialsFile string, opts ...ServiceAccountOption) *ServiceAccountAuthenticator {
	a := &ServiceAccountAuthenticator{client: client, credentialsFile: credentialsFile}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *ServiceAccountAuthenticator) Strategy() Strategy { return StrategyServiceAccount }

func (a *ServiceAccountAuthenticator) Configured() bool {
	return a.credentialsFile != "" || a.source != nil
}

func (a *ServiceAccountAuthenticator) Attempt(ctx context.Context, req Request) (string, error) {
	ts, err := a.tokenSource(ctx)
	if err != nil {
		return "", err
	}
	tok, err := token(ctx, ts)
	if err != nil {
		return "", errors.Join(ErrTokenExchange, err)
	}
	if tok == nil || tok.AccessToken == "" {
		return "", ErrTokenExchange
	}
	return a.client.Generate(ctx, req, func(r *http.Request) error {
		r.Header.Set("Authorization", "Bearer "+tok.AccessToken)
		return nil
	})
}

func (a *ServiceAccountAuthenticator) tokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.source != nil {
		return a.source, nil
	}
	if a.credentialsFile == "" {
		return nil, ErrNotConfigured
	}
	data, err := os.ReadFile(a.credentialsFile)
	if err != nil {
		return nil, errors.Join(ErrTokenExchange, fmt.Errorf("read credentials: %w", err))
	}
	// The token source outlives the request, so it must not carry its deadline.
	// Its own client timeout ends exchanges nobody is waiting for anymore.
	base := context.WithValue(context.WithoutCancel(ctx), oauth2.HTTPClient,
		&http.Client{Timeout: TokenExchangeTimeout})
	creds, err := google.CredentialsFromJSON(base, data, CloudPlatformScope)
	if err != nil {
		return nil, errors.Join(ErrTokenExchange, fmt.Errorf("parse credentials: %w", err))
	}
	a.source = oauth2.ReuseTokenSource(nil, creds.TokenSource)
	return a.source, nil
}

// token runs the exchange off the caller's goroutine so that ctx bounds it.
// oauth2.TokenSource takes no context of its own.
func token(ctx context.Context, ts oauth2.TokenSource) (*oauth2.Token, error) {
	type result struct {
		tok *oauth2.Token
		err error
	}
	done := make(chan result, 1)
	go func() {
		tok, err := ts.Token()
		done <- result{tok: tok, err: err}
	}()
	select {
	case r := <-done:
		return r.tok, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// APIKeyAuthenticator calls the backend with a static key in the query string.
type APIKeyAuthenticator struct {
	client *Client
	key    string
}

// NewAPIKeyAuthenticator creates the authenticator. It is configured when key
// is non-empty.
func NewAPIKeyAuthenticator(client *Client, key string) *APIKeyAuthenticator {
	return &APIKeyAuthenticator{client: client, key: key}
}

func (a *APIKeyAuthenticator) Strategy() Strategy { return StrategyAPIKey }

func (a *APIKeyAuthenticator) Configured() bool { return a.key != "" }

func (a *APIKeyAuthenticator) Attempt(ctx context.Context, req Request) (string, error) {
	if a.key == "" {
		return "", ErrNotConfigured
	}
	return a.client.Generate(ctx, req, func(r *http.Request) error {
		q := r.URL.Query()
		q.Set("key", a.key)
		r.URL.RawQuery = q.Encode()
		return nil
	})
}

// FromConfig builds the default chain: service account first, then API key.
func FromConfig(cfg Config, client *Client) []Authenticator {
	return []Authenticator{
		NewServiceAccountAuthenticator(client, cfg.CredentialsFile),
		NewAPIKeyAuthenticator(client, cfg.APIKey),
	}
}
