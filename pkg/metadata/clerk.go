package metadata

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/clerk/clerk-sdk-go/v2"
	"github.com/clerk/clerk-sdk-go/v2/user"
)

// ClerkStore reads and patches user metadata through the Clerk Backend API.
// Clerk merges metadata patches server-side but offers no atomic increment,
// so it does not implement Incrementer.
type ClerkStore struct {
	users *user.Client
}

// ClerkOption configures ClerkStore.
type ClerkOption func(*clerk.ClientConfig)

// WithClerkBaseURL points the store at another API host, e.g. a test server.
// The SDK adds the API version, so a trailing /v1 is dropped.
func WithClerkBaseURL(u string) ClerkOption {
	return func(cfg *clerk.ClientConfig) {
		u = strings.TrimSuffix(strings.TrimSuffix(u, "/"), "/v1")
		if u != "" {
			cfg.URL = clerk.String(u)
		}
	}
}

func NewClerkStore(secretKey string, opts ...ClerkOption) (*ClerkStore, error) {
	if secretKey == "" {
		return nil, ErrMissingClerkKey
	}
	cfg := &clerk.ClientConfig{}
	cfg.Key = clerk.String(secretKey)
	cfg.HTTPClient = &http.Client{Timeout: 10 * time.Second}
	for _, opt := range opts {
		opt(cfg)
	}
	return &ClerkStore{users: user.NewClient(cfg)}, nil
}

func (s *ClerkStore) Get(ctx context.Context, accountID string) (Account, error) {
	if accountID == "" {
		return Account{}, ErrEmptyAccountID
	}
	u, err := s.users.Get(ctx, accountID)
	if err != nil {
		return Account{}, errors.Join(ErrLookupFailed, clerkError(err))
	}
	private, err := decodeMetadata(u.PrivateMetadata)
	if err != nil {
		return Account{}, errors.Join(ErrLookupFailed, fmt.Errorf("private metadata: %w", err))
	}
	public, err := decodeMetadata(u.PublicMetadata)
	if err != nil {
		return Account{}, errors.Join(ErrLookupFailed, fmt.Errorf("public metadata: %w", err))
	}
	return normalize(Account{ID: accountID, Private: private, Public: public}), nil
}

func (s *ClerkStore) UpdatePrivate(ctx context.Context, accountID string, fields map[string]any) error {
	if accountID == "" {
		return ErrEmptyAccountID
	}
	raw, err := json.Marshal(fields)
	if err != nil {
		return errors.Join(ErrUpdateFailed, err)
	}
	_, err = s.users.UpdateMetadata(ctx, accountID, &user.UpdateMetadataParams{
		PrivateMetadata: clerk.JSONRawMessage(raw),
	})
	if err != nil {
		return errors.Join(ErrUpdateFailed, clerkError(err))
	}
	return nil
}

func decodeMetadata(raw json.RawMessage) (map[string]any, error) {
	if len(bytes.TrimSpace(raw)) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var out map[string]any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// clerkError maps API error responses onto the package sentinels.
func clerkError(err error) error {
	var apiErr *clerk.APIErrorResponse
	if !errors.As(err, &apiErr) {
		return err
	}
	if apiErr.HTTPStatusCode == http.StatusNotFound {
		return ErrAccountNotFound
	}
	return fmt.Errorf("%w: %d", ErrUnexpectedStatus, apiErr.HTTPStatusCode)
}
