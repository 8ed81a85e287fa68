package metadata

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

// FreeUsageKey is the private-partition field holding the free usage counter.
const FreeUsageKey = "free_usage"

var (
	ErrAccountNotFound  = errors.New("metadata: account not found")
	ErrEmptyAccountID   = errors.New("metadata: empty account id")
	ErrLookupFailed     = errors.New("metadata: lookup failed")
	ErrUpdateFailed     = errors.New("metadata: update failed")
	ErrIncrementFailed  = errors.New("metadata: increment failed")
	ErrUnknownBackend   = errors.New("metadata: unknown backend")
	ErrMissingClerkKey  = errors.New("metadata: CLERK_SECRET_KEY is required for the clerk backend")
	ErrUnexpectedStatus = errors.New("metadata: unexpected identity provider status")
)

// Account is the metadata record the identity provider keeps for one account.
// Both partitions are free-form: values may be strings, booleans, numbers,
// lists or nested maps.
type Account struct {
	ID      string
	Private map[string]any
	Public  map[string]any
}

// Store reads and partially updates account metadata.
type Store interface {
	// Get returns the account's metadata. Partitions are never nil.
	// Stores that only hold metadata (memory, redis, mongo) return an empty
	// account for unknown ids; stores backed by the identity provider return
	// ErrAccountNotFound.
	Get(ctx context.Context, accountID string) (Account, error)
	// UpdatePrivate merges fields into the private partition. Fields not
	// listed are preserved.
	UpdatePrivate(ctx context.Context, accountID string, fields map[string]any) error
}

// Incrementer is implemented by stores that can increment a private counter
// server-side. The stored value is read with the same rules as Counter.
type Incrementer interface {
	IncrementPrivate(ctx context.Context, accountID, key string) (int64, error)
}

// Counter reads a usage counter value. Missing, non-numeric and negative
// values read as 0; fractional values are truncated; numeric strings are
// accepted.
func Counter(v any) int64 {
	var f float64
	switch n := v.(type) {
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case float32:
		f = float64(n)
	case float64:
		f = n
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return 0
	}
	if f >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(f)
}

func normalize(a Account) Account {
	if a.Private == nil {
		a.Private = map[string]any{}
	}
	if a.Public == nil {
		a.Public = map[string]any{}
	}
	return a
}
