package metadata

import (
	"context"
	"maps"
	"sync"
)

// MemoryStore keeps metadata in process. Used for local runs and tests.
type MemoryStore struct {
	mu       sync.Mutex
	accounts map[string]Account
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{accounts: make(map[string]Account)}
}

// Put replaces an account's metadata.
func (s *MemoryStore) Put(a Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a = normalize(a)
	s.accounts[a.ID] = Account{ID: a.ID, Private: maps.Clone(a.Private), Public: maps.Clone(a.Public)}
}

func (s *MemoryStore) Get(ctx context.Context, accountID string) (Account, error) {
	if accountID == "" {
		return Account{}, ErrEmptyAccountID
	}
	if err := ctx.Err(); err != nil {
		return Account{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[accountID]
	if !ok {
		return normalize(Account{ID: accountID}), nil
	}
	return Account{ID: a.ID, Private: maps.Clone(a.Private), Public: maps.Clone(a.Public)}, nil
}

func (s *MemoryStore) UpdatePrivate(ctx context.Context, accountID string, fields map[string]any) error {
	if accountID == "" {
		return ErrEmptyAccountID
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	a := normalize(s.accounts[accountID])
	a.ID = accountID
	maps.Copy(a.Private, fields)
	s.accounts[accountID] = a
	return nil
}

func (s *MemoryStore) IncrementPrivate(ctx context.Context, accountID, key string) (int64, error) {
	if accountID == "" {
		return 0, ErrEmptyAccountID
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	a := normalize(s.accounts[accountID])
	a.ID = accountID
	n := Counter(a.Private[key]) + 1
	a.Private[key] = n
	s.accounts[accountID] = a
	return n, nil
}
