package creations

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"
)

// MemoryStore keeps creations in process. Used when PG_CONN_URL is unset and
// in tests.
type MemoryStore struct {
	mu     sync.Mutex
	nextID int64
	items  []Creation
	now    func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

func (s *MemoryStore) Insert(ctx context.Context, c NewCreation) (Creation, error) {
	if !c.Type.valid() {
		return Creation{}, ErrInvalidType
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	now := s.now()
	created := Creation{
		ID:        s.nextID,
		UserID:    c.UserID,
		Prompt:    c.Prompt,
		Content:   c.Content,
		Type:      c.Type,
		Publish:   c.Publish,
		Likes:     []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.items = append(s.items, created)
	return clone(created), nil
}

func (s *MemoryStore) ListByUser(ctx context.Context, userID string) ([]Creation, error) {
	return s.filter(func(c Creation) bool { return c.UserID == userID }), nil
}

func (s *MemoryStore) ListPublished(ctx context.Context) ([]Creation, error) {
	return s.filter(func(c Creation) bool { return c.Publish }), nil
}

func (s *MemoryStore) ToggleLike(ctx context.Context, id int64, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID != id {
			continue
		}
		c := &s.items[i]
		if idx := slices.Index(c.Likes, userID); idx >= 0 {
			c.Likes = slices.Delete(slices.Clone(c.Likes), idx, idx+1)
		} else {
			c.Likes = append(slices.Clone(c.Likes), userID)
		}
		c.UpdatedAt = s.now()
		return slices.Contains(c.Likes, userID), nil
	}
	return false, ErrNotFound
}

func (s *MemoryStore) filter(keep func(Creation) bool) []Creation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []Creation{}
	for _, c := range s.items {
		if keep(c) {
			out = append(out, clone(c))
		}
	}
	slices.SortStableFunc(out, func(a, b Creation) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return out
}

func clone(c Creation) Creation {
	c.Likes = slices.Clone(c.Likes)
	return c
}
