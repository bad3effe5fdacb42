package draftRepo

import (
	"context"
	"sync"
	"time"

	"reservodojo/models"
)

type memoryEntry struct {
	draft     models.ScenarioDraft
	expiresAt time.Time
}

// MemoryDraftStore is the in-process DraftStore. Expired drafts are dropped on read.
type MemoryDraftStore struct {
	entries map[string]memoryEntry
	mu      sync.Mutex
	now     func() time.Time
}

func NewMemoryDraftStore() *MemoryDraftStore {
	return &MemoryDraftStore{entries: make(map[string]memoryEntry), now: time.Now}
}

// WithClock replaces the clock used for expiry.
func (s *MemoryDraftStore) WithClock(now func() time.Time) *MemoryDraftStore {
	s.now = now
	return s
}

func (s *MemoryDraftStore) Save(ctx context.Context, draft *models.ScenarioDraft, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := DraftKey(draft.AccommodationID, draft.UserID, draft.GeneratedID)
	if _, ok := s.lookup(key); ok {
		return ErrDraftExists
	}
	entry := memoryEntry{draft: *draft}
	entry.draft.EffectiveConfig = draft.EffectiveConfig.Clone()
	if ttl > 0 {
		entry.expiresAt = s.now().Add(ttl)
	}
	s.entries[key] = entry
	return nil
}

func (s *MemoryDraftStore) Get(ctx context.Context, accommodationID, userID, generatedID string) (*models.ScenarioDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := DraftKey(accommodationID, userID, generatedID)
	entry, ok := s.lookup(key)
	if !ok {
		return nil, ErrDraftNotFound
	}
	draft := entry.draft
	draft.EffectiveConfig = entry.draft.EffectiveConfig.Clone()
	return &draft, nil
}

func (s *MemoryDraftStore) Delete(ctx context.Context, accommodationID, userID, generatedID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := DraftKey(accommodationID, userID, generatedID)
	if _, ok := s.lookup(key); !ok {
		return ErrDraftNotFound
	}
	delete(s.entries, key)
	return nil
}

// lookup must be called with s.mu held.
func (s *MemoryDraftStore) lookup(key string) (memoryEntry, bool) {
	entry, ok := s.entries[key]
	if !ok {
		return memoryEntry{}, false
	}
	if !entry.expiresAt.IsZero() && !s.now().Before(entry.expiresAt) {
		delete(s.entries, key)
		return memoryEntry{}, false
	}
	return entry, true
}
