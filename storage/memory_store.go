package storage

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"supplyboard/models"
)

// MemoryStore owns the committed record set and the active filter for
// one session. Loads replace the set wholesale; readers always see a
// complete generation, never a partial one.
type MemoryStore struct {
	mu       sync.RWMutex
	titles   []models.Title
	filters  models.FilterState
	loadID   string
	loadedAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		filters: models.FilterState{Type: models.TypeAll},
	}
}

// Commit atomically replaces the record set and filter state, stamping
// the new generation with a load ID
func (s *MemoryStore) Commit(titles []models.Title, filters models.FilterState) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.titles = titles
	s.filters = filters.Clone()
	s.loadID = uuid.New().String()
	s.loadedAt = time.Now()
	return s.loadID
}

func (s *MemoryStore) Titles() []models.Title {
	s.mu.RLock()
	defer s.mu.RUnlock()

	titles := make([]models.Title, len(s.titles))
	copy(titles, s.titles)
	return titles
}

func (s *MemoryStore) Filters() models.FilterState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filters.Clone()
}

func (s *MemoryStore) SetFilters(filters models.FilterState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = filters.Clone()
}

func (s *MemoryStore) HasData() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.titles) > 0
}

func (s *MemoryStore) LoadID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadID
}

func (s *MemoryStore) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}
