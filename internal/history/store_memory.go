package history

import (
	"context"
	"sync"

	"github.com/studykit/mockexam/internal/scoring"
)

// MemoryStore is the terminal fallback backend and the test double. It
// copies on the way in and out so callers can't alias its slice.
type MemoryStore struct {
	mu      sync.RWMutex
	results []scoring.Result
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (m *MemoryStore) Name() string { return "memory" }

func (m *MemoryStore) Load(_ context.Context) ([]scoring.Result, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]scoring.Result, len(m.results))
	copy(out, m.results)
	return out, nil
}

func (m *MemoryStore) Save(_ context.Context, results []scoring.Result) error {
	cp := make([]scoring.Result, len(results))
	copy(cp, results)
	m.mu.Lock()
	m.results = cp
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	m.results = nil
	m.mu.Unlock()
	return nil
}
