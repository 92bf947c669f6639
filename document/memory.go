package document

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/tailored-agentic-units/layers/editor"
)

// memoryStore keeps snapshots in a map. Snapshots are immutable, so they are
// stored as-is. Documents are lost when the process exits.
type memoryStore struct {
	docs map[string]*editor.Snapshot
	mu   sync.RWMutex
}

// NewMemoryStore creates a Store with in-memory storage.
func NewMemoryStore() Store {
	return &memoryStore{docs: make(map[string]*editor.Snapshot)}
}

func (m *memoryStore) List(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Sorted(maps.Keys(m.docs)), nil
}

func (m *memoryStore) Load(_ context.Context, name string) (*editor.Snapshot, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.docs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return s, nil
}

func (m *memoryStore) Save(_ context.Context, name string, s *editor.Snapshot) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if s == nil {
		return fmt.Errorf("%w: %s: nil snapshot", ErrSaveFailed, name)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[name] = s
	return nil
}

func (m *memoryStore) Delete(_ context.Context, name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.docs, name)
	return nil
}

func (m *memoryStore) Close() error { return nil }
