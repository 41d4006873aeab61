package store

import (
	"context"
	"sync"

	"github.com/wj-stack/NetFlow/internal/strategy"
)

// MemoryStore is an in-memory implementation of the Store interface.
// It keeps a map keyed by strategy id plus an order slice, so listing
// preserves insertion order and replacing a document keeps its position.
// Access is guarded by an RWMutex for thread-safe concurrent use.
type MemoryStore struct {
	mu    sync.RWMutex
	order []string
	docs  map[string]strategy.PolicyDocument // strategy id -> document
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docs: make(map[string]strategy.PolicyDocument),
	}
}

// List retrieves every document in insertion order.
func (m *MemoryStore) List(ctx context.Context) ([]strategy.PolicyDocument, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]strategy.PolicyDocument, 0, len(m.order))
	for _, id := range m.order {
		result = append(result, m.docs[id])
	}
	return result, nil
}

// Get retrieves a single document by strategy id.
func (m *MemoryStore) Get(ctx context.Context, strategyID string) (*strategy.PolicyDocument, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, exists := m.docs[strategyID]
	if !exists {
		return nil, ErrNotFound
	}
	return &doc, nil
}

// Upsert creates or replaces a document keyed by its strategy id.
func (m *MemoryStore) Upsert(ctx context.Context, doc strategy.PolicyDocument) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := doc.StrategyID()
	if _, exists := m.docs[id]; !exists {
		m.order = append(m.order, id)
	}
	m.docs[id] = doc
	return nil
}

// Delete removes a document by strategy id.
func (m *MemoryStore) Delete(ctx context.Context, strategyID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.docs[strategyID]; !exists {
		// Idempotent: no error if the document doesn't exist
		return nil
	}
	delete(m.docs, strategyID)
	for i, id := range m.order {
		if id == strategyID {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// Replace swaps the whole collection for docs, in order. A later
// document with a duplicate strategy id overwrites the earlier one in
// place.
func (m *MemoryStore) Replace(ctx context.Context, docs []strategy.PolicyDocument) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.order = m.order[:0]
	m.docs = make(map[string]strategy.PolicyDocument, len(docs))
	for _, doc := range docs {
		id := doc.StrategyID()
		if _, exists := m.docs[id]; !exists {
			m.order = append(m.order, id)
		}
		m.docs[id] = doc
	}
	return nil
}

// Close is a no-op for MemoryStore as there are no resources to release.
func (m *MemoryStore) Close() error {
	return nil
}

// Len returns the number of stored documents. Used by telemetry.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.order)
}
