package store

import (
	"context"
	"encoding/json"
	"sync"
)

// Memory is an in-process Store backed by a map of collection name to
// JSON document. It is the backend used by tests and by dev setups
// that do not need durability.
type Memory struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{docs: make(map[string][]byte)}
}

// Read decodes the stored document into out. Missing and corrupt
// documents both read as an empty collection.
func (m *Memory) Read(_ context.Context, collection string, out any) error {
	m.mu.RLock()
	doc, ok := m.docs[collection]
	m.mu.RUnlock()
	if !ok {
		return nil
	}
	if err := json.Unmarshal(doc, out); err != nil {
		// Lenient-read policy: a bad blob reads as empty.
		return nil
	}
	return nil
}

// Write replaces the stored document for the collection.
func (m *Memory) Write(_ context.Context, collection string, in any) error {
	doc, err := json.Marshal(in)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.docs[collection] = doc
	m.mu.Unlock()
	return nil
}
