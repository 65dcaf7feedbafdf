// Package kv defines the durable key-value namespace contract the record
// stores persist through, along with its backends. Each store owns one
// namespace and overwrites the whole value on every mutation.
package kv

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound is returned by Get when the namespace has never been written.
var ErrNotFound = errors.New("kv: namespace not found")

// Store is the persistence contract injected into the record stores.
type Store interface {
	// Get returns the current value of the namespace, or ErrNotFound if it
	// has never been set.
	Get(ctx context.Context, name string) ([]byte, error)
	// Set overwrites the namespace with value.
	Set(ctx context.Context, name string, value []byte) error
	// Remove deletes the namespace. Removing an absent namespace is not an
	// error.
	Remove(ctx context.Context, name string) error
}

// Memory is a map-backed Store for tests and ephemeral runs.
type Memory struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Get(_ context.Context, name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[name]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (m *Memory) Set(_ context.Context, name string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := make([]byte, len(value))
	copy(v, value)
	m.data[name] = v
	return nil
}

func (m *Memory) Remove(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, name)
	return nil
}
