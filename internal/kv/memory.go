// ABOUTME: In-memory Store implementation for tests and ephemeral sessions
// ABOUTME: Supports injecting failures to exercise error paths

package kv

import (
	"context"
	"sort"
	"sync"
)

// Op identifies a Store operation for fault injection. Op and FailWith exist
// so tests can exercise error paths; production code never sets faults.
type Op string

// Operations that can be made to fail with FailWith.
const (
	OpGet    Op = "get"
	OpSet    Op = "set"
	OpDelete Op = "delete"
	OpKeys   Op = "keys"
	OpClear  Op = "clear"
)

// MemoryStore is an in-memory Store implementation.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string][]byte
	faults map[Op]error
	closed bool
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values: make(map[string][]byte),
		faults: make(map[Op]error),
	}
}

// FailWith makes every subsequent call of op return err. A nil err clears the fault.
// Intended for tests.
func (m *MemoryStore) FailWith(op Op, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err == nil {
		delete(m.faults, op)
		return
	}
	m.faults[op] = err
}

// check returns the error an operation should fail with, if any. Caller holds mu.
func (m *MemoryStore) check(ctx context.Context, op Op) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.closed {
		return ErrClosed
	}
	return m.faults[op]
}

// Get returns a copy of the value stored under key.
func (m *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.check(ctx, OpGet); err != nil {
		return nil, err
	}

	v, ok := m.values[key]
	if !ok {
		return nil, ErrNotFound
	}

	// Return a copy
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

// Set stores a copy of value under key.
func (m *MemoryStore) Set(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.check(ctx, OpSet); err != nil {
		return err
	}

	// Make a copy to avoid external modification
	v := make([]byte, len(value))
	copy(v, value)
	m.values[key] = v
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (m *MemoryStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.check(ctx, OpDelete); err != nil {
		return err
	}

	delete(m.values, key)
	return nil
}

// Keys returns every stored key in lexical order.
func (m *MemoryStore) Keys(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.check(ctx, OpKeys); err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// Clear removes every key.
func (m *MemoryStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.check(ctx, OpClear); err != nil {
		return err
	}

	m.values = make(map[string][]byte)
	return nil
}

// Close marks the store closed. Further calls return ErrClosed.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	return nil
}
