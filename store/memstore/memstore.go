// Package memstore is an in-memory store.Store used by tests and as a
// throwaway development backend. Nothing is persisted.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/blockgraph-io/blockgraph/store"
)

type MemStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func New() *MemStore {
	return &MemStore{data: make(map[string][]byte)}
}

func (m *MemStore) Get(ctx context.Context, path string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.data[path]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (m *MemStore) Exists(ctx context.Context, path string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.data[path]
	return ok, nil
}

func (m *MemStore) List(ctx context.Context, prefix string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	dir := strings.TrimSuffix(prefix, "/") + "/"
	seen := make(map[string]struct{})
	for key := range m.data {
		if !strings.HasPrefix(key, dir) {
			continue
		}
		child, _, _ := strings.Cut(key[len(dir):], "/")
		seen[child] = struct{}{}
	}
	if len(seen) == 0 {
		return nil, nil
	}

	children := make([]string, 0, len(seen))
	for child := range seen {
		children = append(children, child)
	}
	sort.Strings(children)
	return children, nil
}

func (m *MemStore) NewBatch() store.Batch {
	return &memBatch{store: m}
}

func (m *MemStore) Close() error {
	return nil
}

// Len reports the number of stored paths.
func (m *MemStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// Snapshot returns a copy of the full path -> value mapping.
func (m *MemStore) Snapshot() map[string][]byte {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string][]byte, len(m.data))
	for key, value := range m.data {
		v := make([]byte, len(value))
		copy(v, value)
		out[key] = v
	}
	return out
}

type memBatch struct {
	store   *MemStore
	entries []entry
}

type entry struct {
	path  string
	value []byte
}

func (b *memBatch) Put(path string, value []byte) {
	v := make([]byte, len(value))
	copy(v, value)
	b.entries = append(b.entries, entry{path: path, value: v})
}

func (b *memBatch) Len() int {
	return len(b.entries)
}

func (b *memBatch) Commit(ctx context.Context) error {
	b.store.mu.Lock()
	defer b.store.mu.Unlock()

	for _, e := range b.entries {
		b.store.data[e.path] = e.value
	}
	b.entries = nil
	return nil
}
