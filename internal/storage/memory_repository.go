package storage

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryRepository keeps entries in a map. It backs tests and dry runs.
type MemoryRepository struct {
	mu      sync.RWMutex
	entries map[string]Entry
	writes  int
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{entries: make(map[string]Entry)}
}

func (r *MemoryRepository) Get(_ context.Context, key string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[key]
	if !ok {
		return "", ErrNotFound
	}
	return e.Value, nil
}

func (r *MemoryRepository) Put(_ context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[key] = Entry{Key: key, Value: value, UpdatedAt: mustTime(time.Now())}
	r.writes++
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[key]; !ok {
		return ErrNotFound
	}
	delete(r.entries, key)
	return nil
}

func (r *MemoryRepository) List(_ context.Context, filter ListFilter) ([]Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Entry, 0, len(r.entries))
	for k, e := range r.entries {
		if strings.HasPrefix(k, filter.Prefix) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			return []Entry{}, nil
		}
		out = out[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(out) {
		out = out[:filter.Limit]
	}
	return out, nil
}

// Writes counts successful Put calls.
func (r *MemoryRepository) Writes() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.writes
}
