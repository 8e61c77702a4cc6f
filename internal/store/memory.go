package store

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory LedgerRepo. Nothing survives the process.
// Setting WriteErr makes every write fail with that error.
type MemoryRepo struct {
	mu       sync.Mutex
	known    []string
	usage    map[string]WordUsageData
	WriteErr error
	LoadErr  error
}

var _ LedgerRepo = (*MemoryRepo)(nil)

// NewMemoryRepo creates an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{usage: make(map[string]WordUsageData)}
}

func (m *MemoryRepo) LoadKnownWords(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return append([]string(nil), m.known...), nil
}

func (m *MemoryRepo) AppendKnownWord(_ context.Context, word string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteErr != nil {
		return m.WriteErr
	}
	for _, w := range m.known {
		if w == word {
			return nil
		}
	}
	m.known = append(m.known, word)
	return nil
}

func (m *MemoryRepo) LoadUsage(_ context.Context) (map[string]WordUsageData, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	out := make(map[string]WordUsageData, len(m.usage))
	for k, v := range m.usage {
		out[k] = v
	}
	return out, nil
}

func (m *MemoryRepo) SaveUsage(_ context.Context, usage map[string]WordUsageData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.usage = make(map[string]WordUsageData, len(usage))
	for k, v := range usage {
		m.usage[k] = v
	}
	return nil
}

// StoredUsage returns a copy of the last successfully saved usage map.
func (m *MemoryRepo) StoredUsage() map[string]WordUsageData {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]WordUsageData, len(m.usage))
	for k, v := range m.usage {
		out[k] = v
	}
	return out
}
