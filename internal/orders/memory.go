package orders

import (
	"context"
	"sort"
	"sync"
)

// MemoryHistory keeps order history for the lifetime of the process.
type MemoryHistory struct {
	mu      sync.RWMutex
	byOwner map[string][]OrderRecord
	ids     map[string]struct{}
}

func NewMemoryHistory() *MemoryHistory {
	return &MemoryHistory{
		byOwner: make(map[string][]OrderRecord),
		ids:     make(map[string]struct{}),
	}
}

func (m *MemoryHistory) Append(_ context.Context, record OrderRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.ids[record.ID]; exists {
		return ErrDuplicateOrderID
	}
	m.ids[record.ID] = struct{}{}
	m.byOwner[record.Owner] = append(m.byOwner[record.Owner], record)
	return nil
}

func (m *MemoryHistory) ExistsID(_ context.Context, id string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, exists := m.ids[id]
	return exists, nil
}

func (m *MemoryHistory) ListAll(_ context.Context, owner string) ([]OrderRecord, error) {
	m.mu.RLock()
	records := m.byOwner[owner]
	out := make([]OrderRecord, len(records))
	// reverse insertion order breaks CreatedAt ties
	for i, record := range records {
		out[len(records)-1-i] = record
	}
	m.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
