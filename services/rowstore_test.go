package services

import (
	"context"
	"sync"
)

// memRowStore is the in-memory RowStore used across the service tests.
type memRowStore struct {
	mu   sync.Mutex
	tabs map[string][][]interface{}
}

func newMemRowStore() *memRowStore {
	return &memRowStore{tabs: make(map[string][][]interface{})}
}

func (m *memRowStore) AppendRow(_ context.Context, tab string, values []interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tabs[tab] = append(m.tabs[tab], values)
	return nil
}

func (m *memRowStore) ReadAll(_ context.Context, tab string) ([][]interface{}, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rows := m.tabs[tab]
	out := make([][]interface{}, len(rows))
	copy(out, rows)
	return out, nil
}

// ClearRange only has to understand the staging range, like the real
// backend's fixed-address clear.
func (m *memRowStore) ClearRange(_ context.Context, rangeRef string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rangeRef == StagingRange {
		if rows := m.tabs[StagingTab]; len(rows) > 1 {
			m.tabs[StagingTab] = rows[:1]
		}
	}
	return nil
}

func stagingHeaderRow() []interface{} {
	row := make([]interface{}, len(StagingHeader))
	for i, h := range StagingHeader {
		row[i] = h
	}
	return row
}
