package services

import (
	"context"
	"errors"
	"sync"

	"habitlog/models"
	"habitlog/utils"
)

// ErrStagingFull rejects staging beyond the ten activity slots a log row
// can hold.
var ErrStagingFull = errors.New("staging list is full (10 activities max)")

// Staging holds pending activities between form interactions until the
// day's submission folds them into the log row. The session id scopes the
// list for the in-memory backend; the sheet backend has a single shared
// list and ignores it.
type Staging interface {
	Add(ctx context.Context, sessionID string, a models.Activity) error
	List(ctx context.Context, sessionID string) ([]models.Activity, error)
	Clear(ctx context.Context, sessionID string) error
}

// MemoryStaging keeps pending activities in process memory, one list per
// session. Explicitly constructed and passed to handlers rather than held
// in a package-level variable.
type MemoryStaging struct {
	mu        sync.RWMutex
	bySession map[string][]models.Activity
}

func NewMemoryStaging() *MemoryStaging {
	return &MemoryStaging{bySession: make(map[string][]models.Activity)}
}

func (m *MemoryStaging) Add(_ context.Context, sessionID string, a models.Activity) error {
	if err := a.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.bySession[sessionID]) >= models.MaxActivitySlots {
		return ErrStagingFull
	}
	m.bySession[sessionID] = append(m.bySession[sessionID], a)
	return nil
}

func (m *MemoryStaging) List(_ context.Context, sessionID string) ([]models.Activity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	staged := m.bySession[sessionID]
	out := make([]models.Activity, len(staged))
	copy(out, staged)
	return out, nil
}

func (m *MemoryStaging) Clear(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.bySession, sessionID)
	return nil
}

// SheetStaging backs the pending list with the Temp_Activities tab, as the
// earlier revisions of the tracker did. All sessions share the one tab.
type SheetStaging struct {
	store RowStore
}

func NewSheetStaging(store RowStore) *SheetStaging {
	return &SheetStaging{store: store}
}

func (s *SheetStaging) Add(ctx context.Context, _ string, a models.Activity) error {
	if err := a.Validate(); err != nil {
		return err
	}
	staged, err := s.List(ctx, "")
	if err != nil {
		return err
	}
	if len(staged) >= models.MaxActivitySlots {
		return ErrStagingFull
	}
	return s.store.AppendRow(ctx, StagingTab, []interface{}{a.Type, a.Mins, a.Notes})
}

func (s *SheetStaging) List(ctx context.Context, _ string) ([]models.Activity, error) {
	rows, err := s.store.ReadAll(ctx, StagingTab)
	if err != nil {
		return nil, err
	}
	var out []models.Activity
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		if len(row) == 0 {
			continue
		}
		a := models.Activity{Type: utils.CellString(cell(row, 0))}
		if a.Type == "" {
			continue
		}
		a.Mins = utils.CoerceInt(cell(row, 1))
		a.Notes = utils.CellString(cell(row, 2))
		out = append(out, a)
	}
	return out, nil
}

func (s *SheetStaging) Clear(ctx context.Context, _ string) error {
	return s.store.ClearRange(ctx, StagingRange)
}

func cell(row []interface{}, i int) interface{} {
	if i >= len(row) {
		return nil
	}
	return row[i]
}
