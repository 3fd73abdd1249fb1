package services

import (
	"context"
	"time"

	"habitlog/models"
)

// AssemblerService turns a submitted day plus its staged activities into
// one fixed-width log row. Row width never varies with the staged count;
// unused slots carry the sentinel triple so column alignment holds.
type AssemblerService struct {
	store RowStore
	loc   *time.Location
	now   func() time.Time
}

func NewAssemblerService(store RowStore, loc *time.Location) *AssemblerService {
	return &AssemblerService{store: store, loc: loc, now: time.Now}
}

// AssembleRow lays out the entry in header order: date, ratings, the two
// exercise triples, ten activity triples, insights, capture timestamp.
func (s *AssemblerService) AssembleRow(e models.DailyLogEntry) []interface{} {
	row := make([]interface{}, 0, len(models.Header()))
	row = append(row, e.Date, e.Satisfaction, e.Neuralgia)
	for _, ex := range []models.Exercise{e.Exercise1, e.Exercise2} {
		row = append(row, ex.Type, ex.Mins, ex.Miles)
	}
	for i := 0; i < models.MaxActivitySlots; i++ {
		slot := models.SentinelActivity
		if i < len(e.Activities) {
			slot = e.Activities[i]
		}
		row = append(row, slot.Type, slot.Mins, slot.Notes)
	}
	ts := e.Timestamp
	if ts == "" {
		ts = s.now().In(s.loc).Format("2006-01-02 15:04:05")
	}
	return append(row, e.Insights, ts)
}

// Submit folds the staged activities into the entry, in staging order, and
// appends the assembled row to the log.
func (s *AssemblerService) Submit(ctx context.Context, e models.DailyLogEntry, staged []models.Activity) error {
	if len(staged) > models.MaxActivitySlots {
		staged = staged[:models.MaxActivitySlots]
	}
	e.Activities = staged
	return s.store.AppendRow(ctx, LogTab, s.AssembleRow(e))
}
