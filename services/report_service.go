package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"habitlog/models"
	"habitlog/utils"
)

// HistoryRow is one parsed log row. Numeric cells that fail to parse come
// back as 0.
type HistoryRow struct {
	Date         string            `json:"date"`
	Satisfaction int               `json:"satisfaction"`
	Neuralgia    int               `json:"neuralgia"`
	Exercise1    models.Exercise   `json:"exercise_1"`
	Exercise2    models.Exercise   `json:"exercise_2"`
	Activities   []models.Activity `json:"activities"`
	Insights     string            `json:"insights"`
	Timestamp    string            `json:"timestamp"`
}

// ExercisePoint and ActivityPoint are the long-form rows the wide exercise
// and activity column groups unpivot into. Sentinel categories are dropped
// before either table is built.
type ExercisePoint struct {
	Date  string  `json:"date"`
	Type  string  `json:"type"`
	Mins  float64 `json:"mins"`
	Miles float64 `json:"miles"`
}

type ActivityPoint struct {
	Date  string `json:"date"`
	Type  string `json:"type"`
	Mins  int    `json:"mins"`
	Notes string `json:"notes"`
}

type CategoryMinutes struct {
	Category string  `json:"category"`
	Mins     float64 `json:"mins"`
}

type RatingPoint struct {
	Date         string `json:"date"`
	Satisfaction int    `json:"satisfaction"`
	Neuralgia    int    `json:"neuralgia"`
}

type MonthlyReport struct {
	Month             string            `json:"month"`
	Rows              []HistoryRow      `json:"rows"`
	Exercises         []ExercisePoint   `json:"exercises"`
	Activities        []ActivityPoint   `json:"activities"`
	MinutesByCategory []CategoryMinutes `json:"minutes_by_category"`
	Ratings           []RatingPoint     `json:"ratings"`
}

// ReportService reads the full history on every render and reshapes it for
// the charts. Nothing is cached between renders.
type ReportService struct {
	store RowStore
}

func NewReportService(store RowStore) *ReportService {
	return &ReportService{store: store}
}

// Monthly returns all rows whose date falls in the named month, any year.
// Rows with unparseable dates never match.
func (s *ReportService) Monthly(ctx context.Context, month string) (*MonthlyReport, error) {
	raw, err := s.store.ReadAll(ctx, LogTab)
	if err != nil {
		return nil, err
	}

	rep := &MonthlyReport{Month: month}
	for i, cells := range raw {
		if i == 0 {
			continue // header
		}
		row := parseHistoryRow(cells)
		t, err := time.Parse("2006-01-02", row.Date)
		if err != nil || !strings.EqualFold(t.Month().String(), month) {
			continue
		}
		rep.Rows = append(rep.Rows, row)
		rep.Ratings = append(rep.Ratings, RatingPoint{
			Date:         row.Date,
			Satisfaction: row.Satisfaction,
			Neuralgia:    row.Neuralgia,
		})
		for _, ex := range []models.Exercise{row.Exercise1, row.Exercise2} {
			if ex.Type == "" || ex.Type == models.SentinelActivity.Type {
				continue
			}
			rep.Exercises = append(rep.Exercises, ExercisePoint{
				Date: row.Date, Type: ex.Type, Mins: ex.Mins, Miles: ex.Miles,
			})
		}
		for _, a := range row.Activities {
			if a.Type == "" || a.IsSentinel() {
				continue
			}
			rep.Activities = append(rep.Activities, ActivityPoint{
				Date: row.Date, Type: a.Type, Mins: a.Mins, Notes: a.Notes,
			})
		}
	}

	rep.MinutesByCategory = totalMinutes(rep.Exercises, rep.Activities)
	return rep, nil
}

func parseHistoryRow(cells []interface{}) HistoryRow {
	row := HistoryRow{
		Date:         utils.CellString(cell(cells, 0)),
		Satisfaction: utils.CoerceInt(cell(cells, 1)),
		Neuralgia:    utils.CoerceInt(cell(cells, 2)),
	}
	row.Exercise1 = parseExercise(cells, 3)
	row.Exercise2 = parseExercise(cells, 6)
	for i := 0; i < models.MaxActivitySlots; i++ {
		base := 9 + i*3
		row.Activities = append(row.Activities, models.Activity{
			Type:  utils.CellString(cell(cells, base)),
			Mins:  utils.CoerceInt(cell(cells, base+1)),
			Notes: utils.CellString(cell(cells, base+2)),
		})
	}
	row.Insights = utils.CellString(cell(cells, 39))
	row.Timestamp = utils.CellString(cell(cells, 40))
	return row
}

func parseExercise(cells []interface{}, base int) models.Exercise {
	return models.Exercise{
		Type:  utils.CellString(cell(cells, base)),
		Mins:  utils.CoerceFloat(cell(cells, base+1)),
		Miles: utils.CoerceFloat(cell(cells, base+2)),
	}
}

// totalMinutes sums minutes per category across exercises and activities,
// sorted by name so chart output is stable.
func totalMinutes(exs []ExercisePoint, acts []ActivityPoint) []CategoryMinutes {
	sums := map[string]float64{}
	for _, e := range exs {
		sums[e.Type] += e.Mins
	}
	for _, a := range acts {
		sums[a.Type] += float64(a.Mins)
	}
	out := make([]CategoryMinutes, 0, len(sums))
	for cat, mins := range sums {
		out = append(out, CategoryMinutes{Category: cat, Mins: mins})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}
