package models

import "strconv"

// Exercise types offered by the form. "None" marks an unused exercise block.
var ExerciseTypes = []string{"None", "Swim", "Run", "Cycle", "Yoga", "Other"}

type Exercise struct {
	Type  string  `json:"type" form:"type"`
	Mins  float64 `json:"mins" form:"mins"`
	Miles float64 `json:"miles" form:"miles"`
}

// DailyLogEntry is one submitted day. It is appended to the log sheet once
// and never updated; duplicate dates are allowed and simply appended.
type DailyLogEntry struct {
	Date         string     `json:"date"`
	Satisfaction int        `json:"satisfaction"`
	Neuralgia    int        `json:"neuralgia"`
	Exercise1    Exercise   `json:"exercise_1"`
	Exercise2    Exercise   `json:"exercise_2"`
	Activities   []Activity `json:"activities"`
	Insights     string     `json:"insights"`
	Timestamp    string     `json:"timestamp"`
}

// MaxActivitySlots is the number of activity column triples in the sheet.
// Days with fewer staged activities are padded with the sentinel so every
// row has the same width.
const MaxActivitySlots = 10

// Header returns the log sheet's header row. Column order is the contract
// between the assembler and the report reader; both index into it.
func Header() []string {
	h := []string{
		"Date", "Satisfaction", "Neuralgia",
		"Ex1_Type", "Ex1_Mins", "Ex1_Miles",
		"Ex2_Type", "Ex2_Mins", "Ex2_Miles",
	}
	for i := 1; i <= MaxActivitySlots; i++ {
		n := strconv.Itoa(i)
		h = append(h, "Act"+n+"_Type", "Act"+n+"_Mins", "Act"+n+"_Notes")
	}
	return append(h, "Insights", "Timestamp")
}
