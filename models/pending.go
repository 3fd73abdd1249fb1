package models

import "errors"

// Activity types offered by the staging form. "None" is the padding
// sentinel and cannot be staged.
var ActivityTypes = []string{
	"Stretching", "Walking", "Physical Therapy", "Meditation",
	"Housework", "Errands", "Social", "Hobby", "Rest", "Other",
}

// Activity is one staged daily activity. Staged activities live in the
// staging store until the day's submission folds them into the log row, or
// until the user clears the list.
type Activity struct {
	Type  string `json:"type" form:"type"`
	Mins  int    `json:"mins" form:"mins"`
	Notes string `json:"notes" form:"notes"`
}

// SentinelActivity pads unused activity slots in the log row.
var SentinelActivity = Activity{Type: "None", Mins: 0, Notes: ""}

func (a Activity) IsSentinel() bool { return a.Type == SentinelActivity.Type }

// Validate rejects activities that may not enter staging. The sentinel type
// is refused here, at staging entry, not at row assembly.
func (a Activity) Validate() error {
	if a.Type == "" || a.IsSentinel() {
		return errors.New("activity type is required")
	}
	if a.Mins < 0 {
		return errors.New("minutes cannot be negative")
	}
	return nil
}
