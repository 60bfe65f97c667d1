package availability

import (
	"fmt"
	"slices"
	"time"

	"caresched/models"
)

// minuteWindow is one candidate slot in provider-local wall-clock minutes
// from midnight. Keeping the expansion in minutes sidesteps DST arithmetic:
// conversion to absolute instants happens once, at materialization.
type minuteWindow struct {
	startMin  int
	endMin    int
	exception bool
}

// parseClock parses a local "HH:MM" clock time into minutes from midnight.
func parseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// isoWeekday maps Go's Sunday-based weekday onto ISO numbering, 1=Monday ..
// 7=Sunday.
func isoWeekday(t time.Time) int {
	if wd := int(t.Weekday()); wd != 0 {
		return wd
	}
	return 7
}

// expandRule cuts one recurring rule into fixed-duration candidate slots for
// the given local date. A date whose weekday is outside the rule's set yields
// nothing; a trailing remainder shorter than the slot duration is dropped,
// never emitted short.
func expandRule(rule models.RecurringRule, day time.Time) ([]minuteWindow, error) {
	if !slices.Contains(rule.DaysOfWeek, isoWeekday(day)) {
		return nil, nil
	}
	start, err := parseClock(rule.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := parseClock(rule.EndTime)
	if err != nil {
		return nil, err
	}

	var wins []minuteWindow
	for cur := start; cur+rule.SlotDuration <= end; cur += rule.SlotDuration {
		wins = append(wins, minuteWindow{startMin: cur, endMin: cur + rule.SlotDuration})
	}
	return wins, nil
}
