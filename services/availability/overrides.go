package availability

import (
	"caresched/models"
)

// fallbackSlotDuration is used for override windows when the provider has no
// recurring rules to borrow a duration from.
const fallbackSlotDuration = 30

// resolveDay collects every override targeting the given local date. A
// blackout on any of them suppresses the whole date; otherwise the windows of
// all matching overrides are gathered in declaration order.
func resolveDay(overrides []models.DayOverride, date string) (blackout bool, windows []models.OverrideWindow) {
	for _, o := range overrides {
		if o.Date != date {
			continue
		}
		if o.Blackout {
			return true, nil
		}
		windows = append(windows, o.Windows...)
	}
	return false, windows
}

// overrideSlotDuration picks the slot duration for override windows: the
// first configured rule's duration, or the fallback when no rules exist.
func overrideSlotDuration(cfg models.ScheduleConfig) int {
	if len(cfg.RecurringRules) > 0 {
		return cfg.RecurringRules[0].SlotDuration
	}
	return fallbackSlotDuration
}

// expandWindows cuts override windows into candidate slots. These augment the
// recurring-rule slots for the date; they never replace or clip them.
func expandWindows(windows []models.OverrideWindow, duration int) ([]minuteWindow, error) {
	var wins []minuteWindow
	for _, w := range windows {
		start, err := parseClock(w.StartTime)
		if err != nil {
			return nil, err
		}
		end, err := parseClock(w.EndTime)
		if err != nil {
			return nil, err
		}
		for cur := start; cur+duration <= end; cur += duration {
			wins = append(wins, minuteWindow{startMin: cur, endMin: cur + duration, exception: true})
		}
	}
	return wins, nil
}
