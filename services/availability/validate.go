package availability

import (
	"time"

	"caresched/models"
	"caresched/utils"
)

// Slot duration bounds in minutes, shared with the booking write path.
const (
	MinSlotMinutes = 5
	MaxSlotMinutes = 480
)

// ValidateScheduleConfig is the pure validation run at the start of every
// schedule write. Nothing is persisted, and no hidden hook fires, before it
// passes.
func ValidateScheduleConfig(cfg models.ScheduleConfig) error {
	if _, err := time.LoadLocation(cfg.Timezone); err != nil || cfg.Timezone == "" {
		return utils.NewValidationError("timezone must be a valid IANA zone id")
	}
	if cfg.MinNoticeMinutes < 0 {
		return utils.NewValidationError("minNoticeMinutes must not be negative")
	}
	if cfg.MaxDaysAhead < 1 {
		return utils.NewValidationError("maxDaysAhead must be at least 1")
	}

	for i, rule := range cfg.RecurringRules {
		if len(rule.DaysOfWeek) == 0 {
			return utils.NewValidationError("rule %d: daysOfWeek must not be empty", i)
		}
		for _, d := range rule.DaysOfWeek {
			if d < 1 || d > 7 {
				return utils.NewValidationError("rule %d: weekday %d outside 1..7", i, d)
			}
		}
		start, err := parseClock(rule.StartTime)
		if err != nil {
			return utils.NewValidationError("rule %d: %v", i, err)
		}
		end, err := parseClock(rule.EndTime)
		if err != nil {
			return utils.NewValidationError("rule %d: %v", i, err)
		}
		if start >= end {
			return utils.NewValidationError("rule %d: startTime must be before endTime", i)
		}
		if rule.SlotDuration < MinSlotMinutes || rule.SlotDuration > MaxSlotMinutes {
			return utils.NewValidationError("rule %d: slotDuration must be between %d and %d minutes", i, MinSlotMinutes, MaxSlotMinutes)
		}
	}

	for i, o := range cfg.Overrides {
		if _, err := time.Parse("2006-01-02", o.Date); err != nil {
			return utils.NewValidationError("override %d: date must be YYYY-MM-DD", i)
		}
		for j, w := range o.Windows {
			start, err := parseClock(w.StartTime)
			if err != nil {
				return utils.NewValidationError("override %d window %d: %v", i, j, err)
			}
			end, err := parseClock(w.EndTime)
			if err != nil {
				return utils.NewValidationError("override %d window %d: %v", i, j, err)
			}
			if start >= end {
				return utils.NewValidationError("override %d window %d: startTime must be before endTime", i, j)
			}
		}
	}
	return nil
}
