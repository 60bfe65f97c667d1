package models

// ScheduleConfig is a provider's declarative availability setup. It is
// replaced wholesale on update and read-only to the scheduling engine.
type ScheduleConfig struct {
	Timezone         string          `bson:"timezone" json:"timezone"`                 // IANA zone id, e.g. "America/New_York"
	RecurringRules   []RecurringRule `bson:"recurringRules" json:"recurringRules"`
	Overrides        []DayOverride   `bson:"overrides,omitempty" json:"overrides,omitempty"`
	MinNoticeMinutes int             `bson:"minNoticeMinutes" json:"minNoticeMinutes"` // minimum lead time before a slot may be booked
	MaxDaysAhead     int             `bson:"maxDaysAhead" json:"maxDaysAhead"`         // booking horizon in days
}

// RecurringRule is a weekly-recurring local-time availability window cut into
// fixed-duration slots. Multiple rules may cover the same weekday; their slot
// sequences are independent and may overlap.
type RecurringRule struct {
	DaysOfWeek   []int  `bson:"daysOfWeek" json:"daysOfWeek"`     // ISO weekdays, 1=Monday .. 7=Sunday
	StartTime    string `bson:"startTime" json:"startTime"`       // local clock time "HH:MM"
	EndTime      string `bson:"endTime" json:"endTime"`           // local clock time "HH:MM", after StartTime
	SlotDuration int    `bson:"slotDuration" json:"slotDuration"` // minutes, within [5,480]
}

// OverrideWindow is one additional local-time availability window on an
// override date.
type OverrideWindow struct {
	StartTime string `bson:"startTime" json:"startTime"`
	EndTime   string `bson:"endTime" json:"endTime"`
}

// DayOverride is a date-specific override of the recurring rules. It is a
// tagged variant: Blackout suppresses every slot on the date regardless of
// rules or windows; otherwise each window contributes extra slots alongside
// the recurring ones. Several overrides may target the same date; a blackout
// on any of them wins.
type DayOverride struct {
	Date     string           `bson:"date" json:"date"` // provider-local calendar date "YYYY-MM-DD"
	Blackout bool             `bson:"blackout" json:"blackout"`
	Windows  []OverrideWindow `bson:"windows,omitempty" json:"windows,omitempty"`
	Note     string           `bson:"note,omitempty" json:"note,omitempty"`
}
