package availability

import (
	"testing"

	"caresched/models"
)

func validConfig() models.ScheduleConfig {
	return models.ScheduleConfig{
		Timezone: "Europe/London",
		RecurringRules: []models.RecurringRule{
			{DaysOfWeek: []int{1, 3, 5}, StartTime: "08:00", EndTime: "12:00", SlotDuration: 20},
		},
		Overrides: []models.DayOverride{
			{Date: "2026-06-01", Blackout: true},
			{Date: "2026-06-02", Windows: []models.OverrideWindow{{StartTime: "14:00", EndTime: "16:00"}}},
		},
		MinNoticeMinutes: 120,
		MaxDaysAhead:     60,
	}
}

func TestValidateScheduleConfig(t *testing.T) {
	if err := ValidateScheduleConfig(validConfig()); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*models.ScheduleConfig)
	}{
		{"empty timezone", func(c *models.ScheduleConfig) { c.Timezone = "" }},
		{"bogus timezone", func(c *models.ScheduleConfig) { c.Timezone = "Mars/Olympus" }},
		{"negative notice", func(c *models.ScheduleConfig) { c.MinNoticeMinutes = -1 }},
		{"zero horizon", func(c *models.ScheduleConfig) { c.MaxDaysAhead = 0 }},
		{"empty weekdays", func(c *models.ScheduleConfig) { c.RecurringRules[0].DaysOfWeek = nil }},
		{"weekday zero", func(c *models.ScheduleConfig) { c.RecurringRules[0].DaysOfWeek = []int{0} }},
		{"weekday eight", func(c *models.ScheduleConfig) { c.RecurringRules[0].DaysOfWeek = []int{8} }},
		{"malformed start clock", func(c *models.ScheduleConfig) { c.RecurringRules[0].StartTime = "8am" }},
		{"start after end", func(c *models.ScheduleConfig) {
			c.RecurringRules[0].StartTime = "12:00"
			c.RecurringRules[0].EndTime = "08:00"
		}},
		{"start equals end", func(c *models.ScheduleConfig) { c.RecurringRules[0].EndTime = "08:00" }},
		{"duration too short", func(c *models.ScheduleConfig) { c.RecurringRules[0].SlotDuration = 4 }},
		{"duration too long", func(c *models.ScheduleConfig) { c.RecurringRules[0].SlotDuration = 481 }},
		{"malformed override date", func(c *models.ScheduleConfig) { c.Overrides[0].Date = "June 1st" }},
		{"inverted override window", func(c *models.ScheduleConfig) {
			c.Overrides[1].Windows[0] = models.OverrideWindow{StartTime: "16:00", EndTime: "14:00"}
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)
			if err := ValidateScheduleConfig(cfg); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}
