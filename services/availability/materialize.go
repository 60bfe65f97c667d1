package availability

import (
	"sort"
	"time"

	"caresched/models"
)

const localClockLayout = "2006-01-02T15:04"

type intervalKey struct {
	start int64
	end   int64
}

// materialize unions rule and override slots across the local dates spanned
// by [from, to), converts each to absolute instants through the provider's
// timezone, drops exact (start, end) duplicates and sorts by start.
//
// Wall-clock times falling into a DST transition resolve through the time
// package's normalization; the slot end is always start plus the configured
// duration.
func materialize(cfg models.ScheduleConfig, from, to time.Time, loc *time.Location) ([]models.Slot, error) {
	fromLocal := from.In(loc)
	toLocal := to.In(loc)
	startDate := time.Date(fromLocal.Year(), fromLocal.Month(), fromLocal.Day(), 0, 0, 0, 0, loc)
	endDate := time.Date(toLocal.Year(), toLocal.Month(), toLocal.Day(), 0, 0, 0, 0, loc)

	winDuration := overrideSlotDuration(cfg)
	seen := make(map[intervalKey]struct{})
	var slots []models.Slot

	for day := startDate; !day.After(endDate); day = day.AddDate(0, 0, 1) {
		dateStr := day.Format("2006-01-02")

		blackout, windows := resolveDay(cfg.Overrides, dateStr)
		if blackout {
			continue
		}

		var wins []minuteWindow
		for _, rule := range cfg.RecurringRules {
			ruleWins, err := expandRule(rule, day)
			if err != nil {
				return nil, err
			}
			wins = append(wins, ruleWins...)
		}
		overrideWins, err := expandWindows(windows, winDuration)
		if err != nil {
			return nil, err
		}
		wins = append(wins, overrideWins...)

		for _, w := range wins {
			localStart := time.Date(day.Year(), day.Month(), day.Day(), w.startMin/60, w.startMin%60, 0, 0, loc)
			start := localStart.UTC()
			end := start.Add(time.Duration(w.endMin-w.startMin) * time.Minute)

			if start.Before(from) || !start.Before(to) {
				continue
			}
			key := intervalKey{start: start.Unix(), end: end.Unix()}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}

			slots = append(slots, models.Slot{
				Start:       start,
				End:         end,
				IsException: w.exception,
				LocalStart:  localStart.Format(localClockLayout),
				LocalEnd:    end.In(loc).Format(localClockLayout),
				Timezone:    cfg.Timezone,
			})
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		return slots[i].Start.Before(slots[j].Start)
	})
	return slots, nil
}

// applyNoticeHorizon drops slots starting sooner than the minimum notice or
// beyond the booking horizon. now must be taken once, in the provider's
// timezone.
func applyNoticeHorizon(slots []models.Slot, now time.Time, minNoticeMinutes, maxDaysAhead int) []models.Slot {
	earliest := now.Add(time.Duration(minNoticeMinutes) * time.Minute)
	latest := now.AddDate(0, 0, maxDaysAhead)

	filtered := slots[:0]
	for _, s := range slots {
		if s.Start.Before(earliest) || s.Start.After(latest) {
			continue
		}
		filtered = append(filtered, s)
	}
	return filtered
}

// annotateBookings marks each slot booked when it strictly overlaps a
// confirmed booking and attaches the first match. Touching endpoints do not
// count as overlap.
func annotateBookings(slots []models.Slot, bookings []models.Booking) {
	for i := range slots {
		for j := range bookings {
			if bookings[j].Overlaps(slots[i].Start, slots[i].End) {
				b := bookings[j]
				slots[i].IsBooked = true
				slots[i].Booking = &b
				break
			}
		}
	}
}
