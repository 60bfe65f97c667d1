package booking

import (
	"time"

	"caresched/utils"
)

// Booking duration bounds in minutes.
const (
	MinBookingMinutes = 5
	MaxBookingMinutes = 480
)

// validateInterval runs the purely local checks on a proposed [start, end).
// It touches no store; a failure here means no work happened at all.
func validateInterval(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return utils.NewValidationError("start and end are required")
	}
	if !end.After(start) {
		return utils.NewValidationError("end must be after start")
	}
	dur := end.Sub(start)
	if dur < MinBookingMinutes*time.Minute || dur > MaxBookingMinutes*time.Minute {
		return utils.NewValidationError("booking duration must be between %d and %d minutes", MinBookingMinutes, MaxBookingMinutes)
	}
	return nil
}
