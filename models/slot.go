package models

import "time"

// Slot is an ephemeral bookable interval materialized by the availability
// engine. Slots are computed on demand and never persisted.
type Slot struct {
	Start       time.Time `json:"start"` // UTC, half-open [Start, End)
	End         time.Time `json:"end"`
	IsBooked    bool      `json:"isBooked"`
	Booking     *Booking  `json:"booking,omitempty"`
	IsException bool      `json:"isException"` // true when the slot came from an override window
	LocalStart  string    `json:"localStart"`  // provider-local wall clock, "2006-01-02T15:04"
	LocalEnd    string    `json:"localEnd"`
	Timezone    string    `json:"timezone"`
}
