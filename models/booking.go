package models

import "time"

// Booking status values. Completed and no-show are terminal states written by
// the background sweeper, never by the booking write path.
const (
	BookingStatusBooked    = "booked"
	BookingStatusCancelled = "cancelled"
	BookingStatusCompleted = "completed"
	BookingStatusNoShow    = "no-show"
)

// Booking represents a confirmed appointment record.
type Booking struct {
	ID                 string     `bson:"id" json:"id"`
	ProviderID         string     `bson:"provider_id" json:"providerId"`
	PatientID          string     `bson:"patient_id" json:"patientId"`
	Start              time.Time  `bson:"start" json:"start"` // UTC, half-open [Start, End)
	End                time.Time  `bson:"end" json:"end"`
	Status             string     `bson:"status" json:"status"`
	CancelledAt        *time.Time `bson:"cancelled_at,omitempty" json:"cancelledAt,omitempty"`
	CancellationReason string     `bson:"cancellation_reason,omitempty" json:"cancellationReason,omitempty"`
	CreatedAt          time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt          time.Time  `bson:"updated_at" json:"updatedAt"`
}

// Overlaps reports whether the booking shares any time with [start, end)
// under strict half-open semantics. Touching endpoints do not overlap.
func (b Booking) Overlaps(start, end time.Time) bool {
	return start.Before(b.End) && end.After(b.Start)
}
