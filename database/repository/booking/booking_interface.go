package bookingRepo

import (
	"context"
	"errors"
	"time"

	"caresched/models"
)

var (
	// ErrNotFound is returned when no booking matches the lookup.
	ErrNotFound = errors.New("booking not found")
	// ErrOverlap is returned by CreateIfNoOverlap when a confirmed booking
	// already covers part of the requested interval.
	ErrOverlap = errors.New("overlapping booking exists")
	// ErrNotCancellable is returned when a cancel hits a booking that is no
	// longer in the booked state.
	ErrNotCancellable = errors.New("booking is not cancellable")
)

// BookingRepository defines the interface for booking data access.
type BookingRepository interface {
	// GetByID retrieves a booking by its unique ID.
	GetByID(id string) (*models.Booking, error)
	// FindConfirmedInRange returns bookings with status=booked for the
	// provider whose interval intersects [from, to), ordered by start.
	FindConfirmedInRange(ctx context.Context, providerID string, from, to time.Time) ([]models.Booking, error)
	// ListByProvider returns all bookings for the provider intersecting
	// [from, to), any status, ordered by start.
	ListByProvider(ctx context.Context, providerID string, from, to time.Time) ([]models.Booking, error)
	// CreateIfNoOverlap re-checks the overlap invariant and inserts the
	// booking inside one transaction. Returns ErrOverlap when a confirmed
	// booking already intersects the interval.
	CreateIfNoOverlap(ctx context.Context, booking *models.Booking) error
	// Cancel transitions booked→cancelled with a compare-and-swap on status,
	// stamping CancelledAt. Returns ErrNotFound or ErrNotCancellable.
	Cancel(id, reason string) (*models.Booking, error)
	// MarkElapsedCompleted flips booked bookings whose end is before the
	// given instant to completed, returning the number updated.
	MarkElapsedCompleted(before time.Time) (int64, error)
}
