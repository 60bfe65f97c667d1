package booking

import (
	"context"
	"time"

	"caresched/models"
)

// CreateBookingRequest is the write-path input: a single candidate interval
// in UTC.
type CreateBookingRequest struct {
	ProviderID string    `json:"providerId"`
	PatientID  string    `json:"patientId"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
}

// BookingService is the booking write path plus read access to booking
// records.
type BookingService interface {
	// CreateBooking validates the interval, notice and horizon rules, then
	// commits the booking only if no confirmed booking overlaps it.
	CreateBooking(ctx context.Context, req CreateBookingRequest) (*models.Booking, error)
	// CancelBooking transitions booked→cancelled, stamping CancelledAt.
	CancelBooking(ctx context.Context, bookingID, reason string) (*models.Booking, error)
	// GetBooking retrieves a single booking by ID.
	GetBooking(ctx context.Context, bookingID string) (*models.Booking, error)
	// ListProviderBookings returns the provider's bookings intersecting
	// [from, to).
	ListProviderBookings(ctx context.Context, providerID string, from, to time.Time) ([]models.Booking, error)
}
