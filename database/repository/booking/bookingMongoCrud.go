// File: database/repository/booking/bookingMongoCrud.go
package bookingRepo

import (
	"fmt"
	"time"

	"caresched/models"

	"go.mongodb.org/mongo-driver/bson"
)

// Cancel transitions booked→cancelled with a compare-and-swap on status. A
// cancel racing another cancel (or the completion sweep) loses cleanly: the
// filter no longer matches and the caller gets ErrNotCancellable.
func (r *MongoBookingRepo) Cancel(id, reason string) (*models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	filter := bson.M{"id": id, "status": models.BookingStatusBooked}
	update := bson.M{"$set": bson.M{
		"status":              models.BookingStatusCancelled,
		"cancelled_at":        now,
		"cancellation_reason": reason,
		"updated_at":          now,
	}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return nil, fmt.Errorf("failed to cancel booking %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		// Distinguish a missing booking from one in a terminal state.
		existing, getErr := r.GetByID(id)
		if getErr != nil {
			return nil, getErr
		}
		return existing, ErrNotCancellable
	}
	return r.GetByID(id)
}

// MarkElapsedCompleted flips booked bookings whose end has passed to
// completed. Run by the background sweeper, not the booking write path.
func (r *MongoBookingRepo) MarkElapsedCompleted(before time.Time) (int64, error) {
	ctx, cancel := newContext(15 * time.Second)
	defer cancel()

	filter := bson.M{
		"status": models.BookingStatusBooked,
		"end":    bson.M{"$lt": before},
	}
	update := bson.M{"$set": bson.M{
		"status":     models.BookingStatusCompleted,
		"updated_at": time.Now(),
	}}

	result, err := r.coll.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("failed to complete elapsed bookings: %w", err)
	}
	return result.ModifiedCount, nil
}
