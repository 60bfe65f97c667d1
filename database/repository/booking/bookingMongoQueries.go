// File: database/repository/booking/bookingMongoQueries.go
package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"caresched/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// overlapFilter matches bookings intersecting [from, to) under strict
// half-open semantics: booking.start < to AND booking.end > from.
func overlapFilter(providerID string, from, to time.Time) bson.M {
	return bson.M{
		"provider_id": providerID,
		"start":       bson.M{"$lt": to},
		"end":         bson.M{"$gt": from},
	}
}

func (r *MongoBookingRepo) findInRange(ctx context.Context, filter bson.M) ([]models.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "start", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

// FindConfirmedInRange returns status=booked bookings for the provider whose
// interval intersects [from, to).
func (r *MongoBookingRepo) FindConfirmedInRange(ctx context.Context, providerID string, from, to time.Time) ([]models.Booking, error) {
	filter := overlapFilter(providerID, from, to)
	filter["status"] = models.BookingStatusBooked
	return r.findInRange(ctx, filter)
}

// ListByProvider returns bookings of any status for the provider intersecting
// [from, to).
func (r *MongoBookingRepo) ListByProvider(ctx context.Context, providerID string, from, to time.Time) ([]models.Booking, error) {
	return r.findInRange(ctx, overlapFilter(providerID, from, to))
}
