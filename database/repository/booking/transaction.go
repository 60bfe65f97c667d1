package bookingRepo

import (
	"context"
	"fmt"

	"caresched/models"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

// CreateIfNoOverlap re-validates the overlap invariant and inserts the
// booking inside a single multi-document transaction, so two concurrent
// requests for intersecting intervals cannot both commit. The overlap count
// and the insert share one snapshot isolation boundary.
func (r *MongoBookingRepo) CreateIfNoOverlap(ctx context.Context, booking *models.Booking) error {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnOpts := options.Transaction().
		SetReadConcern(readconcern.Snapshot()).
		SetWriteConcern(writeconcern.Majority())

	txnFn := func(sc mongo.SessionContext) (interface{}, error) {
		filter := overlapFilter(booking.ProviderID, booking.Start, booking.End)
		filter["status"] = models.BookingStatusBooked

		count, err := r.coll.CountDocuments(sc, filter)
		if err != nil {
			return nil, fmt.Errorf("overlap check failed: %w", err)
		}
		if count > 0 {
			return nil, ErrOverlap
		}

		if _, err := r.coll.InsertOne(sc, booking); err != nil {
			return nil, fmt.Errorf("insert booking failed: %w", err)
		}
		return nil, nil
	}

	if _, err := sess.WithTransaction(ctx, txnFn, txnOpts); err != nil {
		return err
	}
	return nil
}
