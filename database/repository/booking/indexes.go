package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the booking indexes. The partial unique index is the
// ledger's core invariant: at most one active booking per
// (practitionerId, date, start). Cancelled bookings drop out of the index, so
// cancellation frees the key without deleting the record.
func (r *MongoBookingRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys: bson.D{
				{Key: "practitionerId", Value: 1},
				{Key: "date", Value: 1},
				{Key: "start", Value: 1},
			},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"active": true}).
				SetName("unique_active_slot"),
		},
		{
			Keys:    bson.D{{Key: "patientId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetName("patient_date_idx"),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}
	return nil
}
