package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/higordev223/salute-child/database"
	"github.com/higordev223/salute-child/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo creates a BookingRepository backed by the "bookings"
// collection.
func NewMongoBookingRepo() BookingRepository {
	coll := database.MongoClient.Database("salutechild").Collection("bookings")
	return &MongoBookingRepo{coll: coll}
}

// Create commits the booking with one InsertOne. The partial unique index on
// (practitionerId, date, start) over active documents makes the insert itself
// the conflict check; there is no separate read that a concurrent writer
// could slip between.
func (r *MongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	booking.Active = booking.IsActive()
	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateBooking
		}
		return fmt.Errorf("failed to insert booking: %w", err)
	}
	return nil
}

func (r *MongoBookingRepo) GetByID(bookingID string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var b models.Booking
	if err := r.coll.FindOne(ctx, bson.M{"id": bookingID}).Decode(&b); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to fetch booking %s: %w", bookingID, err)
	}
	return &b, nil
}

func (r *MongoBookingRepo) HasActiveAt(practitionerID int, date string, start int) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{
		"practitionerId": practitionerID,
		"date":           date,
		"start":          start,
		"active":         true,
	}
	count, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("failed to count active bookings: %w", err)
	}
	return count > 0, nil
}

func (r *MongoBookingRepo) Confirm(bookingID string) error {
	return r.transition(bookingID, models.BookingStatusPending, models.BookingStatusConfirmed, true)
}

func (r *MongoBookingRepo) Cancel(bookingID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"status": models.BookingStatusCancelled,
		"active": false,
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": bookingID}, update)
	if err != nil {
		return fmt.Errorf("failed to cancel booking %s: %w", bookingID, err)
	}
	if res.MatchedCount == 0 {
		return ErrBookingNotFound
	}
	return nil
}

func (r *MongoBookingRepo) transition(bookingID, from, to string, active bool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{"id": bookingID, "status": from}
	update := bson.M{"$set": bson.M{"status": to, "active": active}}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to transition booking %s to %s: %w", bookingID, to, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("booking %s not in %s state", bookingID, from)
	}
	return nil
}
