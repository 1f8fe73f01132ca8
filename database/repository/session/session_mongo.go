package sessionRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/higordev223/salute-child/database"
	"github.com/higordev223/salute-child/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoSessionRepo implements SessionRepository using MongoDB.
type MongoSessionRepo struct {
	coll *mongo.Collection
}

// NewMongoSessionRepo creates a SessionRepository backed by the
// "clinic_sessions" collection.
func NewMongoSessionRepo() SessionRepository {
	coll := database.MongoClient.Database("salutechild").Collection("clinic_sessions")
	return &MongoSessionRepo{coll: coll}
}

func (r *MongoSessionRepo) SessionsFor(practitionerID int, day models.Weekday) ([]models.Session, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{
		"practitionerId": practitionerID,
		"day":            string(day),
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sessions for practitioner %d on %s: %w", practitionerID, day, err)
	}
	defer cursor.Close(ctx)

	var sessions []models.Session
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, fmt.Errorf("failed to decode sessions: %w", err)
	}
	return sessions, nil
}

// Create validates and stores a session row. The weekday is normalized on the
// way in so SessionsFor can match on the fixed sun..sat key set.
func (r *MongoSessionRepo) Create(s *models.Session) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	day, err := models.NormalizeWeekday(string(s.Day))
	if err != nil {
		return err
	}
	s.Day = day
	if err := s.Validate(); err != nil {
		return fmt.Errorf("invalid session: %w", err)
	}
	if _, err := r.coll.InsertOne(ctx, s); err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}
