package practitionerRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes backing capability lookups.
func (r *MongoPractitionerRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// Multikey index over capability rows for the service/clinic filter.
		{
			Keys: bson.D{
				{Key: "capabilities.serviceId", Value: 1},
				{Key: "capabilities.clinicId", Value: 1},
			},
			Options: options.Index().SetName("capability_service_clinic_idx"),
		},
		{
			Keys:    bson.D{{Key: "languages", Value: 1}},
			Options: options.Index().SetName("languages_idx"),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create practitioner indexes: %w", err)
	}
	return nil
}
