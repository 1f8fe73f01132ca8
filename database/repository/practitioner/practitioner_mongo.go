package practitionerRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/higordev223/salute-child/database"
	"github.com/higordev223/salute-child/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoPractitionerRepo implements PractitionerRepository using MongoDB.
type MongoPractitionerRepo struct {
	coll *mongo.Collection
}

// NewMongoPractitionerRepo creates a PractitionerRepository backed by the
// "practitioners" collection.
func NewMongoPractitionerRepo() PractitionerRepository {
	coll := database.MongoClient.Database("salutechild").Collection("practitioners")
	return &MongoPractitionerRepo{coll: coll}
}

func (r *MongoPractitionerRepo) GetByID(id int) (*models.Practitioner, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var p models.Practitioner
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&p); err != nil {
		return nil, fmt.Errorf("failed to fetch practitioner %d: %w", id, err)
	}
	return &p, nil
}

// Search filters on the capability rows. The language filter compares against
// the normalized labels stored at ingestion time, so a plain equality match
// suffices here.
func (r *MongoPractitionerRepo) Search(criteria SearchCriteria) ([]models.Practitioner, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	capMatch := bson.M{"serviceId": bson.M{"$in": criteria.ServiceIDs}}
	if criteria.ClinicID > 0 {
		capMatch["clinicId"] = criteria.ClinicID
	}
	filter := bson.M{
		"capabilities": bson.M{"$elemMatch": capMatch},
	}
	if !criteria.Language.IsEmpty() {
		filter["languages"] = string(criteria.Language)
	}

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("practitioner search failed: %w", err)
	}
	defer cursor.Close(ctx)

	var results []models.Practitioner
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode practitioners: %w", err)
	}
	return results, nil
}

func (r *MongoPractitionerRepo) Create(p *models.Practitioner) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	normalizeLanguages(p)
	if _, err := r.coll.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("failed to create practitioner %d: %w", p.ID, err)
	}
	return nil
}

func (r *MongoPractitionerRepo) Update(p *models.Practitioner) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p.UpdatedAt = time.Now()
	normalizeLanguages(p)
	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": p.ID}, p)
	if err != nil {
		return fmt.Errorf("failed to update practitioner %d: %w", p.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("practitioner %d not found", p.ID)
	}
	return nil
}

// normalizeLanguages folds labels once on the way into storage so queries can
// rely on exact equality.
func normalizeLanguages(p *models.Practitioner) {
	for i, l := range p.Languages {
		p.Languages[i] = models.NewLanguageLabel(string(l))
	}
}
