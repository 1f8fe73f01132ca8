package practitionerRepo

import (
	"github.com/higordev223/salute-child/models"
)

// SearchCriteria defines the capability filter for a practitioner search.
// Language is optional (empty matches any); ClinicID 0 means any clinic. A
// practitioner matches when it offers at least one of ServiceIDs.
type SearchCriteria struct {
	Language   models.LanguageLabel
	ServiceIDs []int
	ClinicID   int
}

// PractitionerRepository defines data access for practitioner reference data.
type PractitionerRepository interface {
	// GetByID retrieves a practitioner by its clinic-system id.
	GetByID(id int) (*models.Practitioner, error)
	// Search returns all practitioners satisfying the capability criteria.
	Search(criteria SearchCriteria) ([]models.Practitioner, error)
	// Create inserts a new practitioner record (administration workflows).
	Create(p *models.Practitioner) error
	// Update replaces an existing practitioner record.
	Update(p *models.Practitioner) error
	// EnsureIndexes creates the collection's indexes.
	EnsureIndexes() error
}
