package sessionRepo

import (
	"github.com/higordev223/salute-child/models"
)

// SessionRepository defines data access for recurring working-hour windows.
type SessionRepository interface {
	// SessionsFor returns the sessions a practitioner holds on a weekday,
	// across all clinics. No sessions means unavailable that day, not an error.
	SessionsFor(practitionerID int, day models.Weekday) ([]models.Session, error)
	// Create inserts a session row (administration workflows).
	Create(s *models.Session) error
	// EnsureIndexes creates the collection's indexes.
	EnsureIndexes() error
}
