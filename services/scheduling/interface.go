package scheduling

import (
	"math/rand"
	"sync"
	"time"

	bookingRepo "github.com/higordev223/salute-child/database/repository/booking"
	practitionerRepo "github.com/higordev223/salute-child/database/repository/practitioner"
	sessionRepo "github.com/higordev223/salute-child/database/repository/session"
	"github.com/higordev223/salute-child/models"
)

// SchedulingService is the appointment matching-and-assignment engine.
type SchedulingService interface {
	// MatchPractitioners resolves the candidate pool for a request: every
	// practitioner offering at least one requested service (at the clinic,
	// when given) and speaking the requested language.
	MatchPractitioners(req models.AppointmentRequest) ([]int, error)
	// SlotMenuForDay merges and deduplicates the bookable slots of all
	// candidates on a date into the client-facing morning/afternoon buckets.
	SlotMenuForDay(candidates []int, date string) (models.SlotMenu, error)
	// GenerateSlots enumerates one practitioner's quantized start times on a
	// date, ordered ascending.
	GenerateSlots(practitionerID int, date string) ([]models.TimeSlot, error)
	// Assign binds one practitioner and one slot to the request and commits
	// the booking durably.
	Assign(req models.AppointmentRequest) (*models.Booking, error)
	// CancelBooking releases a booking's slot key; consumed by the external
	// cancellation workflow.
	CancelBooking(bookingID string) error
	// LanguagesForService lists the distinct languages spoken by the
	// practitioners offering the services at a clinic.
	LanguagesForService(clinicID int, serviceIDs []int) ([]models.LanguageLabel, error)
	// QuoteCharges totals the practitioner's charges for the selected
	// services at a clinic.
	QuoteCharges(practitionerID, clinicID int, serviceIDs []int) (float64, error)
}

// Rand is the engine's tie-break randomness source. Injectable so tests can
// force a specific pick.
type Rand interface {
	Intn(n int) int
}

// lockedRand makes a math/rand source safe for concurrent requests.
type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *lockedRand) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Intn(n)
}

// DefaultSchedulingEngine implements SchedulingService on top of the typed
// repositories. Every operation is a pure function of its inputs plus the
// ledger's durable state; the engine holds no mutable state of its own beyond
// the randomness source.
type DefaultSchedulingEngine struct {
	Practitioners practitionerRepo.PractitionerRepository
	Sessions      sessionRepo.SessionRepository
	Bookings      bookingRepo.BookingRepository
	Rand          Rand
}

// NewEngine wires a scheduling engine with a seeded randomness source.
func NewEngine(
	practitioners practitionerRepo.PractitionerRepository,
	sessions sessionRepo.SessionRepository,
	bookings bookingRepo.BookingRepository,
) *DefaultSchedulingEngine {
	return &DefaultSchedulingEngine{
		Practitioners: practitioners,
		Sessions:      sessions,
		Bookings:      bookings,
		Rand:          &lockedRand{r: rand.New(rand.NewSource(time.Now().UnixNano()))},
	}
}
