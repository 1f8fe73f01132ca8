package scheduling

import (
	"context"
	"fmt"
	"sync"

	bookingRepo "github.com/higordev223/salute-child/database/repository/booking"
	practitionerRepo "github.com/higordev223/salute-child/database/repository/practitioner"
	"github.com/higordev223/salute-child/models"
)

// fakePractitionerRepo serves practitioner reference data from memory.
type fakePractitionerRepo struct {
	byID map[int]*models.Practitioner
}

func newFakePractitionerRepo(ps ...*models.Practitioner) *fakePractitionerRepo {
	r := &fakePractitionerRepo{byID: make(map[int]*models.Practitioner)}
	for _, p := range ps {
		r.byID[p.ID] = p
	}
	return r
}

func (r *fakePractitionerRepo) GetByID(id int) (*models.Practitioner, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("practitioner %d not found", id)
	}
	return p, nil
}

func (r *fakePractitionerRepo) Search(criteria practitionerRepo.SearchCriteria) ([]models.Practitioner, error) {
	var out []models.Practitioner
	for _, p := range r.byID {
		if !criteria.Language.IsEmpty() && !p.Speaks(criteria.Language) {
			continue
		}
		if !p.OffersAny(criteria.ServiceIDs, criteria.ClinicID) {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakePractitionerRepo) Create(p *models.Practitioner) error {
	r.byID[p.ID] = p
	return nil
}

func (r *fakePractitionerRepo) Update(p *models.Practitioner) error {
	r.byID[p.ID] = p
	return nil
}

func (r *fakePractitionerRepo) EnsureIndexes() error { return nil }

// fakeSessionRepo serves session rows from memory.
type fakeSessionRepo struct {
	sessions []models.Session
}

func (r *fakeSessionRepo) SessionsFor(practitionerID int, day models.Weekday) ([]models.Session, error) {
	var out []models.Session
	for _, s := range r.sessions {
		if s.PractitionerID == practitionerID && s.Day == day {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSessionRepo) Create(s *models.Session) error {
	r.sessions = append(r.sessions, *s)
	return nil
}

func (r *fakeSessionRepo) EnsureIndexes() error { return nil }

// fakeBookingRepo mirrors the mongo ledger's conflict behavior: Create holds
// one lock across the key check and the insert, so exactly one of any set of
// concurrent creates for the same key succeeds.
type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]*models.Booking
	active   map[string]string // (practitionerId|date|start) -> bookingID
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{
		bookings: make(map[string]*models.Booking),
		active:   make(map[string]string),
	}
}

func slotKey(practitionerID int, date string, start int) string {
	return fmt.Sprintf("%d|%s|%d", practitionerID, date, start)
}

func (r *fakeBookingRepo) Create(_ context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b.Active = b.IsActive()
	key := slotKey(b.PractitionerID, b.Date, b.Start)
	if b.Active {
		if _, taken := r.active[key]; taken {
			return bookingRepo.ErrDuplicateBooking
		}
		r.active[key] = b.ID
	}
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *fakeBookingRepo) GetByID(bookingID string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[bookingID]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBookingRepo) HasActiveAt(practitionerID int, date string, start int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, taken := r.active[slotKey(practitionerID, date, start)]
	return taken, nil
}

func (r *fakeBookingRepo) Confirm(bookingID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[bookingID]
	if !ok || b.Status != models.BookingStatusPending {
		return fmt.Errorf("booking %s not in pending state", bookingID)
	}
	b.Status = models.BookingStatusConfirmed
	return nil
}

func (r *fakeBookingRepo) Cancel(bookingID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[bookingID]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.Status = models.BookingStatusCancelled
	b.Active = false
	delete(r.active, slotKey(b.PractitionerID, b.Date, b.Start))
	return nil
}

func (r *fakeBookingRepo) EnsureIndexes() error { return nil }

// scriptedRand replays a fixed pick sequence, then falls back to 0.
type scriptedRand struct {
	picks []int
}

func (s *scriptedRand) Intn(n int) int {
	if len(s.picks) == 0 {
		return 0
	}
	next := s.picks[0]
	s.picks = s.picks[1:]
	return next % n
}

func newTestEngine(practitioners *fakePractitionerRepo, sessions *fakeSessionRepo, bookings bookingRepo.BookingRepository) *DefaultSchedulingEngine {
	return &DefaultSchedulingEngine{
		Practitioners: practitioners,
		Sessions:      sessions,
		Bookings:      bookings,
		Rand:          &scriptedRand{},
	}
}

// englishPediatrician builds the standard fixture practitioner.
func englishPediatrician(id int, languages ...string) *models.Practitioner {
	if len(languages) == 0 {
		languages = []string{"english"}
	}
	labels := make([]models.LanguageLabel, 0, len(languages))
	for _, l := range languages {
		labels = append(labels, models.NewLanguageLabel(l))
	}
	return &models.Practitioner{
		ID:          id,
		DisplayName: fmt.Sprintf("Dr. %d", id),
		Languages:   labels,
		Capabilities: []models.Capability{
			{ServiceID: 10, ClinicID: 1, Charge: 50},
			{ServiceID: 20, ClinicID: 1, Charge: 75},
		},
	}
}

func mondaySession(practitionerID, startHour, endHour, slotMinutes int) models.Session {
	return models.Session{
		PractitionerID: practitionerID,
		ClinicID:       1,
		Day:            "mon",
		Start:          startHour * 60,
		End:            endHour * 60,
		SlotMinutes:    slotMinutes,
	}
}

// 2026-09-07 is a Monday.
const testMonday = "2026-09-07"
