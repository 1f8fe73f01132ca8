package scheduling

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookingRepo "github.com/higordev223/salute-child/database/repository/booking"
	"github.com/higordev223/salute-child/models"
)

func assignRequest(time string) models.AppointmentRequest {
	return models.AppointmentRequest{
		ServiceIDs:    []int{10},
		LanguageLabel: "english",
		ClinicID:      1,
		Date:          testMonday,
		Time:          time,
		PatientID:     42,
	}
}

func TestAssignCommitsBooking(t *testing.T) {
	practitioners := newFakePractitionerRepo(englishPediatrician(1))
	sessions := &fakeSessionRepo{sessions: []models.Session{mondaySession(1, 9, 12, 30)}}
	bookings := newFakeBookingRepo()
	engine := newTestEngine(practitioners, sessions, bookings)

	booking, err := engine.Assign(assignRequest("09:30"))
	require.NoError(t, err)

	assert.Equal(t, 1, booking.PractitionerID)
	assert.Equal(t, 42, booking.PatientID)
	assert.Equal(t, testMonday, booking.Date)
	assert.Equal(t, 9*60+30, booking.Start)
	assert.Equal(t, 10*60, booking.End, "end is start plus the session's slot duration")
	assert.Equal(t, 50.0, booking.Charge)
	assert.Equal(t, models.BookingStatusConfirmed, booking.Status)

	stored, err := bookings.GetByID(booking.ID)
	require.NoError(t, err)
	assert.True(t, stored.Active)
}

func TestAssignChargeSumsRequestedServices(t *testing.T) {
	practitioners := newFakePractitionerRepo(englishPediatrician(1))
	sessions := &fakeSessionRepo{sessions: []models.Session{mondaySession(1, 9, 12, 30)}}
	engine := newTestEngine(practitioners, sessions, newFakeBookingRepo())

	req := assignRequest("09:00")
	req.ServiceIDs = []int{10, 20}
	booking, err := engine.Assign(req)
	require.NoError(t, err)
	assert.Equal(t, 125.0, booking.Charge)
}

func TestAssignSecondRequestForTakenSlot(t *testing.T) {
	practitioners := newFakePractitionerRepo(englishPediatrician(1))
	sessions := &fakeSessionRepo{sessions: []models.Session{mondaySession(1, 9, 12, 30)}}
	engine := newTestEngine(practitioners, sessions, newFakeBookingRepo())

	_, err := engine.Assign(assignRequest("09:30"))
	require.NoError(t, err)

	_, err = engine.Assign(assignRequest("09:30"))
	assert.ErrorIs(t, err, ErrSlotConflict, "the only candidate already holds this key")

	// adjacent slot stays bookable
	_, err = engine.Assign(assignRequest("10:00"))
	assert.NoError(t, err)
}

func TestAssignOutsideAnySession(t *testing.T) {
	practitioners := newFakePractitionerRepo(englishPediatrician(1))
	sessions := &fakeSessionRepo{sessions: []models.Session{mondaySession(1, 9, 12, 30)}}
	engine := newTestEngine(practitioners, sessions, newFakeBookingRepo())

	_, err := engine.Assign(assignRequest("12:00"))
	assert.ErrorIs(t, err, ErrNoAvailability, "session end is exclusive")
}

func TestAssignRejectsInvalidInput(t *testing.T) {
	engine := newTestEngine(newFakePractitionerRepo(), &fakeSessionRepo{}, newFakeBookingRepo())

	req := assignRequest("09:30")
	req.Date = "someday"
	_, err := engine.Assign(req)
	assert.ErrorIs(t, err, ErrInvalidRequest)

	req = assignRequest("25:99")
	_, err = engine.Assign(req)
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestAssignPinnedPractitioner(t *testing.T) {
	practitioners := newFakePractitionerRepo(englishPediatrician(1), englishPediatrician(2))
	sessions := &fakeSessionRepo{sessions: []models.Session{
		mondaySession(1, 9, 12, 30),
		mondaySession(2, 9, 12, 30),
	}}
	engine := newTestEngine(practitioners, sessions, newFakeBookingRepo())

	req := assignRequest("09:30")
	req.ExplicitPractitionerID = 2
	booking, err := engine.Assign(req)
	require.NoError(t, err)
	assert.Equal(t, 2, booking.PractitionerID)
}

func TestAssignPinnedPractitionerNotAvailable(t *testing.T) {
	practitioners := newFakePractitionerRepo(englishPediatrician(1), englishPediatrician(2))
	sessions := &fakeSessionRepo{sessions: []models.Session{
		mondaySession(1, 9, 12, 30),
		mondaySession(2, 14, 16, 30),
	}}
	engine := newTestEngine(practitioners, sessions, newFakeBookingRepo())

	// pinned practitioner has no session covering the time, even though
	// practitioner 1 does
	req := assignRequest("09:30")
	req.ExplicitPractitionerID = 2
	_, err := engine.Assign(req)
	assert.ErrorIs(t, err, ErrNotAvailable)
}

func TestAssignPinnedPractitionerSlotTaken(t *testing.T) {
	practitioners := newFakePractitionerRepo(englishPediatrician(1))
	sessions := &fakeSessionRepo{sessions: []models.Session{mondaySession(1, 9, 12, 30)}}
	engine := newTestEngine(practitioners, sessions, newFakeBookingRepo())

	_, err := engine.Assign(assignRequest("09:30"))
	require.NoError(t, err)

	req := assignRequest("09:30")
	req.ExplicitPractitionerID = 1
	_, err = engine.Assign(req)
	assert.ErrorIs(t, err, ErrNotAvailable)
}

func TestAssignSkipsPractitionerOnLeave(t *testing.T) {
	onLeave := englishPediatrician(1)
	onLeave.Leave = []models.LeaveWindow{{StartDate: testMonday, EndDate: testMonday}}
	working := englishPediatrician(2)

	sessions := &fakeSessionRepo{sessions: []models.Session{
		mondaySession(1, 9, 12, 30),
		mondaySession(2, 9, 12, 30),
	}}
	engine := newTestEngine(newFakePractitionerRepo(onLeave, working), sessions, newFakeBookingRepo())

	booking, err := engine.Assign(assignRequest("09:30"))
	require.NoError(t, err)
	assert.Equal(t, 2, booking.PractitionerID)
}

func TestSelectPractitionerScriptedPick(t *testing.T) {
	practitioners := newFakePractitionerRepo(englishPediatrician(1), englishPediatrician(2), englishPediatrician(3))
	sessions := &fakeSessionRepo{sessions: []models.Session{
		mondaySession(1, 9, 12, 30),
		mondaySession(2, 9, 12, 30),
		mondaySession(3, 9, 12, 30),
	}}
	engine := newTestEngine(practitioners, sessions, newFakeBookingRepo())
	engine.Rand = &scriptedRand{picks: []int{2, 0}}

	id, err := engine.SelectPractitioner([]int{1, 2, 3}, testMonday, 9*60+30, true)
	require.NoError(t, err)
	assert.Equal(t, 3, id)

	id, err = engine.SelectPractitioner([]int{1, 2, 3}, testMonday, 9*60+30, true)
	require.NoError(t, err)
	assert.Equal(t, 1, id)
}

func TestSelectPractitionerNoneOpen(t *testing.T) {
	practitioners := newFakePractitionerRepo(englishPediatrician(1))
	sessions := &fakeSessionRepo{sessions: []models.Session{mondaySession(1, 14, 16, 30)}}
	engine := newTestEngine(practitioners, sessions, newFakeBookingRepo())

	_, err := engine.SelectPractitioner([]int{1}, testMonday, 9*60, true)
	assert.ErrorIs(t, err, ErrNoAvailability)
}

// racyBookingRepo simulates a concurrent writer claiming a practitioner's
// slot between the availability check and the commit.
type racyBookingRepo struct {
	*fakeBookingRepo
	loseOnce map[int]bool
}

func (r *racyBookingRepo) Create(ctx context.Context, b *models.Booking) error {
	if r.loseOnce[b.PractitionerID] {
		delete(r.loseOnce, b.PractitionerID)
		return bookingRepo.ErrDuplicateBooking
	}
	return r.fakeBookingRepo.Create(ctx, b)
}

func TestAssignRetriesAfterLostCommitRace(t *testing.T) {
	practitioners := newFakePractitionerRepo(englishPediatrician(1), englishPediatrician(2))
	sessions := &fakeSessionRepo{sessions: []models.Session{
		mondaySession(1, 9, 12, 30),
		mondaySession(2, 9, 12, 30),
	}}
	bookings := &racyBookingRepo{
		fakeBookingRepo: newFakeBookingRepo(),
		loseOnce:        map[int]bool{1: true},
	}
	engine := newTestEngine(practitioners, sessions, bookings)
	// pick practitioner 1 first, then whoever remains
	engine.Rand = &scriptedRand{picks: []int{0, 0}}

	booking, err := engine.Assign(assignRequest("09:30"))
	require.NoError(t, err)
	assert.Equal(t, 2, booking.PractitionerID, "the race loser falls back to the remaining candidate")
}

// alwaysConflictRepo loses every commit race.
type alwaysConflictRepo struct {
	*fakeBookingRepo
}

func (r *alwaysConflictRepo) Create(context.Context, *models.Booking) error {
	return bookingRepo.ErrDuplicateBooking
}

func TestAssignExhaustedRetriesSurfaceSlotConflict(t *testing.T) {
	practitioners := newFakePractitionerRepo(englishPediatrician(1), englishPediatrician(2))
	sessions := &fakeSessionRepo{sessions: []models.Session{
		mondaySession(1, 9, 12, 30),
		mondaySession(2, 9, 12, 30),
	}}
	engine := newTestEngine(practitioners, sessions, &alwaysConflictRepo{newFakeBookingRepo()})

	_, err := engine.Assign(assignRequest("09:30"))
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestConcurrentAssignsSingleWinner(t *testing.T) {
	practitioners := newFakePractitionerRepo(englishPediatrician(1))
	sessions := &fakeSessionRepo{sessions: []models.Session{mondaySession(1, 9, 12, 30)}}
	bookings := newFakeBookingRepo()
	engine := newTestEngine(practitioners, sessions, bookings)

	const workers = 8
	var wg sync.WaitGroup
	results := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := engine.Assign(assignRequest("09:30"))
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	wins := 0
	for err := range results {
		if err == nil {
			wins++
			continue
		}
		assert.True(t, errors.Is(err, ErrNoAvailability) || errors.Is(err, ErrSlotConflict),
			"unexpected error: %v", err)
	}
	assert.Equal(t, 1, wins, "exactly one concurrent request may claim the slot")

	taken, err := bookings.HasActiveAt(1, testMonday, 9*60+30)
	require.NoError(t, err)
	assert.True(t, taken)
}

func TestCancelBookingFreesSlot(t *testing.T) {
	practitioners := newFakePractitionerRepo(englishPediatrician(1))
	sessions := &fakeSessionRepo{sessions: []models.Session{mondaySession(1, 9, 12, 30)}}
	bookings := newFakeBookingRepo()
	engine := newTestEngine(practitioners, sessions, bookings)

	booking, err := engine.Assign(assignRequest("09:30"))
	require.NoError(t, err)

	require.NoError(t, engine.CancelBooking(booking.ID))

	cancelled, err := bookings.GetByID(booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCancelled, cancelled.Status)

	rebooked, err := engine.Assign(assignRequest("09:30"))
	require.NoError(t, err, "a cancelled booking releases its key")
	assert.NotEqual(t, booking.ID, rebooked.ID)
}

func TestCancelBookingValidation(t *testing.T) {
	engine := newTestEngine(newFakePractitionerRepo(), &fakeSessionRepo{}, newFakeBookingRepo())

	assert.ErrorIs(t, engine.CancelBooking(""), ErrInvalidRequest)
	assert.ErrorIs(t, engine.CancelBooking("missing"), bookingRepo.ErrBookingNotFound)
}
