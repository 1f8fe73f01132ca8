package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	bookingRepo "github.com/higordev223/salute-child/database/repository/booking"
	"github.com/higordev223/salute-child/models"
	"github.com/higordev223/salute-child/utils"

	"go.uber.org/zap"
)

// available reports whether the practitioner can take (date, start): a
// session covers the minute, no leave window covers the date and, when
// excludeConflicted is set, no active booking holds the key. The covering
// session is returned for its slot duration.
func (e *DefaultSchedulingEngine) available(practitionerID int, day models.Weekday, date string, start int, excludeConflicted bool) (*models.Session, error) {
	onLeave, err := e.onLeave(practitionerID, date)
	if err != nil {
		return nil, err
	}
	if onLeave {
		return nil, nil
	}

	sessions, err := e.Sessions.SessionsFor(practitionerID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to load sessions: %w", err)
	}
	var covering *models.Session
	for i := range sessions {
		if sessions[i].CoversMinute(start) {
			covering = &sessions[i]
			break
		}
	}
	if covering == nil {
		return nil, nil
	}

	if excludeConflicted {
		taken, err := e.Bookings.HasActiveAt(practitionerID, date, start)
		if err != nil {
			return nil, fmt.Errorf("conflict check failed: %w", err)
		}
		if taken {
			return nil, nil
		}
	}
	return covering, nil
}

// SelectPractitioner filters the candidate pool down to those able to take
// (date, start) and picks one uniformly at random. Selection is advisory: the
// authoritative claim happens at the ledger commit, so the pick is not stable
// across retries and deliberately ignores utilization.
func (e *DefaultSchedulingEngine) SelectPractitioner(candidates []int, date string, start int, excludeConflicted bool) (int, error) {
	day, err := models.ParseDate(date)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	var open []int
	for _, id := range candidates {
		covering, err := e.available(id, models.WeekdayOf(day), date, start, excludeConflicted)
		if err != nil {
			return 0, err
		}
		if covering != nil {
			open = append(open, id)
		}
	}
	if len(open) == 0 {
		return 0, ErrNoAvailability
	}
	return open[e.Rand.Intn(len(open))], nil
}

// Assign runs the full booking attempt: resolve candidates, filter by
// availability, pick one, and commit through the ledger. A lost commit race
// drops the loser from the pool and retries, bounded by the pool size, before
// surfacing ErrSlotConflict.
func (e *DefaultSchedulingEngine) Assign(req models.AppointmentRequest) (*models.Booking, error) {
	day, err := models.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	start, err := models.ParseClock(req.Time)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	weekday := models.WeekdayOf(day)
	logger := utils.GetLogger()

	pinned := req.ExplicitPractitionerID > 0
	var pool []int
	if pinned {
		pool = []int{req.ExplicitPractitionerID}
	} else {
		pool, err = e.MatchPractitioners(req)
		if err != nil {
			return nil, err
		}
	}

	type opening struct {
		id      int
		session *models.Session
	}
	var open []opening
	conflicted := false
	for _, id := range pool {
		covering, err := e.available(id, weekday, req.Date, start, false)
		if err != nil {
			return nil, err
		}
		if covering == nil {
			continue
		}
		taken, err := e.Bookings.HasActiveAt(id, req.Date, start)
		if err != nil {
			return nil, fmt.Errorf("conflict check failed: %w", err)
		}
		if taken {
			conflicted = true
			continue
		}
		open = append(open, opening{id: id, session: covering})
	}
	if len(open) == 0 {
		if pinned {
			return nil, ErrNotAvailable
		}
		// every otherwise-available candidate already holds a booking at
		// this key
		if conflicted {
			return nil, ErrSlotConflict
		}
		return nil, ErrNoAvailability
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Commitment is authoritative; the loop size bounds retries to one pass
	// over the filtered pool.
	for attempts := len(open); attempts > 0; attempts-- {
		idx := 0
		if len(open) > 1 {
			idx = e.Rand.Intn(len(open))
		}
		pick := open[idx]

		charge, err := e.QuoteCharges(pick.id, req.ClinicID, req.ServiceIDs)
		if err != nil {
			return nil, err
		}

		booking := &models.Booking{
			ID:             uuid.New().String(),
			PractitionerID: pick.id,
			ClinicID:       req.ClinicID,
			PatientID:      req.PatientID,
			ServiceIDs:     req.ServiceIDs,
			Date:           req.Date,
			Start:          start,
			End:            start + pick.session.SlotDuration(),
			Charge:         charge,
			Status:         models.BookingStatusConfirmed,
			CreatedAt:      time.Now(),
		}

		err = e.Bookings.Create(ctx, booking)
		if err == nil {
			logger.Info("booking assigned",
				zap.String("bookingId", booking.ID),
				zap.Int("practitionerId", pick.id),
				zap.String("date", req.Date),
				zap.String("time", req.Time))
			return booking, nil
		}
		if !errors.Is(err, bookingRepo.ErrDuplicateBooking) {
			return nil, fmt.Errorf("booking commit failed: %w", err)
		}

		logger.Warn("lost commit race, retrying with remaining candidates",
			zap.Int("practitionerId", pick.id),
			zap.String("date", req.Date),
			zap.String("time", req.Time))
		open = append(open[:idx], open[idx+1:]...)
	}
	return nil, ErrSlotConflict
}

// CancelBooking frees the booking's slot key. The surrounding cancellation
// workflow owns everything else (refunds, messaging).
func (e *DefaultSchedulingEngine) CancelBooking(bookingID string) error {
	if bookingID == "" {
		return fmt.Errorf("%w: booking id is required", ErrInvalidRequest)
	}
	return e.Bookings.Cancel(bookingID)
}
