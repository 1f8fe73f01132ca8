package scheduling

import (
	"fmt"
	"sort"

	"github.com/higordev223/salute-child/models"
)

// GenerateSlots enumerates the quantized bookable start times one
// practitioner offers on a date. For each session covering the date's
// weekday, starts are emitted every SlotDuration minutes while the whole slot
// still fits inside the session window. Output is ordered by start time; no
// cross-practitioner merging happens here.
func (e *DefaultSchedulingEngine) GenerateSlots(practitionerID int, date string) ([]models.TimeSlot, error) {
	day, err := models.ParseDate(date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	sessions, err := e.Sessions.SessionsFor(practitionerID, models.WeekdayOf(day))
	if err != nil {
		return nil, fmt.Errorf("failed to load sessions: %w", err)
	}

	var slots []models.TimeSlot
	for _, s := range sessions {
		dur := s.SlotDuration()
		for start := s.Start; start+dur <= s.End; start += dur {
			slots = append(slots, models.TimeSlot{
				Time:           models.FormatClock(start),
				Start:          start,
				Minutes:        dur,
				Period:         models.PeriodFor(start),
				PractitionerID: practitionerID,
				ClinicID:       s.ClinicID,
			})
		}
	}

	sort.Slice(slots, func(i, j int) bool { return slots[i].Start < slots[j].Start })
	return slots, nil
}
