package models

// AfternoonBoundaryHour splits the slot menu into morning and afternoon
// buckets. Slots starting at or after 14:00 are afternoon. The boundary is a
// clinic-wide policy, not configurable per clinic.
const AfternoonBoundaryHour = 14

// Slot period tags.
const (
	PeriodMorning   = "morning"
	PeriodAfternoon = "afternoon"
)

// TimeSlot is one quantized bookable start time for a practitioner on a
// specific date.
type TimeSlot struct {
	Time           string `json:"time"` // "HH:MM"
	Start          int    `json:"-"`    // minutes from midnight
	Minutes        int    `json:"-"`    // slot duration
	Period         string `json:"period"`
	PractitionerID int    `json:"practitionerId,omitempty"`
	ClinicID       int    `json:"-"`
}

// PeriodFor returns the bucket tag for a start minute.
func PeriodFor(startMinute int) string {
	if startMinute/60 < AfternoonBoundaryHour {
		return PeriodMorning
	}
	return PeriodAfternoon
}

// MenuSlot is a deduplicated, client-facing slot option. Practitioner
// identity is deliberately absent: two practitioners offering the same
// wall-clock time collapse into one option.
type MenuSlot struct {
	Time string `json:"time"`
}

// SlotMenu is the bucketed slot set shown back to the caller for one date.
type SlotMenu struct {
	Morning   []MenuSlot `json:"morning"`
	Afternoon []MenuSlot `json:"afternoon"`
}

// IsEmpty reports whether the menu offers nothing.
func (m SlotMenu) IsEmpty() bool {
	return len(m.Morning) == 0 && len(m.Afternoon) == 0
}
