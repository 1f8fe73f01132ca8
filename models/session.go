package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultSlotMinutes is used when a session row omits its slot duration.
const DefaultSlotMinutes = 15

// Weekday is a 3-letter lowercase day key ("sun".."sat"). The underlying
// clinic data mixes abbreviated and full spellings, so every lookup goes
// through NormalizeWeekday.
type Weekday string

// NormalizeWeekday maps any abbreviated or full weekday spelling onto the
// fixed sun..sat key set. Unknown inputs return an error rather than a guess.
func NormalizeWeekday(raw string) (Weekday, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if len(s) > 3 {
		s = s[:3]
	}
	switch s {
	case "sun", "mon", "tue", "wed", "thu", "fri", "sat":
		return Weekday(s), nil
	}
	return "", fmt.Errorf("unrecognized weekday %q", raw)
}

// WeekdayOf returns the key for a calendar date.
func WeekdayOf(t time.Time) Weekday {
	return Weekday(strings.ToLower(t.Format("Mon")))
}

// ParseClock converts "HH:MM" into minutes from midnight. The whole input
// must be a clock time; trailing characters are rejected.
func ParseClock(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("time %q out of range", s)
	}
	return h*60 + m, nil
}

// FormatClock renders minutes from midnight as "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ParseDate validates a calendar date in "2006-01-02" form.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// Session is a recurring weekly working-hours window for a practitioner at a
// clinic. Start and End are minutes from midnight.
type Session struct {
	PractitionerID int     `bson:"practitionerId" json:"practitionerId"`
	ClinicID       int     `bson:"clinicId" json:"clinicId"`
	Day            Weekday `bson:"day" json:"day"`
	Start          int     `bson:"start" json:"start"`
	End            int     `bson:"end" json:"end"`
	SlotMinutes    int     `bson:"slotMinutes,omitempty" json:"slotMinutes,omitempty"`
}

// Validate enforces the session invariants.
func (s *Session) Validate() error {
	if _, err := NormalizeWeekday(string(s.Day)); err != nil {
		return err
	}
	if s.Start >= s.End {
		return fmt.Errorf("session start %s not before end %s", FormatClock(s.Start), FormatClock(s.End))
	}
	if s.SlotMinutes < 0 {
		return fmt.Errorf("negative slot duration %d", s.SlotMinutes)
	}
	return nil
}

// SlotDuration returns the session's slot length, falling back to the
// clinic-wide default when the row omits it.
func (s *Session) SlotDuration() int {
	if s.SlotMinutes > 0 {
		return s.SlotMinutes
	}
	return DefaultSlotMinutes
}

// CoversMinute reports whether a wall-clock minute falls inside [Start, End).
func (s *Session) CoversMinute(minute int) bool {
	return minute >= s.Start && minute < s.End
}
