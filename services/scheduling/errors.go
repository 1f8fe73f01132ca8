package scheduling

import "errors"

// Engine failure taxonomy. Every failure surfaces as one of these typed
// results; nothing in the engine panics across its API boundary.
var (
	// ErrInvalidRequest: missing or malformed service, language, date or time.
	ErrInvalidRequest = errors.New("invalid appointment request")
	// ErrNoCapabilityMatch: the capability filter produced an empty pool.
	ErrNoCapabilityMatch = errors.New("no practitioner matches the requested service and language")
	// ErrNoAvailability: candidates exist but none has an open slot.
	ErrNoAvailability = errors.New("no practitioner available at the requested time")
	// ErrSlotConflict: the slot is already claimed, or every commit attempt
	// lost its race.
	ErrSlotConflict = errors.New("slot already claimed by another booking")
	// ErrNotAvailable: an explicitly pinned practitioner failed the filters.
	ErrNotAvailable = errors.New("selected practitioner is not available")
)

// Error kinds as carried in API responses. The presentation layer maps these
// to localized messages; the engine carries no copy of its own.
const (
	KindInvalidRequest    = "InvalidRequest"
	KindNoCapabilityMatch = "NoCapabilityMatch"
	KindNoAvailability    = "NoAvailability"
	KindSlotConflict      = "SlotConflict"
	KindNotAvailable      = "NotAvailable"
	KindInternal          = "Internal"
)

// KindOf maps an engine error onto its wire kind.
func KindOf(err error) string {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return KindInvalidRequest
	case errors.Is(err, ErrNoCapabilityMatch):
		return KindNoCapabilityMatch
	case errors.Is(err, ErrNoAvailability):
		return KindNoAvailability
	case errors.Is(err, ErrSlotConflict):
		return KindSlotConflict
	case errors.Is(err, ErrNotAvailable):
		return KindNotAvailable
	default:
		return KindInternal
	}
}
