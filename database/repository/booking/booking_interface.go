package bookingRepo

import (
	"context"
	"errors"

	"github.com/higordev223/salute-child/models"
)

// ErrDuplicateBooking is returned by Create when another active booking
// already holds the same (practitionerId, date, start) key. Callers decide
// whether to retry against a different practitioner.
var ErrDuplicateBooking = errors.New("slot already booked")

// ErrBookingNotFound is returned when no booking carries the requested id.
var ErrBookingNotFound = errors.New("booking not found")

// BookingRepository is the durable booking ledger. It owns the uniqueness
// invariant: at most one active booking per (practitionerId, date, start).
type BookingRepository interface {
	// Create persists a booking via a single atomic conditional insert. Two
	// concurrent creates for the same key cannot both succeed; the loser
	// receives ErrDuplicateBooking.
	Create(ctx context.Context, booking *models.Booking) error
	// GetByID retrieves a booking.
	GetByID(bookingID string) (*models.Booking, error)
	// HasActiveAt reports whether an active booking holds the key.
	HasActiveAt(practitionerID int, date string, start int) (bool, error)
	// Confirm transitions a pending booking to confirmed.
	Confirm(bookingID string) error
	// Cancel transitions a booking to cancelled, freeing its key.
	Cancel(bookingID string) error
	// EnsureIndexes creates the collection's indexes, including the partial
	// unique index enforcing the invariant.
	EnsureIndexes() error
}
