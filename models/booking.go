package models

import "time"

// Booking statuses. A booking is never deleted; cancellation is a status
// transition that releases the (practitioner, date, start) key.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// Booking is a durable appointment record.
type Booking struct {
	ID             string    `bson:"id" json:"id"`
	PractitionerID int       `bson:"practitionerId" json:"practitionerId"`
	ClinicID       int       `bson:"clinicId" json:"clinicId"`
	PatientID      int       `bson:"patientId" json:"patientId"`
	ServiceIDs     []int     `bson:"serviceIds" json:"serviceIds"`
	Date           string    `bson:"date" json:"date"` // "2006-01-02"
	Start          int       `bson:"start" json:"start"`
	End            int       `bson:"end" json:"end"`
	Charge         float64   `bson:"charge" json:"charge"`
	Status         string    `bson:"status" json:"status"`
	Active         bool      `bson:"active" json:"-"` // true while status is pending/confirmed; backs the uniqueness index
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
}

// IsActive reports whether the booking still holds its slot key.
func (b *Booking) IsActive() bool {
	return b.Status == BookingStatusPending || b.Status == BookingStatusConfirmed
}

// ReminderPayload is the asynq task body for appointment reminders.
type ReminderPayload struct {
	BookingID      string `json:"bookingId"`
	PractitionerID int    `json:"practitionerId"`
	PatientID      int    `json:"patientId"`
	Date           string `json:"date"`
	StartTime      string `json:"startTime"`
}
