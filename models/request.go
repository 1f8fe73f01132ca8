package models

// AppointmentRequest is the inbound request shape consumed from the booking
// widget. Time and ExplicitPractitionerID are optional: without a time the
// caller gets the slot menu, with one it gets an assignment.
type AppointmentRequest struct {
	ServiceIDs             []int  `json:"serviceIds" binding:"required"`
	LanguageLabel          string `json:"languageLabel" binding:"required"`
	ClinicID               int    `json:"clinicId" binding:"required"`
	Date                   string `json:"date" binding:"required"` // "2006-01-02"
	Time                   string `json:"time,omitempty"`          // "HH:MM"
	ExplicitPractitionerID int    `json:"explicitPractitionerId,omitempty"`
	PatientID              int    `json:"patientId,omitempty"`
}

// SlotMenuResponse is the outbound "slot menu" payload.
type SlotMenuResponse struct {
	Status    bool       `json:"status"`
	Morning   []MenuSlot `json:"morning"`
	Afternoon []MenuSlot `json:"afternoon"`
	Message   string     `json:"message,omitempty"`
}

// AssignmentResponse is the outbound "assignment" payload.
type AssignmentResponse struct {
	Status         bool    `json:"status"`
	BookingID      string  `json:"bookingId,omitempty"`
	PractitionerID int     `json:"practitionerId,omitempty"`
	StartTime      string  `json:"startTime,omitempty"`
	EndTime        string  `json:"endTime,omitempty"`
	Charge         float64 `json:"charge,omitempty"`
	ErrorKind      string  `json:"errorKind,omitempty"`
}

// WizardSession is the redis-cached state of one booking wizard run. The
// candidate pool is ephemeral by design and never reaches durable storage.
type WizardSession struct {
	Request    AppointmentRequest `json:"request"`
	Candidates []int              `json:"candidates"`
	Menu       SlotMenu           `json:"menu"`
	ChosenTime string             `json:"chosenTime,omitempty"`
}
