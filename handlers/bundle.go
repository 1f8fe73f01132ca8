package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Appointment wizard endpoints.
	SlotMenu       gin.HandlerFunc
	StartSession   gin.HandlerFunc
	UpdateSession  gin.HandlerFunc
	ConfirmBooking gin.HandlerFunc
	CancelSession  gin.HandlerFunc

	// Booking lifecycle endpoints.
	CancelBooking gin.HandlerFunc

	// Lookup endpoints.
	Languages gin.HandlerFunc

	// Patient auth.
	PatientToken gin.HandlerFunc
}
