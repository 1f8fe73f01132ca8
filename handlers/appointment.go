package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	bookingRepo "github.com/higordev223/salute-child/database/repository/booking"
	"github.com/higordev223/salute-child/middleware"
	"github.com/higordev223/salute-child/models"
	"github.com/higordev223/salute-child/services/scheduling"
	"github.com/higordev223/salute-child/utils"
)

// ReminderScheduler enqueues the post-confirmation reminder task.
type ReminderScheduler interface {
	ScheduleReminder(payload models.ReminderPayload) error
}

// AppointmentHandler exposes the booking wizard and the stateless slot/language
// lookups over HTTP.
type AppointmentHandler struct {
	Engine    scheduling.SchedulingService
	Reminders ReminderScheduler
	Cache     *redis.Client
	Logger    *zap.Logger
}

func NewAppointmentHandler(engine scheduling.SchedulingService, reminders ReminderScheduler, cache *redis.Client, logger *zap.Logger) *AppointmentHandler {
	return &AppointmentHandler{
		Engine:    engine,
		Reminders: reminders,
		Cache:     cache,
		Logger:    logger,
	}
}

// respondEngineError writes the wire shape for an engine failure. Invalid
// input and losing a commit race are transport-level errors; an empty pool or
// an unavailable practitioner is a normal business outcome and keeps a 200.
func respondEngineError(c *gin.Context, err error) {
	kind := scheduling.KindOf(err)
	body := models.AssignmentResponse{Status: false, ErrorKind: kind}
	switch kind {
	case scheduling.KindInvalidRequest:
		c.JSON(http.StatusBadRequest, body)
	case scheduling.KindSlotConflict:
		c.JSON(http.StatusConflict, body)
	case scheduling.KindInternal:
		c.JSON(http.StatusInternalServerError, body)
	default:
		c.JSON(http.StatusOK, body)
	}
}

func menuResponse(menu models.SlotMenu) models.SlotMenuResponse {
	resp := models.SlotMenuResponse{
		Status:    true,
		Morning:   menu.Morning,
		Afternoon: menu.Afternoon,
	}
	if resp.Morning == nil {
		resp.Morning = []models.MenuSlot{}
	}
	if resp.Afternoon == nil {
		resp.Afternoon = []models.MenuSlot{}
	}
	if menu.IsEmpty() {
		resp.Message = "no slots available on the requested date"
	}
	return resp
}

// SlotMenu handles POST /api/appointments/slots. It is stateless: one request
// in, the deduplicated morning/afternoon menu out.
func (h *AppointmentHandler) SlotMenu(c *gin.Context) {
	var req models.AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	candidates, err := h.Engine.MatchPractitioners(req)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	menu, err := h.Engine.SlotMenuForDay(candidates, req.Date)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, menuResponse(menu))
}

// StartSession handles POST /api/appointments/session. It resolves the
// candidate pool once, computes the slot menu, and caches both under a fresh
// wizard session id so the follow-up steps skip the matching work.
func (h *AppointmentHandler) StartSession(c *gin.Context) {
	var req models.AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if patientID, ok := middleware.PatientIDFromContext(c); ok {
		req.PatientID = patientID
	}

	candidates, err := h.Engine.MatchPractitioners(req)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	menu, err := h.Engine.SlotMenuForDay(candidates, req.Date)
	if err != nil {
		respondEngineError(c, err)
		return
	}

	session := models.WizardSession{
		Request:    req,
		Candidates: candidates,
		Menu:       menu,
	}
	sessionID := uuid.New().String()
	if err := h.saveSession(c.Request.Context(), sessionID, session); err != nil {
		h.Logger.Error("failed to cache wizard session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to cache wizard session"})
		return
	}

	resp := menuResponse(menu)
	c.JSON(http.StatusOK, gin.H{
		"sessionID":     sessionID,
		"practitioners": candidates,
		"morning":       resp.Morning,
		"afternoon":     resp.Afternoon,
	})
}

// UpdateSession handles PUT /api/appointments/session/:sessionID. The caller
// moves the wizard to a new date or records the chosen time; the menu is
// recomputed against the cached candidate pool.
func (h *AppointmentHandler) UpdateSession(c *gin.Context) {
	sessionID := c.Param("sessionID")
	var input struct {
		Date string `json:"date,omitempty"`
		Time string `json:"time,omitempty"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	session, err := h.loadSession(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "wizard session not found or expired"})
		return
	}

	if input.Date != "" {
		session.Request.Date = input.Date
	}
	if input.Time != "" {
		session.ChosenTime = input.Time
	}

	menu, err := h.Engine.SlotMenuForDay(session.Candidates, session.Request.Date)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	session.Menu = menu

	if err := h.saveSession(c.Request.Context(), sessionID, *session); err != nil {
		h.Logger.Error("failed to update wizard session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update wizard session"})
		return
	}

	resp := menuResponse(menu)
	c.JSON(http.StatusOK, gin.H{
		"sessionID": sessionID,
		"morning":   resp.Morning,
		"afternoon": resp.Afternoon,
	})
}

// ConfirmBooking handles POST /api/appointments/confirm. It replays the cached
// wizard request through the assignment engine and schedules the reminder.
func (h *AppointmentHandler) ConfirmBooking(c *gin.Context) {
	var input struct {
		SessionID      string `json:"sessionID" binding:"required"`
		Time           string `json:"time,omitempty"`
		PractitionerID int    `json:"practitionerId,omitempty"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	session, err := h.loadSession(c.Request.Context(), input.SessionID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "wizard session not found or expired"})
		return
	}

	req := session.Request
	if input.Time != "" {
		req.Time = input.Time
	} else {
		req.Time = session.ChosenTime
	}
	if input.PractitionerID > 0 {
		req.ExplicitPractitionerID = input.PractitionerID
	}
	if patientID, ok := middleware.PatientIDFromContext(c); ok {
		req.PatientID = patientID
	}

	booking, err := h.Engine.Assign(req)
	if err != nil {
		respondEngineError(c, err)
		return
	}

	payload := models.ReminderPayload{
		BookingID:      booking.ID,
		PractitionerID: booking.PractitionerID,
		PatientID:      booking.PatientID,
		Date:           booking.Date,
		StartTime:      models.FormatClock(booking.Start),
	}
	if err := h.Reminders.ScheduleReminder(payload); err != nil {
		// the booking is committed; a lost reminder is not worth failing it
		h.Logger.Warn("failed to schedule booking reminder",
			zap.String("bookingId", booking.ID), zap.Error(err))
	}

	h.Cache.Del(c.Request.Context(), utils.WizardSessionPrefix+input.SessionID)

	c.JSON(http.StatusOK, models.AssignmentResponse{
		Status:         true,
		BookingID:      booking.ID,
		PractitionerID: booking.PractitionerID,
		StartTime:      models.FormatClock(booking.Start),
		EndTime:        models.FormatClock(booking.End),
		Charge:         booking.Charge,
	})
}

// CancelSession handles DELETE /api/appointments/session/:sessionID.
func (h *AppointmentHandler) CancelSession(c *gin.Context) {
	sessionID := c.Param("sessionID")
	h.Cache.Del(c.Request.Context(), utils.WizardSessionPrefix+sessionID)
	c.JSON(http.StatusOK, gin.H{"status": true})
}

// CancelBooking handles POST /api/appointments/:id/cancel. Cancellation frees
// the slot key so another patient can take it.
func (h *AppointmentHandler) CancelBooking(c *gin.Context) {
	bookingID := c.Param("id")
	if err := h.Engine.CancelBooking(bookingID); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
			return
		}
		if errors.Is(err, scheduling.ErrInvalidRequest) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "booking id is required"})
			return
		}
		h.Logger.Error("failed to cancel booking", zap.String("bookingId", bookingID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to cancel booking"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": true})
}

// Languages handles GET /api/appointments/languages?clinicId=&serviceIds=.
// The widget populates its language dropdown from this list.
func (h *AppointmentHandler) Languages(c *gin.Context) {
	clinicID, _ := strconv.Atoi(c.Query("clinicId"))
	serviceIDs, err := parseIDList(c.Query("serviceIds"))
	if err != nil || len(serviceIDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "serviceIds must be a comma-separated list of ids"})
		return
	}

	languages, err := h.Engine.LanguagesForService(clinicID, serviceIDs)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": true, "languages": languages})
}

func parseIDList(raw string) ([]int, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]int, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (h *AppointmentHandler) saveSession(ctx context.Context, sessionID string, session models.WizardSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return h.Cache.Set(ctx, utils.WizardSessionPrefix+sessionID, data, utils.WizardSessionTTL).Err()
}

func (h *AppointmentHandler) loadSession(ctx context.Context, sessionID string) (*models.WizardSession, error) {
	data, err := h.Cache.Get(ctx, utils.WizardSessionPrefix+sessionID).Result()
	if err != nil {
		return nil, err
	}
	var session models.WizardSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, err
	}
	return &session, nil
}
