package handlers

import (
	"net/http"

	"clubsphere_backend/internal/middleware"
	"clubsphere_backend/internal/models"
	"clubsphere_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// EventHandler holds the event service.
type EventHandler struct {
	eventService services.EventService
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(es services.EventService) *EventHandler {
	return &EventHandler{eventService: es}
}

func (h *EventHandler) CreateEvent(c *gin.Context) {
	var req services.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "CreateEvent")
		return
	}

	event, err := h.eventService.CreateEvent(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "CreateEvent: Error from eventService.CreateEvent", "Failed to create event.")
		return
	}
	c.JSON(http.StatusCreated, event)
}

// ListEvents supports ?clubId= to narrow to one club.
func (h *EventHandler) ListEvents(c *gin.Context) {
	events, err := h.eventService.ListEvents(c.Request.Context(), c.Query("clubId"))
	if err != nil {
		respondServiceError(c, err, "ListEvents: Error from eventService.ListEvents", "Failed to fetch events.")
		return
	}
	if events == nil {
		events = []models.Event{}
	}
	c.JSON(http.StatusOK, events)
}

// RegisterForEvent signs up the authenticated caller. The registrant email is
// always the verified one, never taken from the body.
func (h *EventHandler) RegisterForEvent(c *gin.Context) {
	var req services.RegisterEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "RegisterForEvent")
		return
	}

	reg, err := h.eventService.Register(c.Request.Context(), req.EventID, c.GetString(middleware.ContextEmailKey))
	if err != nil {
		respondServiceError(c, err, "RegisterForEvent: Error from eventService.Register for event "+req.EventID, "Failed to register for event.")
		return
	}
	c.JSON(http.StatusCreated, reg)
}

// ListRegistrationsByEmail returns the event registrations of :email.
func (h *EventHandler) ListRegistrationsByEmail(c *gin.Context) {
	regs, err := h.eventService.ListRegistrationsByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		respondServiceError(c, err, "ListRegistrationsByEmail: Error from eventService.ListRegistrationsByEmail", "Failed to fetch registrations.")
		return
	}
	if regs == nil {
		regs = []models.EventRegistration{}
	}
	c.JSON(http.StatusOK, regs)
}
