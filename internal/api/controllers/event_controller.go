package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"eventgate/internal/models/request_models"
	"eventgate/internal/services"
	"eventgate/pkg/utils"
)

type EventController struct {
	eventService services.EventServiceInterface
}

func NewEventController(eventService services.EventServiceInterface) *EventController {
	return &EventController{
		eventService: eventService,
	}
}

// Create godoc
// @Summary Create an event
// @Tags Events
// @Accept json
// @Produce json
// @Param request body request_models.CreateEventRequest true "Event payload"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /events [post]
func (e *EventController) Create(c *gin.Context) {
	hostID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req request_models.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	event, err := e.eventService.CreateEvent(c.Request.Context(), hostID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, event, "Event created")
}

func (e *EventController) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid event id")
		return
	}

	event, err := e.eventService.GetEvent(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, event, "Event found")
}

func (e *EventController) List(c *gin.Context) {
	hostID, ok := currentUserID(c)
	if !ok {
		return
	}

	events, err := e.eventService.ListEvents(c.Request.Context(), hostID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, events, "Events listed")
}

func (e *EventController) Update(c *gin.Context) {
	hostID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid event id")
		return
	}

	var req request_models.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	event, err := e.eventService.UpdateEvent(c.Request.Context(), hostID, id, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, event, "Event updated")
}

// CreateMembership godoc
// @Summary Create a membership tier
// @Tags Events
// @Accept json
// @Produce json
// @Param request body request_models.CreateMembershipRequest true "Membership payload"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /memberships [post]
func (e *EventController) CreateMembership(c *gin.Context) {
	hostID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req request_models.CreateMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	membership, err := e.eventService.CreateMembership(c.Request.Context(), hostID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, membership, "Membership created")
}

func (e *EventController) ListMemberships(c *gin.Context) {
	hostID, ok := currentUserID(c)
	if !ok {
		return
	}

	memberships, err := e.eventService.ListMemberships(c.Request.Context(), hostID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, memberships, "Memberships listed")
}
