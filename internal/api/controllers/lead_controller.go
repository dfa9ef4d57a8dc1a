package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"eventgate/internal/models/request_models"
	"eventgate/internal/services"
	"eventgate/pkg/utils"
)

type LeadController struct {
	leadService     services.LeadServiceInterface
	accessService   services.AccessServiceInterface
	checkoutService services.CheckoutServiceInterface
}

func NewLeadController(
	leadService services.LeadServiceInterface,
	accessService services.AccessServiceInterface,
	checkoutService services.CheckoutServiceInterface) *LeadController {
	return &LeadController{
		leadService:     leadService,
		accessService:   accessService,
		checkoutService: checkoutService,
	}
}

// Register godoc
// @Summary Register a lead for an event
// @Tags Leads
// @Accept json
// @Produce json
// @Param request body request_models.RegisterLeadRequest true "Registration payload"
// @Success 200 {object} utils.APIResponse
// @Router /lead/register [post]
func (l *LeadController) Register(c *gin.Context) {
	var req request_models.RegisterLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	resp, err := l.leadService.Register(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Lead registered successfully")
}

// ValidateEvent godoc
// @Summary Check whether a lead may access an event
// @Tags Leads
// @Accept json
// @Produce json
// @Param request body request_models.ValidateEventRequest true "Access check payload"
// @Success 200 {object} utils.APIResponse
// @Router /lead/lead-validate-event [post]
func (l *LeadController) ValidateEvent(c *gin.Context) {
	var req request_models.ValidateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	decision, err := l.accessService.EvaluateAccess(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, decision, "Access evaluated")
}

// PurchaseMembership godoc
// @Summary Start checkout for a membership tier
// @Tags Leads
// @Accept json
// @Produce json
// @Param request body request_models.PurchaseMembershipRequest true "Purchase payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /lead/purchase-membership [post]
func (l *LeadController) PurchaseMembership(c *gin.Context) {
	var req request_models.PurchaseMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	session, err := l.checkoutService.PurchaseMembership(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"checkoutSession": session}, "Checkout session created")
}

// ListByEvent returns the host's leads for one event.
func (l *LeadController) ListByEvent(c *gin.Context) {
	hostID, ok := currentUserID(c)
	if !ok {
		return
	}

	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid event id")
		return
	}

	leads, err := l.leadService.ListByEvent(c.Request.Context(), hostID, eventID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, leads, "Leads listed")
}

// Delete removes a lead unless bookings still reference it.
func (l *LeadController) Delete(c *gin.Context) {
	hostID, ok := currentUserID(c)
	if !ok {
		return
	}

	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid lead id")
		return
	}

	if err := l.leadService.Delete(c.Request.Context(), hostID, leadID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Lead deleted")
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, "user_id is required")
		return uuid.Nil, false
	}
	return id, true
}
