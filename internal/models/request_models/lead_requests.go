package request_models

import "github.com/google/uuid"

type RegisterLeadRequest struct {
	EventID uuid.UUID `json:"event_id" binding:"required"`
	Name    string    `json:"name" binding:"required,min=2,max=100"`
	Email   string    `json:"email" binding:"required,email"`
	Phone   string    `json:"phone"`

	// Optional tier chosen at registration; purchase happens later.
	MembershipID *uuid.UUID `json:"membership_id"`
}

type ValidateEventRequest struct {
	EventID uuid.UUID `json:"event_id" binding:"required"`
	Token   string    `json:"token" binding:"required"`
	Email   string    `json:"email" binding:"required,email"`
}

type PurchaseMembershipRequest struct {
	EventID      uuid.UUID `json:"event_id" binding:"required"`
	MembershipID uuid.UUID `json:"membership_id" binding:"required"`
	Token        string    `json:"token" binding:"required"`
	Email        string    `json:"email" binding:"required,email"`

	// Selected access dates as "2006-01-02"; required for per-day billing.
	Dates []string `json:"dates"`
}
