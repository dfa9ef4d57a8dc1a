package request_models

import "github.com/google/uuid"

type CreateBookingRequest struct {
	EventID uuid.UUID `json:"event_id" binding:"required"`
	Token   string    `json:"token" binding:"required"`
	Date    string    `json:"date" binding:"required,len=10"`
}
