package request_models

import "github.com/google/uuid"

type CreateEventRequest struct {
	Name        string   `json:"name" binding:"required,min=3,max=120"`
	Description string   `json:"description"`
	EventType   string   `json:"event_type" binding:"required,oneof=in_person live_call prerecorded"`
	Venue       string   `json:"venue"`
	MeetingURL  string   `json:"meeting_url"`
	ContentURL  string   `json:"content_url"`
	Dates       []string `json:"dates"`

	MembershipIDs []uuid.UUID `json:"membership_ids"`
}

type UpdateEventRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Venue       *string  `json:"venue"`
	MeetingURL  *string  `json:"meeting_url"`
	ContentURL  *string  `json:"content_url"`
	Dates       []string `json:"dates"`

	MembershipIDs []uuid.UUID `json:"membership_ids"`
}

type CreateMembershipRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=60"`
	PriceMinor  int64  `json:"price_minor" binding:"min=0"`
	Currency    string `json:"currency" binding:"required,len=3"`
	PaymentType string `json:"payment_type" binding:"required,oneof=one_off recurring"`
	Billing     string `json:"billing" binding:"required,oneof=per_day package"`
}
