package response_models

import "github.com/google/uuid"

type RegisterLeadResponse struct {
	LeadID  uuid.UUID `json:"lead_id"`
	EventID uuid.UUID `json:"event_id"`
	Token   string    `json:"token"`
}
