package response_models

import "github.com/google/uuid"

// AccessDecision is the outcome of a lead-validate-event call.
type AccessDecision struct {
	IsAllowed       bool   `json:"isAllowed"`
	RequiresPayment bool   `json:"requiresPayment"`
	SetupPayments   bool   `json:"setupPayments"`
	Reason          string `json:"reason,omitempty"`

	LeadID           uuid.UUID  `json:"lead_id"`
	LeadName         string     `json:"lead_name"`
	LeadEmail        string     `json:"lead_email"`
	MembershipLevel  *uuid.UUID `json:"membership_level,omitempty"`
	MembershipActive bool       `json:"membership_active"`
}
