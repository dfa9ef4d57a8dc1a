package response_models

import "github.com/google/uuid"

type AccountResponse struct {
	ID                  uuid.UUID `json:"id"`
	Name                string    `json:"name"`
	Email               string    `json:"email"`
	StripeAccountID     string    `json:"stripe_account_id,omitempty"`
	StripeAccountStatus string    `json:"stripe_account_status"`
	SubscriptionStatus  string    `json:"subscription_status,omitempty"`
	TrialEndsAt         *int64    `json:"trial_ends_at,omitempty"`
}
