package db_models

type AccountStatus string

const (
	AccountStatusActive     AccountStatus = "active"
	AccountStatusPending    AccountStatus = "pending"
	AccountStatusRestricted AccountStatus = "restricted"
	AccountStatusRejected   AccountStatus = "rejected"
)

// User is a host: the tenant that authors events and receives settled funds
// through its connected Stripe account.
type User struct {
	BaseModel
	Name         string
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"default:'host'"`

	StripeAccountID     string        `gorm:"index"`
	StripeAccountStatus AccountStatus `gorm:"type:account_status;default:'pending'"`

	// Platform billing: the host as a customer of this service.
	StripeCustomerID string `gorm:"index"`

	// Mirrored from customer.subscription.* webhook events.
	StripeSubscriptionID string `gorm:"index"`
	SubscriptionStatus   string
	TrialEndsAt          *int64
}

// PaymentsConfigured reports whether checkout sessions can be routed to this
// host. No connected account means no checkout.
func (u *User) PaymentsConfigured() bool {
	return u.StripeAccountID != ""
}
