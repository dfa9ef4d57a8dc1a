package db_models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusSucceeded PaymentStatus = "succeeded"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// Payment records one checkout attempt. CheckoutSessionID is unique so a
// provider session maps back to at most one row; status moves
// pending->succeeded or pending->failed exactly once (conditional update in
// the repository).
type Payment struct {
	BaseModel
	ContactID    uuid.UUID `gorm:"index"`
	LeadID       uuid.UUID `gorm:"index"`
	EventID      uuid.UUID `gorm:"index"`
	MembershipID uuid.UUID `gorm:"index"`
	HostID       uuid.UUID `gorm:"index"`

	CheckoutSessionID string `gorm:"uniqueIndex"`
	StripeCustomerID  string `gorm:"index"`

	AmountMinor int64
	Currency    string        `gorm:"size:3"`
	Status      PaymentStatus `gorm:"type:payment_status;index"`
	PaymentType PaymentType   `gorm:"type:payment_type"`

	PaidAt   *int64
	FailedAt *int64

	// Dates the buyer selected, as "2006-01-02" strings.
	SelectedDates pq.StringArray `gorm:"type:text[]"`

	// Receipt snapshot: event name, membership name, pricing rule. Enough to
	// render a receipt at webhook time without re-querying.
	Metadata datatypes.JSON `gorm:"type:jsonb;default:'{}'"`

	Lead       Lead       `gorm:"foreignKey:LeadID"`
	Membership Membership `gorm:"foreignKey:MembershipID"`
}
