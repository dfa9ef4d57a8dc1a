package db_models

import "github.com/google/uuid"

type PaymentType string

const (
	PaymentTypeOneOff    PaymentType = "one_off"
	PaymentTypeRecurring PaymentType = "recurring"
)

type BillingMode string

const (
	BillingPerDay  BillingMode = "per_day"
	BillingPackage BillingMode = "package"
)

// FreeTierName is the one tier name that never gates access.
const FreeTierName = "Free"

type Membership struct {
	BaseModel
	HostID uuid.UUID `gorm:"index"`
	Name   string    `gorm:"not null"`

	PriceMinor int64  // 999 = $9.99
	Currency   string `gorm:"size:3"`

	PaymentType PaymentType `gorm:"type:payment_type"` // "one_off" | "recurring"
	Billing     BillingMode `gorm:"type:billing_mode"` // "per_day" | "package"

	// RecurringInterval is the subscription billing period ("month", "week",
	// "year"). Only meaningful when PaymentType is recurring; empty means
	// monthly.
	RecurringInterval string `gorm:"size:10"`

	Events []Event `gorm:"many2many:event_memberships"`
}

// IsFree reports whether this tier is the non-gating "Free" tier.
func (m *Membership) IsFree() bool {
	return m.Name == FreeTierName
}
