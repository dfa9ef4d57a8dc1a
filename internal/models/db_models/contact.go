package db_models

import "github.com/google/uuid"

// Contact is the host-scoped identity behind one or more Leads. The payment
// gateway customer id lives here so a returning registrant reuses it.
type Contact struct {
	BaseModel
	HostID uuid.UUID `gorm:"index:ux_contacts_host_email,unique,priority:1"`
	Email  string    `gorm:"index:ux_contacts_host_email,unique,priority:2;not null"`
	Name   string
	Phone  string

	StripeCustomerID string `gorm:"index"`
}
