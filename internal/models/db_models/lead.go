package db_models

import "github.com/google/uuid"

// Lead is a registrant for one event, identified by an opaque per-event token.
// MembershipActive only ever flips true inside the webhook reconciler's
// transaction after a payment settles; it is never accepted from a client.
type Lead struct {
	BaseModel
	EventID   uuid.UUID `gorm:"index:ux_leads_event_token,unique,priority:1"`
	ContactID uuid.UUID `gorm:"index"`
	HostID    uuid.UUID `gorm:"index"`

	Name  string
	Email string `gorm:"index"`
	Phone string

	Token string `gorm:"index:ux_leads_event_token,unique,priority:2;not null"`

	MembershipLevel  *uuid.UUID `gorm:"index"` // tier purchased (or chosen at registration)
	MembershipActive bool       `gorm:"default:false"`

	Event   Event   `gorm:"foreignKey:EventID"`
	Contact Contact `gorm:"foreignKey:ContactID"`
}
