package db_models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type EventType string

const (
	EventTypeInPerson    EventType = "in_person"
	EventTypeLiveCall    EventType = "live_call"
	EventTypePrerecorded EventType = "prerecorded"
)

type Event struct {
	BaseModel
	HostID      uuid.UUID `gorm:"index"`
	Name        string    `gorm:"not null"`
	Description string

	EventType EventType `gorm:"type:event_type;index"` // "in_person" | "live_call" | "prerecorded"

	// Delivery details; which set is meaningful depends on EventType.
	VenueAddress string
	MeetingURL   string
	ContentURL   string

	// Dates the event runs on, as "2006-01-02" strings.
	Dates pq.StringArray `gorm:"type:text[]"`

	Memberships []Membership `gorm:"many2many:event_memberships"`

	Host User `gorm:"foreignKey:HostID"`
}
