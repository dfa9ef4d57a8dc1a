package db_models

import "github.com/google/uuid"

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCanceled  BookingStatus = "canceled"
)

type Booking struct {
	BaseModel
	EventID uuid.UUID `gorm:"index"`
	LeadID  uuid.UUID `gorm:"index"`
	HostID  uuid.UUID `gorm:"index"`

	Date   string        `gorm:"size:10"` // "2006-01-02"
	Status BookingStatus `gorm:"type:booking_status;default:'confirmed'"`

	Event Event `gorm:"foreignKey:EventID"`
	Lead  Lead  `gorm:"foreignKey:LeadID"`
}
