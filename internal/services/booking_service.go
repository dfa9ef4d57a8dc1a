package services

import (
	"context"

	"github.com/google/uuid"

	"eventgate/internal/models/db_models"
	"eventgate/internal/models/request_models"
	"eventgate/internal/repositories"
	"eventgate/pkg/utils"
)

type BookingServiceInterface interface {
	CreateBooking(ctx context.Context, request request_models.CreateBookingRequest) (*db_models.Booking, error)
	ListByEvent(ctx context.Context, hostID, eventID uuid.UUID) ([]db_models.Booking, error)
	CancelBooking(ctx context.Context, hostID, bookingID uuid.UUID) error
}

type BookingService struct {
	eventRepo   repositories.EventRepository
	leadRepo    repositories.LeadRepository
	bookingRepo repositories.BookingRepository
}

func NewBookingService(
	eventRepo repositories.EventRepository,
	leadRepo repositories.LeadRepository,
	bookingRepo repositories.BookingRepository) BookingServiceInterface {
	return &BookingService{
		eventRepo:   eventRepo,
		leadRepo:    leadRepo,
		bookingRepo: bookingRepo,
	}
}

func (b *BookingService) CreateBooking(ctx context.Context, request request_models.CreateBookingRequest) (*db_models.Booking, error) {

	event, err := b.eventRepo.FindByID(ctx, request.EventID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if event == nil {
		return nil, utils.ErrEventNotFound
	}

	lead, err := b.leadRepo.FindByEventAndToken(ctx, request.EventID, request.Token)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if lead == nil {
		return nil, utils.ErrLeadNotFound
	}

	// Bookings honor the same gate as content access.
	if eventHasPaidTier(event) && !lead.MembershipActive {
		return nil, utils.ErrMembershipRequired
	}

	if !dateOffered(event, request.Date) {
		return nil, utils.ErrInvalidDate
	}

	booking := &db_models.Booking{
		EventID: event.ID,
		LeadID:  lead.ID,
		HostID:  event.HostID,
		Date:    request.Date,
		Status:  db_models.BookingStatusConfirmed,
	}

	if err := b.bookingRepo.Insert(ctx, booking); err != nil {
		return nil, utils.ErrDatabaseError
	}

	return booking, nil
}

func (b *BookingService) ListByEvent(ctx context.Context, hostID, eventID uuid.UUID) ([]db_models.Booking, error) {
	event, err := b.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if event == nil || event.HostID != hostID {
		return nil, utils.ErrEventNotFound
	}

	bookings, err := b.bookingRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return bookings, nil
}

func (b *BookingService) CancelBooking(ctx context.Context, hostID, bookingID uuid.UUID) error {
	booking, err := b.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if booking == nil || booking.HostID != hostID {
		return utils.ErrBookingNotFound
	}

	if err := b.bookingRepo.Cancel(ctx, bookingID); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func dateOffered(event *db_models.Event, date string) bool {
	if len(event.Dates) == 0 {
		return utils.ValidDates([]string{date})
	}
	for _, d := range event.Dates {
		if d == date {
			return true
		}
	}
	return false
}
