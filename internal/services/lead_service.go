package services

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"eventgate/internal/models/db_models"
	"eventgate/internal/models/request_models"
	"eventgate/internal/models/response_models"
	"eventgate/internal/repositories"
	"eventgate/pkg/utils"
)

type LeadServiceInterface interface {
	Register(ctx context.Context, request request_models.RegisterLeadRequest) (*response_models.RegisterLeadResponse, error)
	ListByEvent(ctx context.Context, hostID, eventID uuid.UUID) ([]db_models.Lead, error)
	Delete(ctx context.Context, hostID, leadID uuid.UUID) error
}

type LeadService struct {
	eventRepo   repositories.EventRepository
	leadRepo    repositories.LeadRepository
	contactRepo repositories.ContactRepository
	bookingRepo repositories.BookingRepository
	mail        IMailService
	appBaseURL  string
}

func NewLeadService(
	eventRepo repositories.EventRepository,
	leadRepo repositories.LeadRepository,
	contactRepo repositories.ContactRepository,
	bookingRepo repositories.BookingRepository,
	mail IMailService,
	appBaseURL string) LeadServiceInterface {
	return &LeadService{
		eventRepo:   eventRepo,
		leadRepo:    leadRepo,
		contactRepo: contactRepo,
		bookingRepo: bookingRepo,
		mail:        mail,
		appBaseURL:  appBaseURL,
	}
}

func (l *LeadService) Register(ctx context.Context, request request_models.RegisterLeadRequest) (*response_models.RegisterLeadResponse, error) {

	event, err := l.eventRepo.FindByID(ctx, request.EventID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if event == nil {
		return nil, utils.ErrEventNotFound
	}

	if request.MembershipID != nil && findAttachedMembership(event, *request.MembershipID) == nil {
		return nil, utils.ErrMembershipNotFound
	}

	contact, err := l.findOrCreateContact(ctx, event.HostID, request)
	if err != nil {
		return nil, err
	}

	token, err := utils.GenerateLeadToken(16)
	if err != nil {
		return nil, err
	}

	lead := &db_models.Lead{
		EventID:         event.ID,
		ContactID:       contact.ID,
		HostID:          event.HostID,
		Name:            request.Name,
		Email:           request.Email,
		Phone:           request.Phone,
		Token:           token,
		MembershipLevel: request.MembershipID,
	}

	if err := l.leadRepo.Insert(ctx, lead); err != nil {
		return nil, utils.ErrDatabaseError
	}

	if l.mail != nil {
		accessURL := fmt.Sprintf("%s/events/%s?token=%s", l.appBaseURL, event.ID, token)
		if err := l.mail.SendLeadAccessLink(lead.Email, lead.Name, event.Name, accessURL); err != nil {
			log.Printf("lead: access link mail to %s failed: %v", lead.Email, err)
		}
	}

	return &response_models.RegisterLeadResponse{
		LeadID:  lead.ID,
		EventID: event.ID,
		Token:   token,
	}, nil
}

func (l *LeadService) findOrCreateContact(ctx context.Context, hostID uuid.UUID, request request_models.RegisterLeadRequest) (*db_models.Contact, error) {
	contact, err := l.contactRepo.FindByHostAndEmail(ctx, hostID, request.Email)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if contact != nil {
		return contact, nil
	}

	contact = &db_models.Contact{
		HostID: hostID,
		Email:  request.Email,
		Name:   request.Name,
		Phone:  request.Phone,
	}
	if err := l.contactRepo.Insert(ctx, contact); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return contact, nil
}

func (l *LeadService) ListByEvent(ctx context.Context, hostID, eventID uuid.UUID) ([]db_models.Lead, error) {
	event, err := l.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if event == nil || event.HostID != hostID {
		return nil, utils.ErrEventNotFound
	}

	leads, err := l.leadRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return leads, nil
}

// Delete refuses to remove a lead that still has confirmed bookings.
func (l *LeadService) Delete(ctx context.Context, hostID, leadID uuid.UUID) error {
	lead, err := l.leadRepo.FindByID(ctx, leadID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if lead == nil || lead.HostID != hostID {
		return utils.ErrLeadNotFound
	}

	count, err := l.bookingRepo.CountByLead(ctx, leadID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if count > 0 {
		return utils.ErrLeadHasBookings
	}

	if err := l.leadRepo.Delete(ctx, leadID); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}
