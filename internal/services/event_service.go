package services

import (
	"context"

	"github.com/google/uuid"

	"eventgate/internal/models/db_models"
	"eventgate/internal/models/request_models"
	"eventgate/internal/repositories"
	"eventgate/pkg/utils"
)

type EventServiceInterface interface {
	CreateEvent(ctx context.Context, hostID uuid.UUID, request request_models.CreateEventRequest) (*db_models.Event, error)
	GetEvent(ctx context.Context, id uuid.UUID) (*db_models.Event, error)
	ListEvents(ctx context.Context, hostID uuid.UUID) ([]db_models.Event, error)
	UpdateEvent(ctx context.Context, hostID, id uuid.UUID, request request_models.UpdateEventRequest) (*db_models.Event, error)
	CreateMembership(ctx context.Context, hostID uuid.UUID, request request_models.CreateMembershipRequest) (*db_models.Membership, error)
	ListMemberships(ctx context.Context, hostID uuid.UUID) ([]db_models.Membership, error)
}

type EventService struct {
	eventRepo      repositories.EventRepository
	membershipRepo repositories.MembershipRepository
}

func NewEventService(
	eventRepo repositories.EventRepository,
	membershipRepo repositories.MembershipRepository) EventServiceInterface {
	return &EventService{
		eventRepo:      eventRepo,
		membershipRepo: membershipRepo,
	}
}

func (e *EventService) CreateEvent(ctx context.Context, hostID uuid.UUID, request request_models.CreateEventRequest) (*db_models.Event, error) {

	if len(request.Dates) > 0 && !utils.ValidDates(request.Dates) {
		return nil, utils.ErrInvalidDate
	}

	event := &db_models.Event{
		HostID:       hostID,
		Name:         request.Name,
		Description:  request.Description,
		EventType:    db_models.EventType(request.EventType),
		VenueAddress: request.Venue,
		MeetingURL:   request.MeetingURL,
		ContentURL:   request.ContentURL,
		Dates:        request.Dates,
	}

	if len(request.MembershipIDs) > 0 {
		memberships, err := e.ownedMemberships(ctx, hostID, request.MembershipIDs)
		if err != nil {
			return nil, err
		}
		event.Memberships = memberships
	}

	if err := e.eventRepo.Insert(ctx, event); err != nil {
		return nil, utils.ErrDatabaseError
	}

	return event, nil
}

func (e *EventService) GetEvent(ctx context.Context, id uuid.UUID) (*db_models.Event, error) {
	event, err := e.eventRepo.FindByID(ctx, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if event == nil {
		return nil, utils.ErrEventNotFound
	}
	return event, nil
}

func (e *EventService) ListEvents(ctx context.Context, hostID uuid.UUID) ([]db_models.Event, error) {
	events, err := e.eventRepo.ListByHost(ctx, hostID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return events, nil
}

func (e *EventService) UpdateEvent(ctx context.Context, hostID, id uuid.UUID, request request_models.UpdateEventRequest) (*db_models.Event, error) {

	event, err := e.eventRepo.FindByID(ctx, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if event == nil || event.HostID != hostID {
		return nil, utils.ErrEventNotFound
	}

	if request.Name != nil {
		event.Name = *request.Name
	}
	if request.Description != nil {
		event.Description = *request.Description
	}
	if request.Venue != nil {
		event.VenueAddress = *request.Venue
	}
	if request.MeetingURL != nil {
		event.MeetingURL = *request.MeetingURL
	}
	if request.ContentURL != nil {
		event.ContentURL = *request.ContentURL
	}
	if request.Dates != nil {
		if !utils.ValidDates(request.Dates) {
			return nil, utils.ErrInvalidDate
		}
		event.Dates = request.Dates
	}

	if err := e.eventRepo.Update(ctx, event); err != nil {
		return nil, utils.ErrDatabaseError
	}

	if request.MembershipIDs != nil {
		memberships, err := e.ownedMemberships(ctx, hostID, request.MembershipIDs)
		if err != nil {
			return nil, err
		}
		if err := e.eventRepo.ReplaceMemberships(ctx, event, memberships); err != nil {
			return nil, utils.ErrDatabaseError
		}
		event.Memberships = memberships
	}

	return event, nil
}

func (e *EventService) CreateMembership(ctx context.Context, hostID uuid.UUID, request request_models.CreateMembershipRequest) (*db_models.Membership, error) {

	membership := &db_models.Membership{
		HostID:      hostID,
		Name:        request.Name,
		PriceMinor:  request.PriceMinor,
		Currency:    request.Currency,
		PaymentType: db_models.PaymentType(request.PaymentType),
		Billing:     db_models.BillingMode(request.Billing),
	}

	if err := e.membershipRepo.Insert(ctx, membership); err != nil {
		return nil, utils.ErrDatabaseError
	}

	return membership, nil
}

func (e *EventService) ListMemberships(ctx context.Context, hostID uuid.UUID) ([]db_models.Membership, error) {
	memberships, err := e.membershipRepo.ListByHost(ctx, hostID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return memberships, nil
}

func (e *EventService) ownedMemberships(ctx context.Context, hostID uuid.UUID, ids []uuid.UUID) ([]db_models.Membership, error) {
	memberships, err := e.membershipRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if len(memberships) != len(ids) {
		return nil, utils.ErrMembershipNotFound
	}
	for i := range memberships {
		if memberships[i].HostID != hostID {
			return nil, utils.ErrMembershipNotFound
		}
	}
	return memberships, nil
}
