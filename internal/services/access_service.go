package services

import (
	"context"
	"log"
	"strings"

	"eventgate/internal/models/db_models"
	"eventgate/internal/models/request_models"
	"eventgate/internal/models/response_models"
	"eventgate/internal/repositories"
	"eventgate/pkg/stripe"
	"eventgate/pkg/utils"
)

type AccessServiceInterface interface {
	EvaluateAccess(ctx context.Context, request request_models.ValidateEventRequest) (*response_models.AccessDecision, error)
}

type AccessService struct {
	eventRepo   repositories.EventRepository
	leadRepo    repositories.LeadRepository
	contactRepo repositories.ContactRepository
	gateway     stripe.Gateway
}

func NewAccessService(
	eventRepo repositories.EventRepository,
	leadRepo repositories.LeadRepository,
	contactRepo repositories.ContactRepository,
	gateway stripe.Gateway) AccessServiceInterface {
	return &AccessService{
		eventRepo:   eventRepo,
		leadRepo:    leadRepo,
		contactRepo: contactRepo,
		gateway:     gateway,
	}
}

func (a *AccessService) EvaluateAccess(ctx context.Context, request request_models.ValidateEventRequest) (*response_models.AccessDecision, error) {

	event, err := a.eventRepo.FindByID(ctx, request.EventID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if event == nil {
		return nil, utils.ErrEventNotFound
	}

	// Token lookup fails closed: no match means not found, never default-allow.
	lead, err := a.leadRepo.FindByEventAndToken(ctx, request.EventID, request.Token)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if lead == nil {
		return nil, utils.ErrLeadNotFound
	}

	// A valid token with the wrong identity is a hard denial, not a payment
	// prompt. Guards against token guessing.
	if !strings.EqualFold(strings.TrimSpace(request.Email), strings.TrimSpace(lead.Email)) {
		return nil, utils.ErrEmailMismatch
	}

	decision := &response_models.AccessDecision{
		LeadID:           lead.ID,
		LeadName:         lead.Name,
		LeadEmail:        lead.Email,
		MembershipLevel:  lead.MembershipLevel,
		MembershipActive: lead.MembershipActive,
	}

	// Two gating computations exist upstream of this service's history: one
	// scans every tier attached to the event, the other looks only at the
	// lead's own tier. They disagree when a host removes a tier that leads
	// already hold. The event-tier scan is the one used: it is conservative
	// (a lead whose tier vanished stays gated until a payment reactivates
	// them) and does not depend on per-lead state that host edits can orphan.
	gated := eventHasPaidTier(event)

	if !gated || lead.MembershipActive {
		decision.IsAllowed = true
		return decision, nil
	}

	decision.IsAllowed = false
	decision.RequiresPayment = true
	decision.Reason = "membership purchase required"

	// The client will call purchase next; make sure a gateway customer
	// exists for the contact so checkout can reference it. Check-then-create
	// keeps this idempotent.
	if err := a.ensureGatewayCustomer(ctx, lead, decision); err != nil {
		return nil, err
	}

	return decision, nil
}

func (a *AccessService) ensureGatewayCustomer(ctx context.Context, lead *db_models.Lead, decision *response_models.AccessDecision) error {
	contact, err := a.contactRepo.FindByID(ctx, lead.ContactID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if contact == nil {
		return utils.ErrContactNotFound
	}

	if contact.StripeCustomerID != "" {
		return nil
	}

	customerID, err := a.gateway.CreateCustomer(ctx, contact.Email, contact.Name)
	if err != nil {
		// Access evaluation still answers; checkout will retry customer
		// creation when it runs.
		log.Printf("access: create customer for contact %s failed: %v", contact.ID, err)
		return nil
	}

	if err := a.contactRepo.SetStripeCustomerID(ctx, contact.ID, customerID); err != nil {
		return utils.ErrDatabaseError
	}

	decision.SetupPayments = true
	return nil
}

// eventHasPaidTier reports whether any tier attached to the event gates
// access, i.e. has a name other than the literal "Free". An event with zero
// tiers is unrestricted.
func eventHasPaidTier(event *db_models.Event) bool {
	for i := range event.Memberships {
		if !event.Memberships[i].IsFree() {
			return true
		}
	}
	return false
}

// leadTierIsPaid is the alternative gating computation: judge only the
// lead's own tier. A tier no longer attached to the event counts as paid
// (conservative denial).
func leadTierIsPaid(event *db_models.Event, lead *db_models.Lead) bool {
	if lead.MembershipLevel == nil {
		return false
	}
	for i := range event.Memberships {
		if event.Memberships[i].ID == *lead.MembershipLevel {
			return !event.Memberships[i].IsFree()
		}
	}
	return true
}
