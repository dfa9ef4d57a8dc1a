package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"eventgate/internal/models/db_models"
	"eventgate/internal/models/request_models"
	"eventgate/internal/models/response_models"
	"eventgate/internal/repositories"
	"eventgate/pkg/stripe"
	"eventgate/pkg/utils"
)

type CheckoutConfig struct {
	AppBaseURL string // e.g. https://app.example.com
}

type CheckoutServiceInterface interface {
	PurchaseMembership(ctx context.Context, request request_models.PurchaseMembershipRequest) (*response_models.CheckoutResponse, error)
}

type CheckoutService struct {
	eventRepo   repositories.EventRepository
	leadRepo    repositories.LeadRepository
	contactRepo repositories.ContactRepository
	paymentRepo repositories.PaymentRepository
	userRepo    repositories.UserRepository
	gateway     stripe.Gateway
	cfg         CheckoutConfig
}

func NewCheckoutService(
	eventRepo repositories.EventRepository,
	leadRepo repositories.LeadRepository,
	contactRepo repositories.ContactRepository,
	paymentRepo repositories.PaymentRepository,
	userRepo repositories.UserRepository,
	gateway stripe.Gateway,
	cfg CheckoutConfig) CheckoutServiceInterface {
	return &CheckoutService{
		eventRepo:   eventRepo,
		leadRepo:    leadRepo,
		contactRepo: contactRepo,
		paymentRepo: paymentRepo,
		userRepo:    userRepo,
		gateway:     gateway,
		cfg:         cfg,
	}
}

// paymentMeta is the receipt snapshot stored on the Payment row. Enough to
// render a receipt at webhook time without re-querying event or membership.
type paymentMeta struct {
	EventName      string   `json:"event_name"`
	MembershipName string   `json:"membership_name"`
	PricingRule    string   `json:"pricing_rule"` // "per_day" | "package"
	SelectedDates  []string `json:"selected_dates,omitempty"`
}

func (s *CheckoutService) PurchaseMembership(ctx context.Context, request request_models.PurchaseMembershipRequest) (*response_models.CheckoutResponse, error) {

	event, err := s.eventRepo.FindByID(ctx, request.EventID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if event == nil {
		return nil, utils.ErrEventNotFound
	}

	membership := findAttachedMembership(event, request.MembershipID)
	if membership == nil {
		return nil, utils.ErrMembershipNotFound
	}

	lead, err := s.leadRepo.FindByEventAndToken(ctx, request.EventID, request.Token)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if lead == nil {
		return nil, utils.ErrLeadNotFound
	}
	if !strings.EqualFold(strings.TrimSpace(request.Email), strings.TrimSpace(lead.Email)) {
		return nil, utils.ErrEmailMismatch
	}

	// A second checkout session must never be created for an active lead.
	if lead.MembershipActive {
		return nil, utils.ErrAlreadyPurchased
	}

	host, err := s.userRepo.FindByID(ctx, event.HostID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if host == nil {
		return nil, utils.ErrAccountNotFound
	}
	if !host.PaymentsConfigured() {
		return nil, utils.ErrPaymentsNotConfigured
	}

	contact, customerID, err := s.ensureCustomer(ctx, lead)
	if err != nil {
		return nil, err
	}

	amount, description, err := computePrice(membership, request.Dates)
	if err != nil {
		return nil, err
	}

	// Pending Payment row first, session second. A session that exists
	// without a local row could settle invisibly; a row without a session is
	// inert and sweepable.
	payment := &db_models.Payment{
		ContactID:        contact.ID,
		LeadID:           lead.ID,
		EventID:          event.ID,
		MembershipID:     membership.ID,
		HostID:           event.HostID,
		StripeCustomerID: customerID,
		AmountMinor:      amount,
		Currency:         strings.ToUpper(membership.Currency),
		Status:           db_models.PaymentStatusPending,
		PaymentType:      membership.PaymentType,
		SelectedDates:    request.Dates,
	}
	payment.Metadata, _ = json.Marshal(paymentMeta{
		EventName:      event.Name,
		MembershipName: membership.Name,
		PricingRule:    string(membership.Billing),
		SelectedDates:  request.Dates,
	})

	if err := s.paymentRepo.Insert(ctx, payment); err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}

	session, err := s.gateway.CreateCheckoutSession(ctx, stripe.CheckoutParams{
		Customer:          customerID,
		Mode:              checkoutMode(membership.PaymentType),
		ItemName:          fmt.Sprintf("%s: %s", event.Name, membership.Name),
		Description:       description,
		AmountMinor:       amount,
		Currency:          membership.Currency,
		RecurringInterval: recurringInterval(membership),
		SuccessURL:        s.successURL(event),
		CancelURL:         fmt.Sprintf("%s/events/%s", s.cfg.AppBaseURL, event.ID),
		Metadata: map[string]string{
			"payment_id": payment.ID.String(),
			"lead_id":    lead.ID.String(),
			"event_id":   event.ID.String(),
		},
		ConnectedAccount: host.StripeAccountID,
	})
	if err != nil {
		if markErr := s.paymentRepo.MarkFailed(ctx, payment.ID); markErr != nil {
			log.Printf("checkout: mark payment %s failed: %v", payment.ID, markErr)
		}
		return nil, fmt.Errorf("create checkout session: %w", err)
	}

	if err := s.paymentRepo.AttachSessionID(ctx, payment.ID, session.ID); err != nil {
		// The session exists but cannot be tied back to the row; the webhook
		// for it will log as unmatched. Surface the failure to the caller.
		log.Printf("checkout: attach session %s to payment %s: %v", session.ID, payment.ID, err)
		return nil, utils.ErrDatabaseError
	}

	return &response_models.CheckoutResponse{
		SessionID:   session.ID,
		CheckoutURL: session.URL,
		AmountMinor: amount,
		Currency:    strings.ToUpper(membership.Currency),
		Description: description,
	}, nil
}

func (s *CheckoutService) ensureCustomer(ctx context.Context, lead *db_models.Lead) (*db_models.Contact, string, error) {
	contact, err := s.contactRepo.FindByID(ctx, lead.ContactID)
	if err != nil {
		return nil, "", utils.ErrDatabaseError
	}
	if contact == nil {
		return nil, "", utils.ErrContactNotFound
	}

	if contact.StripeCustomerID != "" {
		return contact, contact.StripeCustomerID, nil
	}

	customerID, err := s.gateway.CreateCustomer(ctx, contact.Email, contact.Name)
	if err != nil {
		return nil, "", fmt.Errorf("create customer: %w", err)
	}
	if err := s.contactRepo.SetStripeCustomerID(ctx, contact.ID, customerID); err != nil {
		return nil, "", utils.ErrDatabaseError
	}

	return contact, customerID, nil
}

// computePrice applies the billing rule. Per-day multiplies the tier price by
// the number of selected dates and requires at least one; package is flat no
// matter how many dates are chosen.
func computePrice(membership *db_models.Membership, dates []string) (int64, string, error) {
	switch membership.Billing {
	case db_models.BillingPerDay:
		if len(dates) == 0 {
			return 0, "", utils.ErrDatesRequired
		}
		if !utils.ValidDates(dates) {
			return 0, "", utils.ErrInvalidDate
		}
		amount := membership.PriceMinor * int64(len(dates))
		description := fmt.Sprintf("%d day(s) of access at %d %s/day",
			len(dates), membership.PriceMinor, strings.ToUpper(membership.Currency))
		return amount, description, nil

	default: // package
		if len(dates) > 0 && !utils.ValidDates(dates) {
			return 0, "", utils.ErrInvalidDate
		}
		return membership.PriceMinor, "multi-day access, one payment", nil
	}
}

func checkoutMode(paymentType db_models.PaymentType) string {
	if paymentType == db_models.PaymentTypeRecurring {
		return "subscription"
	}
	return "payment"
}

// recurringInterval resolves the billing period for subscription sessions;
// one-off tiers carry none.
func recurringInterval(membership *db_models.Membership) string {
	if membership.PaymentType != db_models.PaymentTypeRecurring {
		return ""
	}
	if membership.RecurringInterval == "" {
		return "month"
	}
	return membership.RecurringInterval
}

// successURL picks the post-checkout redirect by delivery mode: prerecorded
// events land on content playback, everything else on a thank-you page.
func (s *CheckoutService) successURL(event *db_models.Event) string {
	if event.EventType == db_models.EventTypePrerecorded {
		return fmt.Sprintf("%s/events/%s/content", s.cfg.AppBaseURL, event.ID)
	}
	return fmt.Sprintf("%s/events/%s/thank-you?ts=%d", s.cfg.AppBaseURL, event.ID, utils.NowUnixSeconds())
}

func findAttachedMembership(event *db_models.Event, membershipID uuid.UUID) *db_models.Membership {
	for i := range event.Memberships {
		if event.Memberships[i].ID == membershipID {
			return &event.Memberships[i]
		}
	}
	return nil
}
