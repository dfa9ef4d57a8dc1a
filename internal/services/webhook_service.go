package services

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"eventgate/internal/models/db_models"
	"eventgate/internal/repositories"
	"eventgate/pkg/memcache"
	"eventgate/pkg/stripe"
)

// seenEventTTL bounds the in-memory dedup window for provider event ids. The
// conditional update in the payment repository is the authoritative guard;
// this only short-circuits exact redeliveries cheaply.
const seenEventTTL = 30 * time.Minute

type WebhookServiceInterface interface {
	HandleEvent(ctx context.Context, event *stripe.Event) error
}

type WebhookService struct {
	paymentRepo repositories.PaymentRepository
	leadRepo    repositories.LeadRepository
	userRepo    repositories.UserRepository
	seenEvents  memcache.SeenEventStore
	mail        IMailService
}

func NewWebhookService(
	paymentRepo repositories.PaymentRepository,
	leadRepo repositories.LeadRepository,
	userRepo repositories.UserRepository,
	seenEvents memcache.SeenEventStore,
	mail IMailService) WebhookServiceInterface {
	return &WebhookService{
		paymentRepo: paymentRepo,
		leadRepo:    leadRepo,
		userRepo:    userRepo,
		seenEvents:  seenEvents,
		mail:        mail,
	}
}

// HandleEvent applies one verified webhook event. Business failures (no
// matching payment, unknown account) are logged and swallowed: the provider
// owns the retry schedule and a non-200 only causes redelivery without
// changing the outcome. Only storage errors propagate.
func (w *WebhookService) HandleEvent(ctx context.Context, event *stripe.Event) error {

	if event.ID != "" && w.seenEvents.MarkSeen(event.ID, seenEventTTL) {
		log.Printf("webhook: duplicate delivery of event %s (%s), skipping", event.ID, event.Type)
		return nil
	}

	err := w.apply(ctx, event)
	if err != nil && event.ID != "" {
		// Nothing was applied; the redelivery must not be short-circuited.
		w.seenEvents.Forget(event.ID)
	}
	return err
}

func (w *WebhookService) apply(ctx context.Context, event *stripe.Event) error {
	switch event.Type {
	case stripe.EventCheckoutCompleted:
		return w.applyCheckoutCompleted(ctx, event.CheckoutSession)

	case stripe.EventCheckoutExpired, stripe.EventCheckoutPaymentFailed:
		return w.applyCheckoutFailed(ctx, event.Type, event.CheckoutSession)

	case stripe.EventAccountUpdated:
		return w.applyAccountUpdated(ctx, event.Account)

	case stripe.EventSubscriptionCreated, stripe.EventSubscriptionUpdated:
		return w.applySubscriptionChanged(ctx, event.Subscription)

	case stripe.EventSubscriptionDeleted:
		return w.applySubscriptionDeleted(ctx, event.Subscription)

	default:
		log.Printf("webhook: ignoring event %s (%s)", event.ID, event.Type)
		return nil
	}
}

func (w *WebhookService) applyCheckoutCompleted(ctx context.Context, session *stripe.CheckoutSession) error {
	payment, settled, err := w.paymentRepo.SettleBySessionID(ctx, session.ID)
	if err != nil {
		return err
	}
	if payment == nil {
		// The session may belong to an unrelated product on the same
		// account. Acknowledge so the provider stops redelivering.
		log.Printf("webhook: no payment for session %s", session.ID)
		return nil
	}
	if !settled {
		log.Printf("webhook: payment %s already settled (status=%s), skipping", payment.ID, payment.Status)
		return nil
	}

	log.Printf("webhook: payment %s succeeded, lead %s activated", payment.ID, payment.LeadID)
	w.sendReceipt(ctx, payment)
	return nil
}

func (w *WebhookService) applyCheckoutFailed(ctx context.Context, eventType string, session *stripe.CheckoutSession) error {
	failed, err := w.paymentRepo.FailBySessionID(ctx, session.ID)
	if err != nil {
		return err
	}
	if failed {
		log.Printf("webhook: session %s marked failed (%s)", session.ID, eventType)
	}
	return nil
}

func (w *WebhookService) applyAccountUpdated(ctx context.Context, account *stripe.Account) error {
	user, err := w.userRepo.FindByStripeAccount(ctx, account.ID)
	if err != nil {
		return err
	}
	if user == nil {
		log.Printf("webhook: no host for connected account %s", account.ID)
		return nil
	}

	status := accountStatusFromProvider(account)
	if status == user.StripeAccountStatus {
		return nil
	}

	log.Printf("webhook: host %s account status %s -> %s", user.ID, user.StripeAccountStatus, status)
	return w.userRepo.SetAccountStatus(ctx, user.ID, status)
}

func (w *WebhookService) applySubscriptionChanged(ctx context.Context, sub *stripe.Subscription) error {
	user, err := w.userRepo.FindByStripeCustomer(ctx, sub.Customer)
	if err != nil {
		return err
	}
	if user == nil {
		log.Printf("webhook: no host for customer %s (subscription %s)", sub.Customer, sub.ID)
		return nil
	}

	var trialEndsAt *int64
	if sub.TrialEnd > 0 {
		trialEndsAt = &sub.TrialEnd
	}

	return w.userRepo.SetSubscription(ctx, user.ID, sub.ID, sub.Status, trialEndsAt)
}

func (w *WebhookService) applySubscriptionDeleted(ctx context.Context, sub *stripe.Subscription) error {
	user, err := w.userRepo.FindByStripeCustomer(ctx, sub.Customer)
	if err != nil {
		return err
	}
	if user == nil {
		log.Printf("webhook: no host for customer %s (subscription %s)", sub.Customer, sub.ID)
		return nil
	}

	return w.userRepo.SetSubscription(ctx, user.ID, sub.ID, "canceled", nil)
}

func (w *WebhookService) sendReceipt(ctx context.Context, payment *db_models.Payment) {
	if w.mail == nil {
		return
	}

	lead, err := w.leadRepo.FindByID(ctx, payment.LeadID)
	if err != nil || lead == nil {
		log.Printf("webhook: receipt lookup for lead %s failed: %v", payment.LeadID, err)
		return
	}

	var meta struct {
		EventName      string `json:"event_name"`
		MembershipName string `json:"membership_name"`
	}
	_ = json.Unmarshal(payment.Metadata, &meta)

	if err := w.mail.SendPaymentReceipt(lead.Email, lead.Name, meta.EventName, meta.MembershipName,
		payment.AmountMinor, payment.Currency); err != nil {
		log.Printf("webhook: receipt mail to %s failed: %v", lead.Email, err)
	}
}

// accountStatusFromProvider maps the provider account object onto the host
// status enum: a rejection disabled-reason wins, then both capabilities
// enabled means active, then requirement errors mean restricted, otherwise
// the account is still onboarding.
func accountStatusFromProvider(account *stripe.Account) db_models.AccountStatus {
	if strings.HasPrefix(account.Requirements.DisabledReason, "rejected") {
		return db_models.AccountStatusRejected
	}
	if account.ChargesEnabled && account.PayoutsEnabled {
		return db_models.AccountStatusActive
	}
	if len(account.Requirements.Errors) > 0 {
		return db_models.AccountStatusRestricted
	}
	return db_models.AccountStatusPending
}
