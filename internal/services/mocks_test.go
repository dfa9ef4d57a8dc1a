package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"eventgate/internal/models/db_models"
	"eventgate/pkg/stripe"
)

// In-memory fakes for the repository and gateway interfaces. They mimic the
// real semantics closely enough to exercise the state-transition logic,
// including the conditional settle.

type fakeEventRepo struct {
	events map[uuid.UUID]*db_models.Event
}

func newFakeEventRepo(events ...*db_models.Event) *fakeEventRepo {
	r := &fakeEventRepo{events: make(map[uuid.UUID]*db_models.Event)}
	for _, e := range events {
		r.events[e.ID] = e
	}
	return r
}

func (r *fakeEventRepo) Insert(_ context.Context, event *db_models.Event) error {
	r.events[event.ID] = event
	return nil
}

func (r *fakeEventRepo) FindByID(_ context.Context, id uuid.UUID) (*db_models.Event, error) {
	return r.events[id], nil
}

func (r *fakeEventRepo) ListByHost(_ context.Context, hostID uuid.UUID) ([]db_models.Event, error) {
	var out []db_models.Event
	for _, e := range r.events {
		if e.HostID == hostID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) Update(_ context.Context, event *db_models.Event) error {
	r.events[event.ID] = event
	return nil
}

func (r *fakeEventRepo) ReplaceMemberships(_ context.Context, event *db_models.Event, memberships []db_models.Membership) error {
	event.Memberships = memberships
	return nil
}

type fakeLeadRepo struct {
	leads map[uuid.UUID]*db_models.Lead
}

func newFakeLeadRepo(leads ...*db_models.Lead) *fakeLeadRepo {
	r := &fakeLeadRepo{leads: make(map[uuid.UUID]*db_models.Lead)}
	for _, l := range leads {
		r.leads[l.ID] = l
	}
	return r
}

func (r *fakeLeadRepo) Insert(_ context.Context, lead *db_models.Lead) error {
	if lead.ID == uuid.Nil {
		lead.ID = uuid.New()
	}
	r.leads[lead.ID] = lead
	return nil
}

func (r *fakeLeadRepo) FindByID(_ context.Context, id uuid.UUID) (*db_models.Lead, error) {
	return r.leads[id], nil
}

func (r *fakeLeadRepo) FindByEventAndToken(_ context.Context, eventID uuid.UUID, token string) (*db_models.Lead, error) {
	for _, l := range r.leads {
		if l.EventID == eventID && l.Token == token {
			return l, nil
		}
	}
	return nil, nil
}

func (r *fakeLeadRepo) ListByEvent(_ context.Context, eventID uuid.UUID) ([]db_models.Lead, error) {
	var out []db_models.Lead
	for _, l := range r.leads {
		if l.EventID == eventID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (r *fakeLeadRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.leads, id)
	return nil
}

type fakeContactRepo struct {
	contacts map[uuid.UUID]*db_models.Contact
}

func newFakeContactRepo(contacts ...*db_models.Contact) *fakeContactRepo {
	r := &fakeContactRepo{contacts: make(map[uuid.UUID]*db_models.Contact)}
	for _, c := range contacts {
		r.contacts[c.ID] = c
	}
	return r
}

func (r *fakeContactRepo) Insert(_ context.Context, contact *db_models.Contact) error {
	if contact.ID == uuid.Nil {
		contact.ID = uuid.New()
	}
	r.contacts[contact.ID] = contact
	return nil
}

func (r *fakeContactRepo) FindByID(_ context.Context, id uuid.UUID) (*db_models.Contact, error) {
	return r.contacts[id], nil
}

func (r *fakeContactRepo) FindByHostAndEmail(_ context.Context, hostID uuid.UUID, email string) (*db_models.Contact, error) {
	for _, c := range r.contacts {
		if c.HostID == hostID && c.Email == email {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeContactRepo) SetStripeCustomerID(_ context.Context, id uuid.UUID, customerID string) error {
	if c, ok := r.contacts[id]; ok {
		c.StripeCustomerID = customerID
	}
	return nil
}

type fakePaymentRepo struct {
	mu        sync.Mutex
	payments  map[uuid.UUID]*db_models.Payment
	leads     *fakeLeadRepo
	settleErr error
}

func newFakePaymentRepo(leads *fakeLeadRepo, payments ...*db_models.Payment) *fakePaymentRepo {
	r := &fakePaymentRepo{payments: make(map[uuid.UUID]*db_models.Payment), leads: leads}
	for _, p := range payments {
		r.payments[p.ID] = p
	}
	return r
}

func (r *fakePaymentRepo) Insert(_ context.Context, payment *db_models.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	r.payments[payment.ID] = payment
	return nil
}

func (r *fakePaymentRepo) FindBySessionID(_ context.Context, sessionID string) (*db_models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.bySession(sessionID), nil
}

func (r *fakePaymentRepo) AttachSessionID(_ context.Context, paymentID uuid.UUID, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payments[paymentID]
	if !ok {
		return errors.New("payment not found")
	}
	p.CheckoutSessionID = sessionID
	return nil
}

func (r *fakePaymentRepo) MarkFailed(_ context.Context, paymentID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.payments[paymentID]; ok {
		p.Status = db_models.PaymentStatusFailed
	}
	return nil
}

func (r *fakePaymentRepo) SettleBySessionID(_ context.Context, sessionID string) (*db_models.Payment, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.settleErr != nil {
		return nil, false, r.settleErr
	}

	p := r.bySession(sessionID)
	if p == nil {
		return nil, false, nil
	}
	if p.Status != db_models.PaymentStatusPending {
		return p, false, nil
	}

	p.Status = db_models.PaymentStatusSucceeded
	if lead, ok := r.leads.leads[p.LeadID]; ok {
		lead.MembershipActive = true
	}
	return p, true, nil
}

func (r *fakePaymentRepo) FailBySessionID(_ context.Context, sessionID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.bySession(sessionID)
	if p == nil || p.Status != db_models.PaymentStatusPending {
		return false, nil
	}
	p.Status = db_models.PaymentStatusFailed
	return true, nil
}

func (r *fakePaymentRepo) bySession(sessionID string) *db_models.Payment {
	for _, p := range r.payments {
		if p.CheckoutSessionID == sessionID && sessionID != "" {
			return p
		}
	}
	return nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*db_models.User
}

func newFakeUserRepo(users ...*db_models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[uuid.UUID]*db_models.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Insert(_ context.Context, user *db_models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*db_models.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*db_models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByStripeAccount(_ context.Context, accountID string) (*db_models.User, error) {
	for _, u := range r.users {
		if u.StripeAccountID == accountID && accountID != "" {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByStripeCustomer(_ context.Context, customerID string) (*db_models.User, error) {
	for _, u := range r.users {
		if u.StripeCustomerID == customerID && customerID != "" {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) SetStripeAccount(_ context.Context, id uuid.UUID, accountID string, status db_models.AccountStatus) error {
	if u, ok := r.users[id]; ok {
		u.StripeAccountID = accountID
		u.StripeAccountStatus = status
	}
	return nil
}

func (r *fakeUserRepo) SetAccountStatus(_ context.Context, id uuid.UUID, status db_models.AccountStatus) error {
	if u, ok := r.users[id]; ok {
		u.StripeAccountStatus = status
	}
	return nil
}

func (r *fakeUserRepo) SetSubscription(_ context.Context, id uuid.UUID, subscriptionID, status string, trialEndsAt *int64) error {
	if u, ok := r.users[id]; ok {
		u.StripeSubscriptionID = subscriptionID
		u.SubscriptionStatus = status
		u.TrialEndsAt = trialEndsAt
	}
	return nil
}

type fakeBookingRepo struct {
	bookings map[uuid.UUID]*db_models.Booking
}

func newFakeBookingRepo(bookings ...*db_models.Booking) *fakeBookingRepo {
	r := &fakeBookingRepo{bookings: make(map[uuid.UUID]*db_models.Booking)}
	for _, b := range bookings {
		r.bookings[b.ID] = b
	}
	return r
}

func (r *fakeBookingRepo) Insert(_ context.Context, booking *db_models.Booking) error {
	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	r.bookings[booking.ID] = booking
	return nil
}

func (r *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*db_models.Booking, error) {
	return r.bookings[id], nil
}

func (r *fakeBookingRepo) ListByEvent(_ context.Context, eventID uuid.UUID) ([]db_models.Booking, error) {
	var out []db_models.Booking
	for _, b := range r.bookings {
		if b.EventID == eventID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) CountByLead(_ context.Context, leadID uuid.UUID) (int64, error) {
	var n int64
	for _, b := range r.bookings {
		if b.LeadID == leadID && b.Status == db_models.BookingStatusConfirmed {
			n++
		}
	}
	return n, nil
}

func (r *fakeBookingRepo) Cancel(_ context.Context, id uuid.UUID) error {
	if b, ok := r.bookings[id]; ok {
		b.Status = db_models.BookingStatusCanceled
	}
	return nil
}

// fakeGateway records calls; failures are injectable per method.
type fakeGateway struct {
	sessions        []stripe.CheckoutParams
	nextSession     *stripe.CheckoutSession
	sessionErr      error
	customers       []string
	customerErr     error
	account         *stripe.Account
	accountErr      error
	customerCounter int
}

func (g *fakeGateway) CreateCheckoutSession(_ context.Context, params stripe.CheckoutParams) (*stripe.CheckoutSession, error) {
	if g.sessionErr != nil {
		return nil, g.sessionErr
	}
	g.sessions = append(g.sessions, params)
	if g.nextSession != nil {
		return g.nextSession, nil
	}
	return &stripe.CheckoutSession{ID: "cs_test_1", URL: "https://checkout.example/cs_test_1"}, nil
}

func (g *fakeGateway) CreateCustomer(_ context.Context, email, _ string) (string, error) {
	if g.customerErr != nil {
		return "", g.customerErr
	}
	g.customerCounter++
	id := "cus_" + email
	g.customers = append(g.customers, id)
	return id, nil
}

func (g *fakeGateway) GetAccount(_ context.Context, accountID string) (*stripe.Account, error) {
	if g.accountErr != nil {
		return nil, g.accountErr
	}
	if g.account != nil {
		return g.account, nil
	}
	return &stripe.Account{ID: accountID, ChargesEnabled: true, PayoutsEnabled: true}, nil
}

type fakeMail struct {
	accessLinks []string
	receipts    []string
	err         error
}

func (m *fakeMail) SendLeadAccessLink(to, _, _, _ string) error {
	if m.err != nil {
		return m.err
	}
	m.accessLinks = append(m.accessLinks, to)
	return nil
}

func (m *fakeMail) SendPaymentReceipt(to, _, _, _ string, _ int64, _ string) error {
	if m.err != nil {
		return m.err
	}
	m.receipts = append(m.receipts, to)
	return nil
}

type fakeSeenEvents struct {
	seen map[string]bool
}

func newFakeSeenEvents() *fakeSeenEvents {
	return &fakeSeenEvents{seen: make(map[string]bool)}
}

func (s *fakeSeenEvents) MarkSeen(eventID string, _ time.Duration) bool {
	if s.seen[eventID] {
		return true
	}
	s.seen[eventID] = true
	return false
}

func (s *fakeSeenEvents) Forget(eventID string) {
	delete(s.seen, eventID)
}
