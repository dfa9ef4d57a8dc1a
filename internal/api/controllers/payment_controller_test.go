package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"eventgate/pkg/stripe"
)

type stubVerifier struct {
	event *stripe.Event
	err   error
	body  []byte
	sig   string
}

func (v *stubVerifier) ConstructEvent(payload []byte, sigHeader string) (*stripe.Event, error) {
	v.body = payload
	v.sig = sigHeader
	if v.err != nil {
		return nil, v.err
	}
	return v.event, nil
}

type stubWebhookService struct {
	events []*stripe.Event
	err    error
}

func (s *stubWebhookService) HandleEvent(_ context.Context, event *stripe.Event) error {
	s.events = append(s.events, event)
	return s.err
}

func postWebhook(t *testing.T, verifier stripe.Verifier, svc *stubWebhookService, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	controller := NewPaymentController(svc, verifier)
	router.POST("/stripe/webhook", controller.HandleWebhook)

	req := httptest.NewRequest(http.MethodPost, "/stripe/webhook", strings.NewReader(body))
	req.Header.Set("stripe-signature", "t=1,v1=abc")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandleWebhookAcksVerifiedEvent(t *testing.T) {
	verifier := &stubVerifier{event: &stripe.Event{ID: "evt_1", Type: stripe.EventCheckoutCompleted}}
	svc := &stubWebhookService{}

	rec := postWebhook(t, verifier, svc, `{"id":"evt_1"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(svc.events) != 1 || svc.events[0].ID != "evt_1" {
		t.Fatalf("event not forwarded: %+v", svc.events)
	}
	if string(verifier.body) != `{"id":"evt_1"}` || verifier.sig != "t=1,v1=abc" {
		t.Fatal("verifier must receive the raw body and signature header")
	}
}

func TestHandleWebhookRejectsBadSignature(t *testing.T) {
	verifier := &stubVerifier{err: stripe.ErrSignatureInvalid}
	svc := &stubWebhookService{}

	rec := postWebhook(t, verifier, svc, `{}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", rec.Code)
	}
	if len(svc.events) != 0 {
		t.Fatal("unverified event must never reach the service")
	}
}

func TestHandleWebhookRejectsMalformedEnvelope(t *testing.T) {
	verifier := &stubVerifier{err: stripe.ErrMalformedEnvelope}
	svc := &stubWebhookService{}

	rec := postWebhook(t, verifier, svc, `not json`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", rec.Code)
	}
	if len(svc.events) != 0 {
		t.Fatal("malformed event must never reach the service")
	}
}

func TestHandleWebhookAcksDespiteServiceError(t *testing.T) {
	verifier := &stubVerifier{event: &stripe.Event{ID: "evt_1", Type: stripe.EventCheckoutCompleted}}
	svc := &stubWebhookService{err: errors.New("storage down")}

	rec := postWebhook(t, verifier, svc, `{"id":"evt_1"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("processing failures must still ack with 200, got %d", rec.Code)
	}
}
