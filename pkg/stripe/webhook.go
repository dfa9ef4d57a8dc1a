package stripe

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Webhook event types the reconciler handles. Everything else decodes to an
// ignored event.
const (
	EventCheckoutCompleted     = "checkout.session.completed"
	EventCheckoutExpired       = "checkout.session.expired"
	EventCheckoutPaymentFailed = "checkout.session.async_payment_failed"
	EventAccountUpdated        = "account.updated"
	EventSubscriptionCreated   = "customer.subscription.created"
	EventSubscriptionUpdated   = "customer.subscription.updated"
	EventSubscriptionDeleted   = "customer.subscription.deleted"
)

var (
	ErrSignatureInvalid  = errors.New("webhook signature verification failed")
	ErrSignatureTooOld   = errors.New("webhook timestamp outside tolerance")
	ErrMalformedEnvelope = errors.New("malformed webhook envelope")
)

// Event is the decoded webhook envelope. Exactly one of the payload fields is
// set, keyed by Type; unhandled types carry Ignored=true and no payload.
type Event struct {
	ID   string
	Type string

	CheckoutSession *CheckoutSession
	Account         *Account
	Subscription    *Subscription

	Ignored bool
}

// DefaultTolerance bounds how stale a signed timestamp may be before the
// event is rejected as a possible replay.
const DefaultTolerance = 5 * time.Minute

// Verifier validates a raw webhook body against its signature header and
// decodes the envelope. Split out as an interface so handlers can be tested
// without computing real signatures.
type Verifier interface {
	ConstructEvent(payload []byte, sigHeader string) (*Event, error)
}

type WebhookVerifier struct {
	secret    string
	tolerance time.Duration
	now       func() time.Time
}

func NewWebhookVerifier(secret string) *WebhookVerifier {
	return &WebhookVerifier{
		secret:    secret,
		tolerance: DefaultTolerance,
		now:       time.Now,
	}
}

// ConstructEvent verifies the stripe-signature header (t=...,v1=... scheme,
// HMAC-SHA256 over "<timestamp>.<payload>") and decodes the envelope. No
// payload field is inspected before the signature checks out.
func (v *WebhookVerifier) ConstructEvent(payload []byte, sigHeader string) (*Event, error) {
	timestamp, signatures, err := parseSignatureHeader(sigHeader)
	if err != nil {
		return nil, err
	}

	if v.tolerance > 0 {
		age := v.now().Sub(time.Unix(timestamp, 0))
		if age > v.tolerance || age < -v.tolerance {
			return nil, ErrSignatureTooOld
		}
	}

	expected := computeSignature(timestamp, payload, v.secret)
	valid := false
	for _, sig := range signatures {
		got, err := hex.DecodeString(sig)
		if err != nil {
			continue
		}
		if hmac.Equal(got, expected) {
			valid = true
			break
		}
	}
	if !valid {
		return nil, ErrSignatureInvalid
	}

	return decodeEvent(payload)
}

func parseSignatureHeader(header string) (int64, []string, error) {
	if header == "" {
		return 0, nil, ErrSignatureInvalid
	}

	var timestamp int64 = -1
	var signatures []string
	for _, part := range strings.Split(header, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "t":
			ts, err := strconv.ParseInt(kv[1], 10, 64)
			if err != nil {
				return 0, nil, ErrSignatureInvalid
			}
			timestamp = ts
		case "v1":
			signatures = append(signatures, kv[1])
		}
	}

	if timestamp < 0 || len(signatures) == 0 {
		return 0, nil, ErrSignatureInvalid
	}
	return timestamp, signatures, nil
}

func computeSignature(timestamp int64, payload []byte, secret string) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", timestamp)
	mac.Write(payload)
	return mac.Sum(nil)
}

// SignPayload produces a valid stripe-signature header for payload. Used by
// tests and the local webhook replayer.
func SignPayload(payload []byte, secret string, at time.Time) string {
	ts := at.Unix()
	sig := computeSignature(ts, payload, secret)
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(sig))
}

func decodeEvent(payload []byte) (*Event, error) {
	var envelope struct {
		ID   string `json:"id"`
		Type string `json:"type"`
		Data struct {
			Object json.RawMessage `json:"object"`
		} `json:"data"`
	}
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil, ErrMalformedEnvelope
	}
	if envelope.Type == "" {
		return nil, ErrMalformedEnvelope
	}

	event := &Event{ID: envelope.ID, Type: envelope.Type}

	switch envelope.Type {
	case EventCheckoutCompleted, EventCheckoutExpired, EventCheckoutPaymentFailed:
		var session CheckoutSession
		if err := json.Unmarshal(envelope.Data.Object, &session); err != nil {
			return nil, ErrMalformedEnvelope
		}
		event.CheckoutSession = &session

	case EventAccountUpdated:
		var account Account
		if err := json.Unmarshal(envelope.Data.Object, &account); err != nil {
			return nil, ErrMalformedEnvelope
		}
		event.Account = &account

	case EventSubscriptionCreated, EventSubscriptionUpdated, EventSubscriptionDeleted:
		var sub Subscription
		if err := json.Unmarshal(envelope.Data.Object, &sub); err != nil {
			return nil, ErrMalformedEnvelope
		}
		event.Subscription = &sub

	default:
		event.Ignored = true
	}

	return event, nil
}
