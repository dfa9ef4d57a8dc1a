package stripe

import (
	"errors"
	"testing"
	"time"
)

const testSecret = "whsec_test"

func fixedVerifier(at time.Time) *WebhookVerifier {
	v := NewWebhookVerifier(testSecret)
	v.now = func() time.Time { return at }
	return v
}

func TestConstructEventRoundTrip(t *testing.T) {
	now := time.Unix(1790000000, 0)
	payload := []byte(`{
		"id": "evt_1",
		"type": "checkout.session.completed",
		"data": {"object": {"id": "cs_1", "payment_status": "paid", "amount_total": 1500, "currency": "usd"}}
	}`)

	event, err := fixedVerifier(now).ConstructEvent(payload, SignPayload(payload, testSecret, now))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if event.ID != "evt_1" || event.Type != EventCheckoutCompleted {
		t.Fatalf("envelope mismatch: %+v", event)
	}
	if event.CheckoutSession == nil || event.CheckoutSession.ID != "cs_1" {
		t.Fatalf("session not decoded: %+v", event.CheckoutSession)
	}
	if event.CheckoutSession.AmountTotal != 1500 {
		t.Fatalf("amount not decoded: %d", event.CheckoutSession.AmountTotal)
	}
}

func TestConstructEventRejectsTamperedPayload(t *testing.T) {
	now := time.Unix(1790000000, 0)
	payload := []byte(`{"id":"evt_1","type":"checkout.session.completed","data":{"object":{"id":"cs_1"}}}`)
	header := SignPayload(payload, testSecret, now)

	tampered := []byte(`{"id":"evt_1","type":"checkout.session.completed","data":{"object":{"id":"cs_EVIL"}}}`)
	if _, err := fixedVerifier(now).ConstructEvent(tampered, header); !errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("expected ErrSignatureInvalid, got %v", err)
	}
}

func TestConstructEventRejectsWrongSecret(t *testing.T) {
	now := time.Unix(1790000000, 0)
	payload := []byte(`{"id":"evt_1","type":"account.updated","data":{"object":{"id":"acct_1"}}}`)
	header := SignPayload(payload, "whsec_other", now)

	if _, err := fixedVerifier(now).ConstructEvent(payload, header); !errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("expected ErrSignatureInvalid, got %v", err)
	}
}

func TestConstructEventRejectsStaleTimestamp(t *testing.T) {
	now := time.Unix(1790000000, 0)
	payload := []byte(`{"id":"evt_1","type":"account.updated","data":{"object":{"id":"acct_1"}}}`)
	header := SignPayload(payload, testSecret, now.Add(-6*time.Minute))

	if _, err := fixedVerifier(now).ConstructEvent(payload, header); !errors.Is(err, ErrSignatureTooOld) {
		t.Fatalf("expected ErrSignatureTooOld, got %v", err)
	}
}

func TestConstructEventRejectsMissingHeader(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"account.updated","data":{"object":{}}}`)
	for _, header := range []string{"", "v1=deadbeef", "t=1790000000", "t=notanumber,v1=deadbeef"} {
		if _, err := fixedVerifier(time.Unix(1790000000, 0)).ConstructEvent(payload, header); !errors.Is(err, ErrSignatureInvalid) {
			t.Fatalf("header %q: expected ErrSignatureInvalid, got %v", header, err)
		}
	}
}

func TestConstructEventAcceptsSecondV1Signature(t *testing.T) {
	// During secret rotation the provider sends multiple v1 entries; any one
	// matching is enough.
	now := time.Unix(1790000000, 0)
	payload := []byte(`{"id":"evt_1","type":"account.updated","data":{"object":{"id":"acct_1"}}}`)
	good := SignPayload(payload, testSecret, now)
	header := "t=1790000000,v1=0000000000000000000000000000000000000000000000000000000000000000," + good[len("t=1790000000,"):]

	if _, err := fixedVerifier(now).ConstructEvent(payload, header); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDecodeEventPerType(t *testing.T) {
	cases := []struct {
		name    string
		payload string
		check   func(t *testing.T, e *Event)
	}{
		{
			name:    "account updated",
			payload: `{"id":"evt_a","type":"account.updated","data":{"object":{"id":"acct_1","charges_enabled":true,"requirements":{"disabled_reason":"rejected.fraud","errors":[{"code":"c","reason":"r"}]}}}}`,
			check: func(t *testing.T, e *Event) {
				if e.Account == nil || e.Account.ID != "acct_1" {
					t.Fatalf("account not decoded: %+v", e)
				}
				if e.Account.Requirements.DisabledReason != "rejected.fraud" {
					t.Fatal("requirements not decoded")
				}
				if len(e.Account.Requirements.Errors) != 1 || e.Account.Requirements.Errors[0].Code != "c" {
					t.Fatal("requirement errors not decoded")
				}
			},
		},
		{
			name:    "subscription updated",
			payload: `{"id":"evt_s","type":"customer.subscription.updated","data":{"object":{"id":"sub_1","customer":"cus_1","status":"trialing","trial_end":1790000000}}}`,
			check: func(t *testing.T, e *Event) {
				if e.Subscription == nil || e.Subscription.Customer != "cus_1" {
					t.Fatalf("subscription not decoded: %+v", e)
				}
				if e.Subscription.TrialEnd != 1790000000 {
					t.Fatal("trial_end not decoded")
				}
			},
		},
		{
			name:    "expired session",
			payload: `{"id":"evt_e","type":"checkout.session.expired","data":{"object":{"id":"cs_9"}}}`,
			check: func(t *testing.T, e *Event) {
				if e.CheckoutSession == nil || e.CheckoutSession.ID != "cs_9" {
					t.Fatalf("session not decoded: %+v", e)
				}
			},
		},
		{
			name:    "unhandled type",
			payload: `{"id":"evt_x","type":"invoice.finalized","data":{"object":{"id":"in_1"}}}`,
			check: func(t *testing.T, e *Event) {
				if !e.Ignored {
					t.Fatal("unhandled type must decode as ignored")
				}
				if e.CheckoutSession != nil || e.Account != nil || e.Subscription != nil {
					t.Fatal("ignored event must carry no payload")
				}
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			event, err := decodeEvent([]byte(tc.payload))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tc.check(t, event)
		})
	}
}

func TestDecodeEventMalformed(t *testing.T) {
	for _, payload := range []string{
		`not json`,
		`{"id":"evt_1","data":{"object":{}}}`,
		`{"id":"evt_1","type":"checkout.session.completed","data":{"object":"nope"}}`,
	} {
		if _, err := decodeEvent([]byte(payload)); !errors.Is(err, ErrMalformedEnvelope) {
			t.Fatalf("payload %q: expected ErrMalformedEnvelope, got %v", payload, err)
		}
	}
}
