package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Gateway is the slice of the payment provider the platform consumes:
// checkout session creation, customer creation, connected-account lookup.
type Gateway interface {
	CreateCheckoutSession(ctx context.Context, params CheckoutParams) (*CheckoutSession, error)
	CreateCustomer(ctx context.Context, email, name string) (string, error)
	GetAccount(ctx context.Context, accountID string) (*Account, error)
}

type CheckoutParams struct {
	Customer    string
	Mode        string // "payment" | "subscription"
	ItemName    string
	Description string
	AmountMinor int64
	Currency    string
	Quantity    int64
	SuccessURL  string
	CancelURL   string
	Metadata    map[string]string

	// RecurringInterval ("month", "week", "year") is required by Stripe for
	// subscription-mode sessions; line items without it are rejected.
	RecurringInterval string

	// ConnectedAccount routes the session (and settlement) to the host's
	// Stripe account via the Stripe-Account header.
	ConnectedAccount string
}

type CheckoutSession struct {
	ID            string `json:"id"`
	URL           string `json:"url"`
	Customer      string `json:"customer"`
	Subscription  string `json:"subscription"`
	PaymentStatus string `json:"payment_status"`
	AmountTotal   int64  `json:"amount_total"`
	Currency      string `json:"currency"`
}

type AccountRequirements struct {
	CurrentlyDue   []string `json:"currently_due"`
	DisabledReason string   `json:"disabled_reason"`
	Errors         []struct {
		Code   string `json:"code"`
		Reason string `json:"reason"`
	} `json:"errors"`
}

type Account struct {
	ID             string              `json:"id"`
	ChargesEnabled bool                `json:"charges_enabled"`
	PayoutsEnabled bool                `json:"payouts_enabled"`
	Requirements   AccountRequirements `json:"requirements"`
}

type Subscription struct {
	ID                string `json:"id"`
	Customer          string `json:"customer"`
	Status            string `json:"status"`
	TrialEnd          int64  `json:"trial_end"`
	CancelAtPeriodEnd bool   `json:"cancel_at_period_end"`
}

// Client talks to the Stripe REST API directly with form-encoded requests.
type Client struct {
	secretKey  string
	httpClient *http.Client
	baseURL    string
}

func NewClient(secretKey string) *Client {
	return &Client{
		secretKey:  secretKey,
		httpClient: &http.Client{},
		baseURL:    "https://api.stripe.com/v1",
	}
}

func (c *Client) CreateCheckoutSession(ctx context.Context, params CheckoutParams) (*CheckoutSession, error) {
	qty := params.Quantity
	if qty <= 0 {
		qty = 1
	}

	data := url.Values{}
	data.Set("mode", params.Mode)
	data.Set("customer", params.Customer)
	data.Set("line_items[0][price_data][currency]", strings.ToLower(params.Currency))
	data.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(params.AmountMinor, 10))
	data.Set("line_items[0][price_data][product_data][name]", params.ItemName)
	if params.Description != "" {
		data.Set("line_items[0][price_data][product_data][description]", params.Description)
	}
	if params.Mode == "subscription" {
		interval := params.RecurringInterval
		if interval == "" {
			interval = "month"
		}
		data.Set("line_items[0][price_data][recurring][interval]", interval)
	}
	data.Set("line_items[0][quantity]", strconv.FormatInt(qty, 10))
	data.Set("success_url", params.SuccessURL)
	data.Set("cancel_url", params.CancelURL)
	for k, v := range params.Metadata {
		data.Set(fmt.Sprintf("metadata[%s]", k), v)
	}

	var session CheckoutSession
	if err := c.post(ctx, "/checkout/sessions", data, params.ConnectedAccount, &session); err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}
	if session.ID == "" {
		return nil, fmt.Errorf("create checkout session: missing session ID in response")
	}

	return &session, nil
}

func (c *Client) CreateCustomer(ctx context.Context, email, name string) (string, error) {
	data := url.Values{}
	data.Set("email", email)
	if name != "" {
		data.Set("name", name)
	}

	var customer struct {
		ID string `json:"id"`
	}
	if err := c.post(ctx, "/customers", data, "", &customer); err != nil {
		return "", fmt.Errorf("create customer: %w", err)
	}
	if customer.ID == "" {
		return "", fmt.Errorf("create customer: missing customer ID in response")
	}

	return customer.ID, nil
}

func (c *Client) GetAccount(ctx context.Context, accountID string) (*Account, error) {
	var account Account
	if err := c.get(ctx, "/accounts/"+accountID, &account); err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	return &account, nil
}

// HTTP helpers

func (c *Client) post(ctx context.Context, path string, data url.Values, stripeAccount string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(data.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.secretKey, "")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if stripeAccount != "" {
		req.Header.Set("Stripe-Account", stripeAccount)
	}

	return c.doRequest(req, out)
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.secretKey, "")

	return c.doRequest(req, out)
}

func (c *Client) doRequest(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error struct {
				Type    string `json:"type"`
				Code    string `json:"code"`
				Message string `json:"message"`
			} `json:"error"`
		}
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
			return fmt.Errorf("stripe: %s (%s)", apiErr.Error.Message, apiErr.Error.Code)
		}
		return fmt.Errorf("stripe: HTTP %d", resp.StatusCode)
	}

	return json.Unmarshal(body, out)
}
