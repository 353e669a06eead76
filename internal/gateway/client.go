package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Config holds the merchant parameters for the payment gateway.
type Config struct {
	BaseURL     string
	EntityID    string
	BearerToken string
	Currency    string
	TestMode    string
	// SuccessPrefixes are the result-code prefixes this gateway counts as
	// success. Gateway convention, so configuration rather than code.
	SuccessPrefixes []string
}

// Client talks to the OPPWA-style payment gateway over HTTPS with
// bearer-token auth. All payloads are form-encoded per the gateway API.
type Client struct {
	config Config
	http   *http.Client
}

func NewClient(config Config) *Client {
	return &Client{
		config: config,
		http:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Successful reports whether a result code belongs to the configured success
// family. Any other code is a failure.
func (c *Client) Successful(code string) bool {
	for _, prefix := range c.config.SuccessPrefixes {
		if strings.HasPrefix(code, prefix) {
			return true
		}
	}
	return false
}

// Charge performs a synchronous direct debit.
func (c *Client) Charge(ctx context.Context, card CardFields) (*Response, error) {
	payload := url.Values{}
	payload.Set("entityId", c.config.EntityID)
	payload.Set("amount", card.Amount)
	payload.Set("currency", c.config.Currency)
	payload.Set("paymentBrand", card.Brand)
	payload.Set("paymentType", "DB")
	payload.Set("card.number", card.Number)
	payload.Set("card.holder", card.Holder)
	payload.Set("card.expiryMonth", card.ExpiryMonth)
	payload.Set("card.expiryYear", card.ExpiryYear)
	payload.Set("card.cvv", card.CVV)

	return c.post(ctx, "/v1/payments", payload)
}

// Initiate3DS starts a 3-D-Secure authentication. callbackURL is where the
// bank sends the shopper's browser after the challenge; it must be the
// externally reachable origin of this service.
func (c *Client) Initiate3DS(ctx context.Context, card CardFields, callbackURL string) (*Response, error) {
	merchantTxID := card.MerchantTransactionID
	if merchantTxID == "" {
		merchantTxID = fmt.Sprintf("ORD-%d", time.Now().UnixNano())
	}

	payload := url.Values{}
	payload.Set("entityId", c.config.EntityID)
	payload.Set("amount", card.Amount)
	payload.Set("currency", c.config.Currency)
	payload.Set("paymentBrand", card.Brand)
	payload.Set("merchantTransactionId", merchantTxID)
	payload.Set("transactionCategory", "EC")
	payload.Set("card.holder", card.Holder)
	payload.Set("card.number", card.Number)
	payload.Set("card.expiryMonth", card.ExpiryMonth)
	payload.Set("card.expiryYear", card.ExpiryYear)
	payload.Set("card.cvv", card.CVV)
	payload.Set("shopperResultUrl", callbackURL)
	if c.config.TestMode != "" {
		payload.Set("testMode", c.config.TestMode)
	}
	// Browser fingerprint fields are mandatory for 3DS.
	payload.Set("customer.browser.acceptHeader", "text/html")
	payload.Set("customer.browser.userAgent", "Mozilla/5.0")
	payload.Set("customer.browser.challengeWindow", "4")

	return c.post(ctx, "/v1/threeDSecure", payload)
}

// Verify queries the final status of a payment server-to-server.
func (c *Client) Verify(ctx context.Context, payID string) (*Response, error) {
	endpoint := fmt.Sprintf("%s/v1/payments/%s?entityId=%s",
		c.config.BaseURL, url.PathEscape(payID), url.QueryEscape(c.config.EntityID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build verify request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.config.BearerToken)

	return c.do(req)
}

func (c *Client) post(ctx context.Context, path string, payload url.Values) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.config.BaseURL+path, strings.NewReader(payload.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build gateway request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.config.BearerToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return c.do(req)
}

func (c *Client) do(req *http.Request) (*Response, error) {
	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway unreachable: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read gateway response: %w", err)
	}

	// The gateway returns result payloads on 4xx as well, so the body is
	// decoded regardless of status.
	var response Response
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("malformed gateway response (status %d): %w", res.StatusCode, err)
	}
	response.Raw = body

	return &response, nil
}
