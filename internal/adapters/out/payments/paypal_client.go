// internal/adapters/out/payments/paypal_client.go
package payments

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	paymentdom "m3dshop/internal/domain/payment"
)

const (
	paypalLiveBase    = "https://api-m.paypal.com"
	paypalSandboxBase = "https://api-m.sandbox.paypal.com"
)

// PayPalClient talks to the Orders v2 API. The OAuth token is fetched per
// operation and held only for the duration of the call; there is no
// cross-request token cache.
type PayPalClient struct {
	baseURL      string
	clientID     string
	clientSecret string
	client       *http.Client
}

// NewPayPalClient picks the live base for env "live", sandbox otherwise.
// baseURL can be overridden afterwards for tests via WithBaseURL.
func NewPayPalClient(env, clientID, clientSecret string) *PayPalClient {
	base := paypalSandboxBase
	if strings.TrimSpace(env) == "live" {
		base = paypalLiveBase
	}
	return &PayPalClient{
		baseURL:      base,
		clientID:     strings.TrimSpace(clientID),
		clientSecret: strings.TrimSpace(clientSecret),
		client:       &http.Client{Timeout: 15 * time.Second},
	}
}

// WithBaseURL retargets the client (httptest servers).
func (c *PayPalClient) WithBaseURL(baseURL string) *PayPalClient {
	c.baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	return c
}

func (c *PayPalClient) accessToken(ctx context.Context) (string, error) {
	if c.clientID == "" || c.clientSecret == "" {
		return "", paymentdom.ErrMissingCredentials
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/oauth2/token",
		strings.NewReader("grant_type=client_credentials"))
	if err != nil {
		return "", err
	}
	basic := base64.StdEncoding.EncodeToString([]byte(c.clientID + ":" + c.clientSecret))
	req.Header.Set("Authorization", "Basic "+basic)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return "", &paymentdom.UpstreamError{Status: res.StatusCode, Body: body}
	}

	var tok struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(body, &tok); err != nil {
		return "", fmt.Errorf("paypal: token response: %w", err)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("paypal: token response has no access_token")
	}
	return tok.AccessToken, nil
}

// CreateOrder posts an order-creation request and returns the order
// snapshot (including its approve link).
func (c *PayPalClient) CreateOrder(ctx context.Context, req paymentdom.OrderRequest) (*paymentdom.Order, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	b, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	return c.doOrder(ctx, http.MethodPost, "/v2/checkout/orders", token, bytes.NewReader(b))
}

// GetOrder fetches the order snapshot by its opaque token (= order id).
func (c *PayPalClient) GetOrder(ctx context.Context, orderToken string) (*paymentdom.Order, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}
	return c.doOrder(ctx, http.MethodGet, "/v2/checkout/orders/"+strings.TrimSpace(orderToken), token, nil)
}

// CaptureOrder finalizes the fund transfer for an approved order. The
// response is order-shaped with the fresh capture inside purchase_units.
func (c *PayPalClient) CaptureOrder(ctx context.Context, orderToken string) (*paymentdom.Order, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}
	return c.doOrder(ctx, http.MethodPost, "/v2/checkout/orders/"+strings.TrimSpace(orderToken)+"/capture", token, nil)
}

func (c *PayPalClient) doOrder(ctx context.Context, method, path, token string, body io.Reader) (*paymentdom.Order, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, &paymentdom.UpstreamError{Status: res.StatusCode, Body: raw}
	}

	var order paymentdom.Order
	if err := json.Unmarshal(raw, &order); err != nil {
		return nil, fmt.Errorf("paypal: order response %s %s: %w", method, path, err)
	}
	return &order, nil
}
