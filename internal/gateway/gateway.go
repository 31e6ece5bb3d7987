package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"freightapi/internal/domain"
)

// Order is the gateway-side record created before collecting payment.
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt,omitempty"`
	Status   string `json:"status,omitempty"`
}

// Gateway creates payment orders at the provider. Amount is in minor units.
type Gateway interface {
	CreateOrder(ctx context.Context, amount int64, currency, receipt string, notes map[string]string) (Order, error)
}

// Client talks to a Razorpay-style orders API with basic auth.
type Client struct {
	BaseURL    string
	KeyID      string
	KeySecret  string
	HTTPClient *http.Client
}

func (c Client) client() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: 15 * time.Second}
}

type orderRequest struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}

type gatewayErrorBody struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

func (c Client) CreateOrder(ctx context.Context, amount int64, currency, receipt string, notes map[string]string) (Order, error) {
	body, err := json.Marshal(orderRequest{
		Amount:   amount,
		Currency: currency,
		Receipt:  receipt,
		Notes:    notes,
	})
	if err != nil {
		return Order{}, domain.InternalError{Msg: "failed to encode order request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return Order{}, domain.InternalError{Msg: "failed to build order request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.KeyID, c.KeySecret)

	resp, err := c.client().Do(req)
	if err != nil {
		return Order{}, domain.GatewayError{Msg: "order creation request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var ge gatewayErrorBody
		_ = json.NewDecoder(resp.Body).Decode(&ge)
		if ge.Error.Code == "" {
			ge.Error.Code = fmt.Sprintf("HTTP_%d", resp.StatusCode)
		}
		return Order{}, domain.GatewayError{Code: ge.Error.Code, Msg: ge.Error.Description}
	}

	var order Order
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return Order{}, domain.GatewayError{Msg: "failed to decode order response", Err: err}
	}
	if order.ID == "" {
		return Order{}, domain.GatewayError{Msg: "gateway returned order without id"}
	}
	return order, nil
}
