package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"sova/models"
)

// Cashfree - клиент платёжного шлюза Cashfree PG
type Cashfree struct {
	baseURL    string
	appID      string
	secret     string
	apiVersion string
	client     *http.Client
}

// NewCashfree создает клиента. timeout ограничивает каждый запрос к шлюзу.
func NewCashfree(baseURL, appID, secret, apiVersion string, timeout time.Duration) *Cashfree {
	return &Cashfree{
		baseURL:    strings.TrimRight(baseURL, "/"),
		appID:      appID,
		secret:     secret,
		apiVersion: apiVersion,
		client:     &http.Client{Timeout: timeout},
	}
}

type cashfreeCustomer struct {
	CustomerID    string `json:"customer_id"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`
}

type cashfreeOrderRequest struct {
	OrderID         string           `json:"order_id"`
	OrderAmount     int64            `json:"order_amount"`
	OrderCurrency   string           `json:"order_currency"`
	CustomerDetails cashfreeCustomer `json:"customer_details"`
	OrderNote       string           `json:"order_note,omitempty"`
}

type cashfreeOrderResponse struct {
	OrderID          string `json:"order_id"`
	OrderToken       string `json:"order_token"`
	PaymentSessionID string `json:"payment_session_id"`
	Message          string `json:"message"`
}

// request делает запрос к Cashfree API
func (cf *Cashfree) request(ctx context.Context, method, endpoint string, body interface{}) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, cf.baseURL+endpoint, reqBody)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-client-id", cf.appID)
	req.Header.Set("x-client-secret", cf.secret)
	if cf.apiVersion != "" {
		req.Header.Set("x-api-version", cf.apiVersion)
	}

	return cf.client.Do(req)
}

// CreateOrder opens a hosted-checkout order and returns the gateway's order
// token verbatim. Any failure wraps ErrOrderCreationFailed.
func (cf *Cashfree) CreateOrder(ctx context.Context, order models.Order) (string, error) {
	payload := cashfreeOrderRequest{
		OrderID:       order.OrderID,
		OrderAmount:   order.AmountMajorUnits,
		OrderCurrency: order.Currency,
		CustomerDetails: cashfreeCustomer{
			CustomerID:    order.CustomerID,
			CustomerEmail: order.CustomerEmail,
			CustomerPhone: order.CustomerPhone,
		},
		OrderNote: order.Note,
	}

	resp, err := cf.request(ctx, http.MethodPost, "/pg/orders", payload)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrOrderCreationFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", ErrOrderCreationFailed, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: gateway returned %d: %s", ErrOrderCreationFailed, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var result cashfreeOrderResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("%w: failed to parse response: %v", ErrOrderCreationFailed, err)
	}

	token := result.OrderToken
	if token == "" {
		token = result.PaymentSessionID
	}
	if token == "" {
		return "", fmt.Errorf("%w: gateway returned no order token", ErrOrderCreationFailed)
	}
	return token, nil
}
