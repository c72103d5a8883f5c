package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"sova/models"
	"sova/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func doJSON(r http.Handler, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		_ = json.NewEncoder(&buf).Encode(b)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

// --- /validate-reward

func TestValidateReward(t *testing.T) {
	r := gin.New()
	r.POST("/validate-reward", NewRewardController().ValidateReward)

	w := doJSON(r, "POST", "/validate-reward", gin.H{"title": "Helping Hands", "amount": 598}, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"valid":true,"message":"Valid reward."}`, w.Body.String())

	w = doJSON(r, "POST", "/validate-reward", gin.H{"title": "Helping Hands", "amount": 300}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"valid":false,"message":"Invalid reward amount or amount is not a multiple of the reward value."}`, w.Body.String())

	w = doJSON(r, "POST", "/validate-reward", gin.H{"title": "Gold", "amount": 299}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"valid":false,"message":"Invalid reward title."}`, w.Body.String())

	w = doJSON(r, "POST", "/validate-reward", `{"title":`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, decode(t, w)["valid"])
}

// --- /create-order

type stubBroker struct {
	result models.OrderResult
	err    error
	calls  []models.CreateOrderRequest
}

func (b *stubBroker) CreateOrder(_ context.Context, title string, amountMinor int64, email, phone string) (models.OrderResult, error) {
	b.calls = append(b.calls, models.CreateOrderRequest{Title: title, Amount: amountMinor, Email: email, Phone: phone})
	return b.result, b.err
}

func TestCreateOrder(t *testing.T) {
	broker := &stubBroker{result: models.OrderResult{OrderID: "order_1700000000000", OrderToken: "tok"}}
	r := gin.New()
	r.POST("/create-order", NewOrderController(broker).CreateOrder)

	w := doJSON(r, "POST", "/create-order", gin.H{"title": "Helping Hands", "amount": 29900, "email": "a@b.com", "phone": "9999999999"}, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"orderId":"order_1700000000000","orderToken":"tok"}`, w.Body.String())
	require.Len(t, broker.calls, 1)
	assert.Equal(t, models.CreateOrderRequest{Title: "Helping Hands", Amount: 29900, Email: "a@b.com", Phone: "9999999999"}, broker.calls[0])
}

func TestCreateOrder_Errors(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"invalid amount", fmt.Errorf("%w: %w", services.ErrInvalidPledge, services.ErrInvalidAmount), http.StatusBadRequest, "Invalid reward amount or amount is not a multiple of the reward value."},
		{"invalid title", fmt.Errorf("%w: %w", services.ErrInvalidPledge, services.ErrInvalidTier), http.StatusBadRequest, "Invalid reward title."},
		{"gateway down", fmt.Errorf("%w: 502", services.ErrOrderCreationFailed), http.StatusInternalServerError, "Internal Server Error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.POST("/create-order", NewOrderController(&stubBroker{err: tc.err}).CreateOrder)

			w := doJSON(r, "POST", "/create-order", gin.H{"title": "Helping Hands", "amount": 29900}, nil)
			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, tc.message, decode(t, w)["message"])
		})
	}
}

func TestCreateOrder_BadBody(t *testing.T) {
	broker := &stubBroker{}
	r := gin.New()
	r.POST("/create-order", NewOrderController(broker).CreateOrder)

	w := doJSON(r, "POST", "/create-order", `{"title":"Helping Hands","amount":"lots"}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, broker.calls)
}

// --- /verify-payment

type stubRecorder struct {
	result    *services.RecordResult
	err       error
	signature string
	payload   []byte
	req       models.VerifyPaymentRequest
}

func (s *stubRecorder) RecordCompletedPayment(_ context.Context, req models.VerifyPaymentRequest, signature string, payload []byte) (*services.RecordResult, error) {
	s.req, s.signature, s.payload = req, signature, payload
	return s.result, s.err
}

func TestVerifyPayment(t *testing.T) {
	rec := &stubRecorder{result: &services.RecordResult{Donation: &models.Donation{DonorID: "1234567"}}}
	r := gin.New()
	r.POST("/verify-payment", NewPaymentController(rec, zap.NewNop()).VerifyPayment)

	body := `{"orderId":"order_1","paymentId":"pay_1","name":"Ravi","phone":"9","address":"Pune","email":"r@x.in","donorTitle":"Dual Impact","totalContribution":549}`
	w := doJSON(r, "POST", "/verify-payment", body, map[string]string{"x-cf-signature": "sig=="})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Payment verified and donation recorded!", decode(t, w)["message"])
	assert.Equal(t, "sig==", rec.signature)
	assert.Equal(t, body, string(rec.payload))
	assert.Equal(t, "order_1", rec.req.OrderID)
	assert.EqualValues(t, 549, rec.req.TotalContribution)
}

func TestVerifyPayment_ErrorMapping(t *testing.T) {
	cases := []struct {
		err     error
		status  int
		message string
	}{
		{fmt.Errorf("%w: email", services.ErrMissingField), http.StatusBadRequest, "Invalid input."},
		{services.ErrSignatureMismatch, http.StatusBadRequest, "Invalid signature"},
		{fmt.Errorf("%w: %w", services.ErrInvalidPledge, services.ErrInvalidAmount), http.StatusBadRequest, "Invalid reward amount or amount is not a multiple of the reward value."},
		{fmt.Errorf("%w: db down", services.ErrAllocationFailed), http.StatusInternalServerError, "Internal Server Error"},
		{errors.New("insert failed"), http.StatusInternalServerError, "Internal Server Error"},
	}
	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			r := gin.New()
			r.POST("/verify-payment", NewPaymentController(&stubRecorder{err: tc.err}, zap.NewNop()).VerifyPayment)

			w := doJSON(r, "POST", "/verify-payment", gin.H{"orderId": "order_1"}, nil)
			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, tc.message, decode(t, w)["message"])
		})
	}
}

func TestVerifyPayment_MalformedJSON(t *testing.T) {
	rec := &stubRecorder{err: fmt.Errorf("%w: orderId", services.ErrMissingField)}
	r := gin.New()
	r.POST("/verify-payment", NewPaymentController(rec, zap.NewNop()).VerifyPayment)

	w := doJSON(r, "POST", "/verify-payment", `{"orderId":`, map[string]string{"x-cf-signature": "sig=="})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid input.", decode(t, w)["message"])
	// the raw body still reaches the recorder so the callback is journaled
	assert.Equal(t, `{"orderId":`, string(rec.payload))
	assert.Equal(t, "sig==", rec.signature)
	assert.Equal(t, models.VerifyPaymentRequest{}, rec.req)
}

// --- /api/donors, /api/get-stats

type stubDonors struct {
	donations []models.Donation
	err       error
}

func (s stubDonors) ListRecent(context.Context, int, int) ([]models.Donation, error) {
	return s.donations, s.err
}

type stubStats struct {
	stats models.CampaignStats
	err   error
}

func (s stubStats) Get(context.Context) (models.CampaignStats, error) { return s.stats, s.err }

func TestGetDonors_HidesContactDetails(t *testing.T) {
	donors := stubDonors{donations: []models.Donation{
		{DonorID: "2000000", Name: "B", Phone: "111", Email: "b@x.in", Address: "Goa", DonorTitle: "Dual Impact", TotalContribution: 549, Timestamp: 2},
		{DonorID: "1000000", Name: "A", Phone: "222", Email: "a@x.in", Address: "Pune", DonorTitle: "Helping Hands", TotalContribution: 299, Timestamp: 1},
	}}
	r := gin.New()
	r.GET("/api/donors", NewDonorController(donors, stubStats{}, zap.NewNop()).GetDonors)

	w := doJSON(r, "GET", "/api/donors", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[
		{"id":"2000000","name":"B","donorTitle":"Dual Impact","totalContribution":549,"timestamp":2},
		{"id":"1000000","name":"A","donorTitle":"Helping Hands","totalContribution":299,"timestamp":1}
	]`, w.Body.String())
	assert.NotContains(t, w.Body.String(), "a@x.in")
}

func TestGetDonors_Empty(t *testing.T) {
	r := gin.New()
	r.GET("/api/donors", NewDonorController(stubDonors{}, stubStats{}, zap.NewNop()).GetDonors)

	w := doJSON(r, "GET", "/api/donors", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestGetDonorsAndStats_StoreErrors(t *testing.T) {
	r := gin.New()
	ctrl := NewDonorController(stubDonors{err: errors.New("down")}, stubStats{err: errors.New("down")}, zap.NewNop())
	r.GET("/api/donors", ctrl.GetDonors)
	r.GET("/api/get-stats", ctrl.GetStats)

	assert.Equal(t, http.StatusInternalServerError, doJSON(r, "GET", "/api/donors", nil, nil).Code)
	assert.Equal(t, http.StatusInternalServerError, doJSON(r, "GET", "/api/get-stats", nil, nil).Code)
}

func TestGetStats(t *testing.T) {
	r := gin.New()
	stats := stubStats{stats: models.CampaignStats{TotalDonation: 100000, TotalFarmersReached: 500, TotalContributions: 300}}
	r.GET("/api/get-stats", NewDonorController(stubDonors{}, stats, zap.NewNop()).GetStats)

	w := doJSON(r, "GET", "/api/get-stats", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"totalDonation":100000,"totalFarmersReached":500,"totalContributions":300}`, w.Body.String())
}

// --- content

func TestContentController(t *testing.T) {
	content, err := services.NewContentService("")
	require.NoError(t, err)
	ctrl := NewContentController(content)

	r := gin.New()
	r.GET("/api/reward-content", ctrl.Rewards)
	r.GET("/api/getVideos", ctrl.Videos)
	r.GET("/api/target-date", ctrl.TargetDate)
	r.GET("/api/hero-content", ctrl.Hero)

	w := doJSON(r, "GET", "/api/reward-content", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var rewards []models.RewardContent
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rewards))
	require.NotEmpty(t, rewards)
	assert.Equal(t, "Selfless Supporter", rewards[0].Heading)
	assert.EqualValues(t, 119, rewards[0].Price)

	w = doJSON(r, "GET", "/api/getVideos", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["videos"], 3)

	w = doJSON(r, "GET", "/api/target-date", nil, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Target date not set"}`, w.Body.String())

	assert.Equal(t, http.StatusOK, doJSON(r, "GET", "/api/hero-content", nil, nil).Code)
}

func TestContentController_TargetDate(t *testing.T) {
	content, err := services.NewContentService("2025-01-31")
	require.NoError(t, err)
	r := gin.New()
	r.GET("/api/target-date", NewContentController(content).TargetDate)

	w := doJSON(r, "GET", "/api/target-date", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"targetDate":"2025-01-31"}`, w.Body.String())
}

// --- /api/send-email

type stubContact struct {
	got   []models.ContactRequest
	inbox string
	err   error
}

func (s *stubContact) SendContact(req models.ContactRequest, inbox string) error {
	s.got = append(s.got, req)
	s.inbox = inbox
	return s.err
}

func TestSendEmail(t *testing.T) {
	sender := &stubContact{}
	r := gin.New()
	r.POST("/api/send-email", NewContactController(sender, "inbox@sova.in", zap.NewNop()).SendEmail)

	w := doJSON(r, "POST", "/api/send-email", gin.H{"name": "Kiran", "email": "kiran@example.com", "message": "Hi"}, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Message sent successfully!", decode(t, w)["message"])
	require.Len(t, sender.got, 1)
	assert.Equal(t, "inbox@sova.in", sender.inbox)

	w = doJSON(r, "POST", "/api/send-email", gin.H{"name": "Kiran", "email": "not-an-email", "message": "Hi"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Len(t, sender.got, 1)
}

func TestSendEmail_Failure(t *testing.T) {
	r := gin.New()
	r.POST("/api/send-email", NewContactController(&stubContact{err: errors.New("smtp down")}, "inbox@sova.in", zap.NewNop()).SendEmail)

	w := doJSON(r, "POST", "/api/send-email", gin.H{"name": "Kiran", "email": "kiran@example.com", "message": "Hi"}, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to send email", decode(t, w)["error"])
}
