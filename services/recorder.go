package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"sova/metrics"
	"sova/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const maxInsertAttempts = 5

// DonationRepository is the part of the datastore the recorder needs.
type DonationRepository interface {
	DonorIDChecker
	FindByOrderID(ctx context.Context, orderID string) (*models.Donation, error)
	Create(ctx context.Context, donation *models.Donation) error
	SaveCallback(ctx context.Context, callback *models.PaymentCallback) error
}

// NotificationQueue accepts thank-you jobs for background delivery.
type NotificationQueue interface {
	Enqueue(job NotificationJob) error
}

// CacheInvalidator drops derived data after a new donation.
type CacheInvalidator interface {
	Invalidate(ctx context.Context)
}

// RecordResult is a committed donation. Replayed is set when the callback
// repeated an already recorded order.
type RecordResult struct {
	Donation *models.Donation
	Replayed bool
}

// DonationRecorder handles payment-completion callbacks.
type DonationRecorder struct {
	store     DonationRepository
	allocator *IDAllocator
	notifier  NotificationQueue
	cache     CacheInvalidator
	secret    string
	logger    *zap.Logger
	now       func() time.Time
}

func NewDonationRecorder(store DonationRepository, notifier NotificationQueue, cache CacheInvalidator, secret string, logger *zap.Logger) *DonationRecorder {
	return &DonationRecorder{
		store:     store,
		allocator: NewIDAllocator(store),
		notifier:  notifier,
		cache:     cache,
		secret:    secret,
		logger:    logger,
		now:       time.Now,
	}
}

// SignCallback computes the base64 HMAC-SHA256 of orderID+paymentID.
func SignCallback(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + paymentID))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// VerifySignature compares signature against the expected value in constant time.
func VerifySignature(secret, orderID, paymentID, signature string) bool {
	expected := SignCallback(secret, orderID, paymentID)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// RecordCompletedPayment verifies a gateway callback and appends the
// donation. Nothing is written to the donation table unless every check
// passes. The notification is queued after the commit and its failure is
// only logged.
func (r *DonationRecorder) RecordCompletedPayment(ctx context.Context, req models.VerifyPaymentRequest, signature string, payload []byte) (*RecordResult, error) {
	result, outcome, err := r.record(ctx, req, signature)
	r.audit(ctx, req, signature, payload, outcome)
	metrics.CallbackCounter.WithLabelValues(outcome).Inc()
	return result, err
}

func (r *DonationRecorder) record(ctx context.Context, req models.VerifyPaymentRequest, signature string) (*RecordResult, string, error) {
	if field := firstMissingField(req); field != "" {
		return nil, models.CallbackMissingField, fmt.Errorf("%w: %s", ErrMissingField, field)
	}

	if !VerifySignature(r.secret, req.OrderID, req.PaymentID, signature) {
		r.logger.Warn("payment callback signature mismatch",
			zap.String("order_id", req.OrderID),
			zap.String("payment_id", req.PaymentID),
		)
		return nil, models.CallbackSignatureMismatch, ErrSignatureMismatch
	}

	if _, err := ValidateReward(req.DonorTitle, req.TotalContribution); err != nil {
		r.logger.Warn("payment callback carries an invalid pledge",
			zap.String("order_id", req.OrderID),
			zap.String("donor_title", req.DonorTitle),
			zap.Int64("total_contribution", req.TotalContribution),
		)
		return nil, models.CallbackInvalidPledge, fmt.Errorf("%w: %w", ErrInvalidPledge, err)
	}

	existing, err := r.store.FindByOrderID(ctx, req.OrderID)
	if err != nil {
		return nil, models.CallbackError, fmt.Errorf("lookup order %s: %w", req.OrderID, err)
	}
	if existing != nil {
		r.logger.Info("payment callback replayed", zap.String("order_id", req.OrderID), zap.String("donor_id", existing.DonorID))
		return &RecordResult{Donation: existing, Replayed: true}, models.CallbackReplayed, nil
	}

	for attempt := 0; attempt < maxInsertAttempts; attempt++ {
		donorID, err := r.allocator.Allocate(ctx)
		if err != nil {
			return nil, models.CallbackError, err
		}

		donation := &models.Donation{
			DonorID:           donorID,
			OrderID:           req.OrderID,
			PaymentID:         req.PaymentID,
			Name:              req.Name,
			Phone:             req.Phone,
			Address:           req.Address,
			Email:             req.Email,
			DonorTitle:        req.DonorTitle,
			TotalContribution: req.TotalContribution,
			Timestamp:         r.now().UnixMilli(),
		}

		err = r.store.Create(ctx, donation)
		if err == nil {
			r.committed(ctx, donation)
			return &RecordResult{Donation: donation}, models.CallbackRecorded, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.CallbackError, fmt.Errorf("record donation for %s: %w", req.OrderID, err)
		}

		// Either the donor id was taken concurrently or a parallel callback
		// for the same order won the race.
		existing, err := r.store.FindByOrderID(ctx, req.OrderID)
		if err != nil {
			return nil, models.CallbackError, fmt.Errorf("lookup order %s: %w", req.OrderID, err)
		}
		if existing != nil {
			return &RecordResult{Donation: existing, Replayed: true}, models.CallbackReplayed, nil
		}
		r.logger.Warn("donor id collision on insert, reallocating", zap.String("donor_id", donorID))
	}

	return nil, models.CallbackError, fmt.Errorf("%w: %d insert attempts collided", ErrAllocationFailed, maxInsertAttempts)
}

func (r *DonationRecorder) committed(ctx context.Context, donation *models.Donation) {
	metrics.DonationCounter.Inc()
	r.logger.Info("donation recorded",
		zap.String("donor_id", donation.DonorID),
		zap.String("order_id", donation.OrderID),
		zap.String("donor_title", donation.DonorTitle),
		zap.Int64("total_contribution", donation.TotalContribution),
	)

	if r.cache != nil {
		r.cache.Invalidate(ctx)
	}

	if r.notifier == nil {
		return
	}
	err := r.notifier.Enqueue(NotificationJob{
		DonorID:    donation.DonorID,
		Name:       donation.Name,
		Email:      donation.Email,
		DonorTitle: donation.DonorTitle,
	})
	if err != nil {
		metrics.NotificationCounter.WithLabelValues("dropped").Inc()
		r.logger.Error("failed to queue thank-you notification",
			zap.String("donor_id", donation.DonorID),
			zap.Error(err),
		)
	}
}

func (r *DonationRecorder) audit(ctx context.Context, req models.VerifyPaymentRequest, signature string, payload []byte, outcome string) {
	switch {
	case len(payload) == 0:
		payload = []byte("{}")
	case !json.Valid(payload):
		payload, _ = json.Marshal(map[string]string{"raw": string(payload)})
	}
	entry := &models.PaymentCallback{
		EventID:        uuid.NewString(),
		OrderID:        req.OrderID,
		PaymentID:      req.PaymentID,
		SignatureValid: signature != "" && VerifySignature(r.secret, req.OrderID, req.PaymentID, signature),
		Outcome:        outcome,
		Payload:        payload,
	}
	if err := r.store.SaveCallback(ctx, entry); err != nil {
		r.logger.Error("failed to store payment callback audit entry",
			zap.String("order_id", req.OrderID),
			zap.Error(err),
		)
	}
}

func firstMissingField(req models.VerifyPaymentRequest) string {
	switch {
	case req.OrderID == "":
		return "orderId"
	case req.PaymentID == "":
		return "paymentId"
	case req.Name == "":
		return "name"
	case req.Phone == "":
		return "phone"
	case req.Address == "":
		return "address"
	case req.Email == "":
		return "email"
	case req.DonorTitle == "":
		return "donorTitle"
	case req.TotalContribution == 0:
		return "totalContribution"
	}
	return ""
}
