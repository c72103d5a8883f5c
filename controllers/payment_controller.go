package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"sova/models"
	"sova/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SignatureHeader carries the gateway's callback signature.
const SignatureHeader = "x-cf-signature"

// PaymentRecorder commits verified payment callbacks.
type PaymentRecorder interface {
	RecordCompletedPayment(ctx context.Context, req models.VerifyPaymentRequest, signature string, payload []byte) (*services.RecordResult, error)
}

// PaymentController - контроллер callback'ов платёжного шлюза
type PaymentController struct {
	recorder PaymentRecorder
	logger   *zap.Logger
}

// NewPaymentController создает новый контроллер
func NewPaymentController(recorder PaymentRecorder, logger *zap.Logger) *PaymentController {
	return &PaymentController{recorder: recorder, logger: logger}
}

// VerifyPayment проверяет подпись и записывает пожертвование.
// Сырое тело сохраняется в журнал callback'ов.
// POST /verify-payment
func (pc *PaymentController) VerifyPayment(c *gin.Context) {
	var req models.VerifyPaymentRequest
	body, err := c.GetRawData()
	if err == nil {
		err = json.Unmarshal(body, &req)
	}
	if err != nil {
		// Нечитаемое тело тоже попадает в журнал, как missing_field
		if _, recErr := pc.recorder.RecordCompletedPayment(c.Request.Context(), models.VerifyPaymentRequest{}, c.GetHeader(SignatureHeader), body); recErr != nil && !errors.Is(recErr, services.ErrMissingField) {
			pc.logger.Error("unexpected result for unparsable callback", zap.Error(recErr))
		}
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input."})
		return
	}

	result, err := pc.recorder.RecordCompletedPayment(c.Request.Context(), req, c.GetHeader(SignatureHeader), body)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{
			"message":  "Payment verified and donation recorded!",
			"replayed": result.Replayed,
		})
	case errors.Is(err, services.ErrMissingField):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input."})
	case errors.Is(err, services.ErrSignatureMismatch):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid signature"})
	case errors.Is(err, services.ErrInvalidPledge):
		c.JSON(http.StatusBadRequest, gin.H{"message": services.RejectionMessage(err)})
	default:
		pc.logger.Error("failed to record donation", zap.String("order_id", req.OrderID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
	}
}
