package models

import (
	"time"

	"gorm.io/datatypes"
)

// PaymentCallback - журнал входящих callback'ов платёжного шлюза.
// Пишется для каждого вызова /verify-payment, включая отклонённые.
type PaymentCallback struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	EventID        string         `json:"event_id" gorm:"size:36;uniqueIndex;not null"`
	OrderID        string         `json:"order_id" gorm:"size:64;index"`
	PaymentID      string         `json:"payment_id" gorm:"size:128"`
	SignatureValid bool           `json:"signature_valid" gorm:"default:false"`
	Outcome        string         `json:"outcome" gorm:"size:32;index"` // recorded, replayed, missing_field, signature_mismatch, invalid_pledge, error
	Payload        datatypes.JSON `json:"payload"`
	CreatedAt      time.Time      `json:"created_at"`
}

// TableName указывает имя таблицы
func (PaymentCallback) TableName() string {
	return "payment_callbacks"
}

const (
	CallbackRecorded          = "recorded"
	CallbackReplayed          = "replayed"
	CallbackMissingField      = "missing_field"
	CallbackSignatureMismatch = "signature_mismatch"
	CallbackInvalidPledge     = "invalid_pledge"
	CallbackError             = "error"
)

// ValidateRewardRequest - запрос на проверку уровня награды
type ValidateRewardRequest struct {
	Title  string `json:"title"`
	Amount int64  `json:"amount"` // в рупиях
}

// VerifyPaymentRequest - callback о завершении оплаты
type VerifyPaymentRequest struct {
	OrderID           string `json:"orderId"`
	PaymentID         string `json:"paymentId"`
	Name              string `json:"name"`
	Phone             string `json:"phone"`
	Address           string `json:"address"`
	Email             string `json:"email"`
	DonorTitle        string `json:"donorTitle"`
	TotalContribution int64  `json:"totalContribution"`
}

// ContactRequest - сообщение из формы обратной связи
type ContactRequest struct {
	Name    string `json:"name" form:"name" binding:"required"`
	Email   string `json:"email" form:"email" binding:"required,email"`
	Message string `json:"message" form:"message" binding:"required"`
}
