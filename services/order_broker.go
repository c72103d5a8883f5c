package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"sova/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const orderCurrency = "INR"

// Gateway opens orders on the payment gateway.
type Gateway interface {
	CreateOrder(ctx context.Context, order models.Order) (string, error)
}

// OrderBroker validates a pledge and opens the matching gateway order.
type OrderBroker struct {
	gateway Gateway
	logger  *zap.Logger
	now     func() time.Time
}

func NewOrderBroker(gateway Gateway, logger *zap.Logger) *OrderBroker {
	return &OrderBroker{gateway: gateway, logger: logger, now: time.Now}
}

// CreateOrder validates (title, amountMinor/100) and, only if valid, makes a
// single gateway call. Validation failures wrap ErrInvalidPledge together
// with the validator's error; gateway failures wrap ErrOrderCreationFailed.
func (b *OrderBroker) CreateOrder(ctx context.Context, title string, amountMinor int64, email, phone string) (models.OrderResult, error) {
	if amountMinor%100 != 0 {
		return models.OrderResult{}, fmt.Errorf("%w: %w: %d paise is not a whole rupee amount", ErrInvalidPledge, ErrInvalidAmount, amountMinor)
	}
	amount := amountMinor / 100
	if _, err := ValidateReward(title, amount); err != nil {
		return models.OrderResult{}, fmt.Errorf("%w: %w", ErrInvalidPledge, err)
	}

	// Уникальность только по миллисекундам, как и в исходной схеме
	order := models.Order{
		OrderID:          "order_" + strconv.FormatInt(b.now().UnixMilli(), 10),
		AmountMajorUnits: amount,
		Currency:         orderCurrency,
		CustomerID:       "cust_" + uuid.NewString(),
		CustomerEmail:    email,
		CustomerPhone:    phone,
		Note:             title,
	}

	token, err := b.gateway.CreateOrder(ctx, order)
	if err != nil {
		if !errors.Is(err, ErrOrderCreationFailed) {
			err = fmt.Errorf("%w: %v", ErrOrderCreationFailed, err)
		}
		b.logger.Error("gateway order creation failed",
			zap.String("order_id", order.OrderID),
			zap.String("title", title),
			zap.Int64("amount", amount),
			zap.Error(err),
		)
		return models.OrderResult{}, err
	}

	b.logger.Info("gateway order created",
		zap.String("order_id", order.OrderID),
		zap.String("title", title),
		zap.Int64("amount", amount),
	)
	return models.OrderResult{OrderID: order.OrderID, OrderToken: token}, nil
}
