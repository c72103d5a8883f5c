package controllers

import (
	"context"
	"errors"
	"net/http"

	"sova/metrics"
	"sova/models"
	"sova/services"

	"github.com/gin-gonic/gin"
)

// OrderCreator opens a checkout order for a validated pledge.
type OrderCreator interface {
	CreateOrder(ctx context.Context, title string, amountMinor int64, email, phone string) (models.OrderResult, error)
}

// OrderController контроллер оформления заказа на платёжном шлюзе
type OrderController struct {
	broker OrderCreator
}

// NewOrderController создает новый экземпляр OrderController
func NewOrderController(broker OrderCreator) *OrderController {
	return &OrderController{broker: broker}
}

// CreateOrder создает заказ в Cashfree. amount приходит в пайсах.
// POST /create-order
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input."})
		return
	}

	result, err := oc.broker.CreateOrder(c.Request.Context(), req.Title, req.Amount, req.Email, req.Phone)
	switch {
	case err == nil:
		metrics.OrderCounter.WithLabelValues("created").Inc()
		c.JSON(http.StatusOK, result)
	case errors.Is(err, services.ErrInvalidPledge):
		metrics.OrderCounter.WithLabelValues("rejected").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"message": services.RejectionMessage(err)})
	default:
		metrics.OrderCounter.WithLabelValues("failed").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
	}
}
