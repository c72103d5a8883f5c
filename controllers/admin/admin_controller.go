package admin

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"sova/models"
	"sova/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	defaultPageSize = 50
	maxPageSize     = 500
)

// DonationReader is the read side of the donation store used by admins.
type DonationReader interface {
	ListRecent(ctx context.Context, limit, offset int) ([]models.Donation, error)
	Count(ctx context.Context) (int64, error)
	FindByDonorID(ctx context.Context, donorID string) (*models.Donation, error)
}

// AdminController контроллер для админских функций
type AdminController struct {
	store    DonationReader
	notifier services.NotificationQueue
	logger   *zap.Logger
}

// NewAdminController создает новый экземпляр AdminController
func NewAdminController(store DonationReader, notifier services.NotificationQueue, logger *zap.Logger) *AdminController {
	return &AdminController{store: store, notifier: notifier, logger: logger}
}

// ListDonations возвращает полные записи пожертвований, включая контакты
// GET /admin/donations?limit=&offset=
func (ac *AdminController) ListDonations(c *gin.Context) {
	limit, err := queryInt(c, "limit", defaultPageSize)
	if err != nil || limit < 1 || limit > maxPageSize {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "limit must be between 1 and 500"})
		return
	}
	offset, err := queryInt(c, "offset", 0)
	if err != nil || offset < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "offset must be a non-negative integer"})
		return
	}

	ctx := c.Request.Context()
	donations, err := ac.store.ListRecent(ctx, limit, offset)
	if err != nil {
		ac.logger.Error("admin: list donations failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal server error"})
		return
	}
	total, err := ac.store.Count(ctx)
	if err != nil {
		ac.logger.Error("admin: count donations failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    donations,
		"total":   total,
		"limit":   limit,
		"offset":  offset,
	})
}

// ResendCertificate ставит письмо с сертификатом в очередь повторно
// POST /admin/donations/:donorId/resend-certificate
func (ac *AdminController) ResendCertificate(c *gin.Context) {
	donorID := c.Param("donorId")
	donation, err := ac.store.FindByDonorID(c.Request.Context(), donorID)
	if err != nil {
		ac.logger.Error("admin: lookup donation failed", zap.String("donor_id", donorID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal server error"})
		return
	}
	if donation == nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": services.ErrDonationNotFound.Error()})
		return
	}

	err = ac.notifier.Enqueue(services.NotificationJob{
		DonorID:    donation.DonorID,
		Name:       donation.Name,
		Email:      donation.Email,
		DonorTitle: donation.DonorTitle,
	})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, services.ErrQueueFull) {
			status = http.StatusServiceUnavailable
		}
		ac.logger.Warn("admin: resend certificate not queued", zap.String("donor_id", donorID), zap.Error(err))
		c.JSON(status, gin.H{"success": false, "error": err.Error()})
		return
	}

	ac.logger.Info("admin: certificate re-queued", zap.String("donor_id", donorID), zap.Any("admin", c.Value("admin_subject")))
	c.JSON(http.StatusAccepted, gin.H{"success": true, "message": "Certificate queued for delivery"})
}

func queryInt(c *gin.Context, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
