package controllers

import (
	"context"
	"net/http"

	"sova/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DonorLister reads donations newest first.
type DonorLister interface {
	ListRecent(ctx context.Context, limit, offset int) ([]models.Donation, error)
}

// StatsProvider returns campaign progress numbers.
type StatsProvider interface {
	Get(ctx context.Context) (models.CampaignStats, error)
}

type DonorController struct {
	donors DonorLister
	stats  StatsProvider
	logger *zap.Logger
}

func NewDonorController(donors DonorLister, stats StatsProvider, logger *zap.Logger) *DonorController {
	return &DonorController{donors: donors, stats: stats, logger: logger}
}

// GetDonors возвращает публичный список доноров, последние первыми
// GET /api/donors
func (dc *DonorController) GetDonors(c *gin.Context) {
	donations, err := dc.donors.ListRecent(c.Request.Context(), 0, 0)
	if err != nil {
		dc.logger.Error("failed to fetch donors", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching donor data"})
		return
	}

	views := make([]models.DonorView, 0, len(donations))
	for _, d := range donations {
		views = append(views, d.View())
	}
	c.JSON(http.StatusOK, views)
}

// GetStats
// GET /api/get-stats
func (dc *DonorController) GetStats(c *gin.Context) {
	stats, err := dc.stats.Get(c.Request.Context())
	if err != nil {
		dc.logger.Error("failed to compute stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}
