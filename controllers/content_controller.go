package controllers

import (
	"net/http"

	"sova/services"

	"github.com/gin-gonic/gin"
)

// ContentController отдаёт статический контент страницы кампании
type ContentController struct {
	content *services.ContentService
}

func NewContentController(content *services.ContentService) *ContentController {
	return &ContentController{content: content}
}

// GET /api/hero-content
func (cc *ContentController) Hero(c *gin.Context) {
	c.JSON(http.StatusOK, cc.content.Hero())
}

// GET /api/reward-content
func (cc *ContentController) Rewards(c *gin.Context) {
	c.JSON(http.StatusOK, cc.content.Rewards())
}

// GET /api/product-features
func (cc *ContentController) ProductFeatures(c *gin.Context) {
	c.JSON(http.StatusOK, cc.content.ProductFeatures())
}

// GET /api/products
func (cc *ContentController) Products(c *gin.Context) {
	c.JSON(http.StatusOK, cc.content.Products())
}

// GET /api/getVideos
func (cc *ContentController) Videos(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"videos": cc.content.Videos()})
}

// TargetDate - дата окончания кампании для таймера
// GET /api/target-date
func (cc *ContentController) TargetDate(c *gin.Context) {
	targetDate := cc.content.TargetDate()
	if targetDate == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Target date not set"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"targetDate": targetDate})
}
