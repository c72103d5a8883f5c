package controllers

import (
	"net/http"

	"sova/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContactSender forwards contact-form messages.
type ContactSender interface {
	SendContact(req models.ContactRequest, inbox string) error
}

// ContactController - форма обратной связи
type ContactController struct {
	sender ContactSender
	inbox  string
	logger *zap.Logger
}

func NewContactController(sender ContactSender, inbox string, logger *zap.Logger) *ContactController {
	return &ContactController{sender: sender, inbox: inbox, logger: logger}
}

// SendEmail
// POST /api/send-email
func (cc *ContactController) SendEmail(c *gin.Context) {
	var req models.ContactRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "All fields are required!",
			"details": err.Error(),
		})
		return
	}

	if err := cc.sender.SendContact(req, cc.inbox); err != nil {
		cc.logger.Error("failed to send contact email", zap.String("from", req.Email), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send email"})
		return
	}
	cc.logger.Info("contact email sent", zap.String("from", req.Email))
	c.JSON(http.StatusOK, gin.H{"message": "Message sent successfully!"})
}
