package handlers

import (
	"net/http"

	"bossmaids/models"
	"bossmaids/services/messaging"
	"bossmaids/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MessagingHandler exposes email/SMS sends and their logs.
type MessagingHandler struct {
	Svc messaging.MessagingService
}

func NewMessagingHandler(svc messaging.MessagingService) *MessagingHandler {
	return &MessagingHandler{Svc: svc}
}

func (h *MessagingHandler) SendEmailHandler(c *gin.Context) {
	var req models.EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := h.Svc.SendEmail(c.Request.Context(), c.GetString("userID"), req)
	if err != nil {
		utils.GetLogger().Error("Email send failed", zap.String("to", req.To), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *MessagingHandler) SendSMSHandler(c *gin.Context) {
	var req models.SMSRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := h.Svc.SendSMS(c.Request.Context(), c.GetString("userID"), req)
	if err != nil {
		utils.GetLogger().Error("SMS send failed", zap.String("to", req.To), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *MessagingHandler) EmailLogsHandler(c *gin.Context) {
	logs, err := h.Svc.EmailLogs(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, logs)
}

func (h *MessagingHandler) SMSLogsHandler(c *gin.Context) {
	logs, err := h.Svc.SMSLogs(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, logs)
}
