package handlers

import (
	"net/http"

	"bossmaids/models"
	"bossmaids/services/assistant"
	"bossmaids/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AssistantHandler exposes the AI chat and the price calculator.
type AssistantHandler struct {
	Svc assistant.AssistantService
}

func NewAssistantHandler(svc assistant.AssistantService) *AssistantHandler {
	return &AssistantHandler{Svc: svc}
}

func (h *AssistantHandler) ChatHandler(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	resp, err := h.Svc.Chat(c.Request.Context(), req)
	if err != nil {
		utils.GetLogger().Error("Assistant chat failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// QuoteHandler returns the deterministic price breakdown for a job.
func (h *AssistantHandler) QuoteHandler(c *gin.Context) {
	var req models.QuoteInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.Svc.Quote(req))
}
