package handlers

import (
	"net/http"

	"bossmaids/database"
	"bossmaids/services/campaigns"
	"bossmaids/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CampaignHandler exposes campaign, template and notification endpoints.
type CampaignHandler struct {
	Svc campaigns.CampaignService
}

func NewCampaignHandler(svc campaigns.CampaignService) *CampaignHandler {
	return &CampaignHandler{Svc: svc}
}

func (h *CampaignHandler) ListCampaignsHandler(c *gin.Context) {
	records, err := h.Svc.ListCampaigns(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		utils.GetLogger().Error("Failed to list campaigns", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, records)
}

func (h *CampaignHandler) CreateCampaignHandler(c *gin.Context) {
	var fields database.Record
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rec, err := h.Svc.CreateCampaign(c.Request.Context(), c.GetString("userID"), fields)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, rec)
}

func (h *CampaignHandler) UpdateCampaignHandler(c *gin.Context) {
	var patch database.Record
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rec, err := h.Svc.UpdateCampaign(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *CampaignHandler) DeleteCampaignHandler(c *gin.Context) {
	if err := h.Svc.DeleteCampaign(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Campaign deleted"})
}

func (h *CampaignHandler) SendCampaignHandler(c *gin.Context) {
	rec, err := h.Svc.SendCampaign(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.GetLogger().Error("Failed to send campaign", zap.String("id", c.Param("id")), zap.Error(err))
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *CampaignHandler) ListTemplatesHandler(c *gin.Context) {
	records, err := h.Svc.ListTemplates(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, records)
}

func (h *CampaignHandler) CreateTemplateHandler(c *gin.Context) {
	var fields database.Record
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rec, err := h.Svc.CreateTemplate(c.Request.Context(), c.GetString("userID"), fields)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, rec)
}

func (h *CampaignHandler) UpdateTemplateHandler(c *gin.Context) {
	var patch database.Record
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rec, err := h.Svc.UpdateTemplate(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *CampaignHandler) DeleteTemplateHandler(c *gin.Context) {
	if err := h.Svc.DeleteTemplate(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Template deleted"})
}

func (h *CampaignHandler) ListNotificationsHandler(c *gin.Context) {
	records, err := h.Svc.ListNotifications(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, records)
}

func (h *CampaignHandler) RefreshNotificationsHandler(c *gin.Context) {
	records, err := h.Svc.RefreshSmartNotifications(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		utils.GetLogger().Error("Failed to refresh notifications", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, records)
}

func (h *CampaignHandler) MarkNotificationReadHandler(c *gin.Context) {
	rec, err := h.Svc.MarkNotificationRead(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *CampaignHandler) DismissNotificationHandler(c *gin.Context) {
	rec, err := h.Svc.DismissNotification(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rec)
}
