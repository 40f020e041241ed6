package handlers

import (
	"net/http"
	"strconv"

	"bossmaids/services/reports"
	"bossmaids/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReportsHandler exposes aggregate business stats.
type ReportsHandler struct {
	Svc reports.ReportsService
}

func NewReportsHandler(svc reports.ReportsService) *ReportsHandler {
	return &ReportsHandler{Svc: svc}
}

// SummaryHandler reports over the trailing window given by the "days" query
// parameter, defaulting to 30.
func (h *ReportsHandler) SummaryHandler(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "30"))
	if err != nil || days <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "days must be a positive integer"})
		return
	}
	summary, err := h.Svc.Summary(c.Request.Context(), c.GetString("userID"), days)
	if err != nil {
		utils.GetLogger().Error("Failed to build report summary", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}
