package handlers

import (
	"net/http"

	"bossmaids/config"
	"bossmaids/database"
	"bossmaids/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DiagnosticsHandler exposes the integration snapshot and the demo reset.
type DiagnosticsHandler struct {
	Cfg   config.Config
	Store database.Store
}

func NewDiagnosticsHandler(cfg config.Config, store database.Store) *DiagnosticsHandler {
	return &DiagnosticsHandler{Cfg: cfg, Store: store}
}

// IntegrationsHandler reports which integrations are configured. Rendered
// verbatim by the demo-mode banner.
func (h *DiagnosticsHandler) IntegrationsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.Cfg.IntegrationStatus())
}

// ResetHandler restores the demo seed data. Only the local store supports
// it; the UI confirms intent before calling.
func (h *DiagnosticsHandler) ResetHandler(c *gin.Context) {
	resetter, ok := h.Store.(database.Resetter)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "reset is only available in demo mode"})
		return
	}
	if err := resetter.Reset(); err != nil {
		utils.GetLogger().Error("Demo reset failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Demo data restored"})
}
