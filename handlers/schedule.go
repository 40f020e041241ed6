package handlers

import (
	"net/http"

	"bossmaids/database"
	"bossmaids/services/auth"
	"bossmaids/services/schedule"
	"bossmaids/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ScheduleHandler exposes appointment CRUD and status changes.
type ScheduleHandler struct {
	Svc  schedule.ScheduleService
	Auth auth.AuthService
}

func NewScheduleHandler(svc schedule.ScheduleService, authSvc auth.AuthService) *ScheduleHandler {
	return &ScheduleHandler{Svc: svc, Auth: authSvc}
}

func (h *ScheduleHandler) ListAppointmentsHandler(c *gin.Context) {
	records, err := h.Svc.ListAppointments(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		utils.GetLogger().Error("Failed to list appointments", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, records)
}

func (h *ScheduleHandler) CreateAppointmentHandler(c *gin.Context) {
	var fields database.Record
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := h.Auth.GetUser(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	rec, err := h.Svc.CreateAppointment(c.Request.Context(), *user, fields)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, rec)
}

func (h *ScheduleHandler) UpdateAppointmentHandler(c *gin.Context) {
	var patch database.Record
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rec, err := h.Svc.UpdateAppointment(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *ScheduleHandler) DeleteAppointmentHandler(c *gin.Context) {
	if err := h.Svc.DeleteAppointment(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Appointment deleted"})
}

func (h *ScheduleHandler) SetStatusHandler(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rec, err := h.Svc.SetStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rec)
}
