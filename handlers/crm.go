package handlers

import (
	"errors"
	"net/http"

	"bossmaids/database"
	"bossmaids/services/crm"
	"bossmaids/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CRMHandler exposes client and lead CRUD.
type CRMHandler struct {
	Svc crm.CRMService
}

func NewCRMHandler(svc crm.CRMService) *CRMHandler {
	return &CRMHandler{Svc: svc}
}

func statusFor(err error) int {
	if errors.Is(err, database.ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func (h *CRMHandler) ListClientsHandler(c *gin.Context) {
	records, err := h.Svc.ListClients(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		utils.GetLogger().Error("Failed to list clients", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, records)
}

func (h *CRMHandler) CreateClientHandler(c *gin.Context) {
	var fields database.Record
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rec, err := h.Svc.CreateClient(c.Request.Context(), c.GetString("userID"), fields)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, rec)
}

func (h *CRMHandler) UpdateClientHandler(c *gin.Context) {
	var patch database.Record
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rec, err := h.Svc.UpdateClient(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *CRMHandler) DeleteClientHandler(c *gin.Context) {
	if err := h.Svc.DeleteClient(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Client deleted"})
}

func (h *CRMHandler) ListLeadsHandler(c *gin.Context) {
	records, err := h.Svc.ListLeads(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		utils.GetLogger().Error("Failed to list leads", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, records)
}

func (h *CRMHandler) CreateLeadHandler(c *gin.Context) {
	var fields database.Record
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rec, err := h.Svc.CreateLead(c.Request.Context(), c.GetString("userID"), fields)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, rec)
}

func (h *CRMHandler) UpdateLeadHandler(c *gin.Context) {
	var patch database.Record
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rec, err := h.Svc.UpdateLead(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *CRMHandler) DeleteLeadHandler(c *gin.Context) {
	if err := h.Svc.DeleteLead(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Lead deleted"})
}

func (h *CRMHandler) ConvertLeadHandler(c *gin.Context) {
	client, err := h.Svc.ConvertLead(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, client)
}
