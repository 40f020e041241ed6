package handlers

import (
	"io"
	"net/http"

	"bossmaids/models"
	"bossmaids/services/auth"
	"bossmaids/services/billing"
	"bossmaids/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BillingHandler exposes checkout, portal, status and the Stripe webhook.
type BillingHandler struct {
	Svc  billing.BillingService
	Auth auth.AuthService
}

func NewBillingHandler(svc billing.BillingService, authSvc auth.AuthService) *BillingHandler {
	return &BillingHandler{Svc: svc, Auth: authSvc}
}

func (h *BillingHandler) CreateCheckoutHandler(c *gin.Context) {
	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := h.Auth.GetUser(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	sess, err := h.Svc.CreateCheckoutSession(c.Request.Context(), *user, req)
	if err != nil {
		utils.GetLogger().Error("Checkout failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sess)
}

func (h *BillingHandler) CreatePortalHandler(c *gin.Context) {
	var req struct {
		ReturnURL string `json:"returnUrl"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := h.Auth.GetUser(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	sess, err := h.Svc.CreatePortalSession(c.Request.Context(), *user, req.ReturnURL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sess)
}

func (h *BillingHandler) SubscriptionStatusHandler(c *gin.Context) {
	status, err := h.Svc.SubscriptionStatus(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, status)
}

// WebhookHandler receives Stripe events. It is unauthenticated; the event
// signature is the credential.
func (h *BillingHandler) WebhookHandler(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read payload"})
		return
	}
	signature := c.GetHeader("Stripe-Signature")
	if err := h.Svc.HandleWebhook(c.Request.Context(), payload, signature); err != nil {
		utils.GetLogger().Error("Webhook processing failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}
