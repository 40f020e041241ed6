package routes

import (
	"net/http"
	"time"

	"bossmaids/handlers"
	"bossmaids/middleware"
	"bossmaids/services/auth"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers account endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle, authSvc auth.AuthService) {
	api := r.Group("/api/auth")
	{
		api.POST("/signup", hb.Auth.SignUpHandler)
		api.POST("/signin", hb.Auth.SignInHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthMiddleware(authSvc))
		api.POST("/signout", hb.Auth.SignOutHandler)
		api.GET("/session", hb.Auth.SessionHandler)
		api.PATCH("/profile", hb.Auth.UpdateProfileHandler)
	}
}

// RegisterCRMRoutes registers client and lead endpoints.
func RegisterCRMRoutes(r *gin.Engine, hb *handlers.HandlerBundle, authSvc auth.AuthService) {
	api := r.Group("/api")
	api.Use(middleware.JWTAuthMiddleware(authSvc))
	{
		api.GET("/clients", hb.CRM.ListClientsHandler)
		api.POST("/clients", hb.CRM.CreateClientHandler)
		api.PATCH("/clients/:id", hb.CRM.UpdateClientHandler)
		api.DELETE("/clients/:id", hb.CRM.DeleteClientHandler)

		api.GET("/leads", hb.CRM.ListLeadsHandler)
		api.POST("/leads", hb.CRM.CreateLeadHandler)
		api.PATCH("/leads/:id", hb.CRM.UpdateLeadHandler)
		api.DELETE("/leads/:id", hb.CRM.DeleteLeadHandler)
		api.POST("/leads/:id/convert", hb.CRM.ConvertLeadHandler)
	}
}

// RegisterScheduleRoutes registers appointment endpoints.
func RegisterScheduleRoutes(r *gin.Engine, hb *handlers.HandlerBundle, authSvc auth.AuthService) {
	api := r.Group("/api/appointments")
	api.Use(middleware.JWTAuthMiddleware(authSvc))
	{
		api.GET("", hb.Schedule.ListAppointmentsHandler)
		api.POST("", hb.Schedule.CreateAppointmentHandler)
		api.PATCH("/:id", hb.Schedule.UpdateAppointmentHandler)
		api.DELETE("/:id", hb.Schedule.DeleteAppointmentHandler)
		api.PUT("/:id/status", hb.Schedule.SetStatusHandler)
	}
}

// RegisterCampaignRoutes registers campaign, template and notification endpoints.
func RegisterCampaignRoutes(r *gin.Engine, hb *handlers.HandlerBundle, authSvc auth.AuthService) {
	api := r.Group("/api")
	api.Use(middleware.JWTAuthMiddleware(authSvc))
	{
		api.GET("/campaigns", hb.Campaigns.ListCampaignsHandler)
		api.POST("/campaigns", hb.Campaigns.CreateCampaignHandler)
		api.PATCH("/campaigns/:id", hb.Campaigns.UpdateCampaignHandler)
		api.DELETE("/campaigns/:id", hb.Campaigns.DeleteCampaignHandler)
		api.POST("/campaigns/:id/send", hb.Campaigns.SendCampaignHandler)

		api.GET("/templates", hb.Campaigns.ListTemplatesHandler)
		api.POST("/templates", hb.Campaigns.CreateTemplateHandler)
		api.PATCH("/templates/:id", hb.Campaigns.UpdateTemplateHandler)
		api.DELETE("/templates/:id", hb.Campaigns.DeleteTemplateHandler)

		api.GET("/notifications", hb.Campaigns.ListNotificationsHandler)
		api.POST("/notifications/refresh", hb.Campaigns.RefreshNotificationsHandler)
		api.PATCH("/notifications/:id/read", hb.Campaigns.MarkNotificationReadHandler)
		api.PATCH("/notifications/:id/dismiss", hb.Campaigns.DismissNotificationHandler)
	}
}

// RegisterBillingRoutes registers billing endpoints. The webhook is public;
// Stripe's signature authenticates it.
func RegisterBillingRoutes(r *gin.Engine, hb *handlers.HandlerBundle, authSvc auth.AuthService) {
	r.POST("/api/billing/webhook", hb.Billing.WebhookHandler)

	api := r.Group("/api/billing")
	api.Use(middleware.JWTAuthMiddleware(authSvc))
	{
		api.POST("/checkout", hb.Billing.CreateCheckoutHandler)
		api.POST("/portal", hb.Billing.CreatePortalHandler)
		api.GET("/status", hb.Billing.SubscriptionStatusHandler)
	}
}

// RegisterMessagingRoutes registers email/SMS endpoints.
func RegisterMessagingRoutes(r *gin.Engine, hb *handlers.HandlerBundle, authSvc auth.AuthService) {
	api := r.Group("/api/messaging")
	api.Use(middleware.JWTAuthMiddleware(authSvc))
	{
		api.POST("/email", hb.Messaging.SendEmailHandler)
		api.POST("/sms", hb.Messaging.SendSMSHandler)
		api.GET("/email/logs", hb.Messaging.EmailLogsHandler)
		api.GET("/sms/logs", hb.Messaging.SMSLogsHandler)
	}
}

// RegisterAssistantRoutes registers AI chat and quote endpoints.
func RegisterAssistantRoutes(r *gin.Engine, hb *handlers.HandlerBundle, authSvc auth.AuthService) {
	api := r.Group("/api/assistant")
	api.Use(middleware.JWTAuthMiddleware(authSvc))
	{
		api.POST("/chat", hb.Assistant.ChatHandler)
		api.POST("/quote", hb.Assistant.QuoteHandler)
	}
}

// RegisterReportsRoutes registers aggregate stats endpoints.
func RegisterReportsRoutes(r *gin.Engine, hb *handlers.HandlerBundle, authSvc auth.AuthService) {
	api := r.Group("/api/reports")
	api.Use(middleware.JWTAuthMiddleware(authSvc))
	{
		api.GET("/summary", hb.Reports.SummaryHandler)
	}
}

// RegisterDiagnosticsRoutes registers the integration snapshot and demo reset.
func RegisterDiagnosticsRoutes(r *gin.Engine, hb *handlers.HandlerBundle, authSvc auth.AuthService) {
	api := r.Group("/api/diagnostics")
	{
		api.GET("/integrations", hb.Diagnostics.IntegrationsHandler)
		api.POST("/reset", middleware.JWTAuthMiddleware(authSvc), hb.Diagnostics.ResetHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm BossMaids"})
	})
}

// RegisterRoutes wires CORS and every route group.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, authSvc auth.AuthService) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Stripe-Signature"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterAuthRoutes(r, hb, authSvc)
	RegisterCRMRoutes(r, hb, authSvc)
	RegisterScheduleRoutes(r, hb, authSvc)
	RegisterCampaignRoutes(r, hb, authSvc)
	RegisterBillingRoutes(r, hb, authSvc)
	RegisterMessagingRoutes(r, hb, authSvc)
	RegisterAssistantRoutes(r, hb, authSvc)
	RegisterReportsRoutes(r, hb, authSvc)
	RegisterDiagnosticsRoutes(r, hb, authSvc)
}
