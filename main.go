// File: bossmaids/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bossmaids/config"
	"bossmaids/cron"
	"bossmaids/database"
	"bossmaids/handlers"
	"bossmaids/middleware"
	"bossmaids/routes"
	"bossmaids/services/assistant"
	"bossmaids/services/auth"
	"bossmaids/services/billing"
	"bossmaids/services/campaigns"
	"bossmaids/services/crm"
	"bossmaids/services/messaging"
	"bossmaids/services/reports"
	"bossmaids/services/schedule"
	"bossmaids/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	if config.AppConfig.DemoMode() {
		logger.Sugar().Info("main: no remote backend configured, running in demo mode")
	}

	store, err := database.New(config.AppConfig)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize storage: %v", err)
	}

	sessionCache := utils.GetSessionCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// services.
	authService := &auth.DefaultAuthService{
		Store: store,
		Cfg:   config.AppConfig,
		Cache: sessionCache,
	}
	crmService := &crm.DefaultCRMService{
		Store: store,
	}
	scheduleService := &schedule.DefaultScheduleService{
		Store: store,
	}
	messagingService := &messaging.DefaultMessagingService{
		Store: store,
		Cfg:   config.AppConfig,
	}
	campaignService := &campaigns.DefaultCampaignService{
		Store:     store,
		Messaging: messagingService,
	}
	// Scheduled campaign dispatch rides on Redis; without it campaigns are
	// sent manually.
	if config.AppConfig.HasRedis() {
		campaignService.Asynq = asynq.NewClient(asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisQueueDB,
		})
		cron.InitCampaignWorker(campaignService)
	}
	billingService := &billing.DefaultBillingService{
		Store: store,
		Cfg:   config.AppConfig,
	}
	reportsService := &reports.DefaultReportsService{
		Store: store,
	}
	assistantService, err := assistant.NewAssistantService(config.AppConfig)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize assistant service: %v", err)
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Auth:        handlers.NewAuthHandler(authService),
		CRM:         handlers.NewCRMHandler(crmService),
		Schedule:    handlers.NewScheduleHandler(scheduleService, authService),
		Campaigns:   handlers.NewCampaignHandler(campaignService),
		Billing:     handlers.NewBillingHandler(billingService, authService),
		Messaging:   handlers.NewMessagingHandler(messagingService),
		Assistant:   handlers.NewAssistantHandler(assistantService),
		Reports:     handlers.NewReportsHandler(reportsService),
		Diagnostics: handlers.NewDiagnosticsHandler(config.AppConfig, store),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle, authService)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
