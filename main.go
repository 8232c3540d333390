package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"servicehub/config"
	"servicehub/cron"
	"servicehub/database"
	adjustmentRepoPkg "servicehub/database/repository/adjustment"
	bookingRepoPkg "servicehub/database/repository/booking"
	categoryRepoPkg "servicehub/database/repository/category"
	notificationRepoPkg "servicehub/database/repository/notification"
	planRepoPkg "servicehub/database/repository/plan"
	providerRepoPkg "servicehub/database/repository/provider"
	reviewRepoPkg "servicehub/database/repository/review"
	userRepoPkg "servicehub/database/repository/user"
	"servicehub/handlers"
	"servicehub/routes"
	"servicehub/services/adjustment"
	"servicehub/services/booking"
	"servicehub/services/notification"
	"servicehub/services/review"
	"servicehub/services/subscription"
	"servicehub/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	stripe.Key = config.AppConfig.StripeKey

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// repositories.
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	adjustmentRepo := adjustmentRepoPkg.NewMongoAdjustmentRepo()
	reviewRepo := reviewRepoPkg.NewMongoReviewRepo()
	notificationRepo := notificationRepoPkg.NewMongoNotificationRepo()
	providerRepo := providerRepoPkg.NewMongoProviderRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()
	categoryRepo := categoryRepoPkg.NewMongoCategoryRepo()
	planRepo := planRepoPkg.NewMongoPlanRepo()

	// Task queue for external notification delivery.
	taskClient := cron.NewTaskClient()
	defer taskClient.Close()

	// services.
	notificationService, err := notification.NewDefaultNotificationService(
		notificationRepo, userRepo, taskClient, utils.GetCacheClient(), logger)
	if err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}

	bookingService, err := booking.NewDefaultBookingService(
		bookingRepo, providerRepo, userRepo, planRepo, categoryRepo,
		notificationService, logger, config.AppConfig.CommissionDefaultRate)
	if err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}

	adjustmentService, err := adjustment.NewDefaultAdjustmentService(
		adjustmentRepo, bookingRepo, providerRepo,
		notificationService, logger, config.AppConfig.CommissionAdjustedRate)
	if err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}

	reviewService, err := review.NewDefaultReviewService(
		reviewRepo, bookingRepo, providerRepo, userRepo, notificationService, logger)
	if err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}

	subscriptionService, err := subscription.NewDefaultSubscriptionService(
		providerRepo, planRepo, userRepo, notificationService, logger)
	if err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}

	// Delivery worker drains the queued email/SMS tasks.
	cron.InitDeliveryWorker(
		notification.NewSMTPEmailSender(logger),
		notification.NewTwilioSMSSender(logger),
	)

	handlerBundle := handlers.NewHandlerBundle(
		bookingService,
		adjustmentService,
		reviewService,
		notificationService,
		subscriptionService,
		logger,
	)

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

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
