package routes

import (
	"net/http"
	"time"

	"servicehub/handlers"
	"servicehub/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes registers the booking lifecycle and payment
// adjustment endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("", hb.CreateBookingHandler)
		api.GET("", hb.ListBookingsHandler)
		api.GET("/:id", hb.GetBookingHandler)
		api.PUT("/:id/status", hb.UpdateBookingStatusHandler)

		// Payment adjustments nested inside a booking.
		api.POST("/:id/request-payment", hb.RequestAdjustmentHandler)
		api.GET("/:id/adjustments", hb.ListAdjustmentsHandler)
		api.PUT("/adjustments/:adjustmentId/respond", hb.RespondAdjustmentHandler)
	}
}

// RegisterReviewRoutes registers review endpoints.
func RegisterReviewRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/reviews")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("", hb.CreateReviewHandler)
		api.GET("/provider/:providerId", hb.ProviderReviewsHandler)
		api.PUT("/:id/response", hb.RespondToReviewHandler)
	}
}

// RegisterNotificationRoutes registers recipient-facing notification
// endpoints.
func RegisterNotificationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/notifications")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("", hb.ListNotificationsHandler)
		api.PUT("/read-all", hb.MarkAllNotificationsReadHandler)
		api.PUT("/:id/read", hb.MarkNotificationReadHandler)
		api.DELETE("/:id", hb.DeleteNotificationHandler)
	}
}

// RegisterSubscriptionRoutes registers billing boundary endpoints. The
// webhook stays outside the auth middleware; Stripe signs its own calls.
func RegisterSubscriptionRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/subscriptions")
	{
		api.POST("/webhook", hb.StripeWebhookHandler)

		api.Use(middleware.JWTAuthMiddleware())
		api.GET("/plans", hb.ListPlansHandler)
		api.POST("/checkout", hb.CreateCheckoutHandler)
		api.GET("/current", hb.CurrentSubscriptionHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm ServiceHub"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterHealthRoute(r)
	RegisterBookingRoutes(r, hb)
	RegisterReviewRoutes(r, hb)
	RegisterNotificationRoutes(r, hb)
	RegisterSubscriptionRoutes(r, hb)
}
