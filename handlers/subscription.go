package handlers

import (
	"io"
	"net/http"

	"servicehub/config"
	"servicehub/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"
)

const webhookBodyLimit = 65536

// ListPlansHandler handles GET /api/subscriptions/plans.
func (hb *HandlerBundle) ListPlansHandler(c *gin.Context) {
	plans, err := hb.Subscriptions.ListPlans(c.Request.Context())
	if err != nil {
		hb.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Plans retrieved successfully", "plans": plans})
}

// CreateCheckoutHandler handles POST /api/subscriptions/checkout.
func (hb *HandlerBundle) CreateCheckoutHandler(c *gin.Context) {
	var req struct {
		PlanID string `json:"planId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid checkout payload", "details": err.Error()})
		return
	}

	userID, _ := middleware.Actor(c)
	result, err := hb.Subscriptions.CreateCheckout(c.Request.Context(), userID, req.PlanID)
	if err != nil {
		hb.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Checkout created successfully", "checkout": result})
}

// CurrentSubscriptionHandler handles GET /api/subscriptions/current.
func (hb *HandlerBundle) CurrentSubscriptionHandler(c *gin.Context) {
	userID, _ := middleware.Actor(c)
	current, err := hb.Subscriptions.Current(c.Request.Context(), userID)
	if err != nil {
		hb.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Subscription retrieved successfully", "subscription": current})
}

// StripeWebhookHandler handles POST /api/subscriptions/webhook. The endpoint
// is unauthenticated; the stripe signature header is the only trust anchor.
func (hb *HandlerBundle) StripeWebhookHandler(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, webhookBodyLimit))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Failed to read webhook payload"})
		return
	}

	event, err := webhook.ConstructEvent(payload, c.GetHeader("Stripe-Signature"), config.AppConfig.StripeWebhookSecret)
	if err != nil {
		hb.Logger.Warn("stripe webhook signature verification failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid webhook signature"})
		return
	}

	if err := hb.Subscriptions.HandleEvent(c.Request.Context(), event); err != nil {
		hb.Logger.Error("stripe webhook handling failed",
			zap.String("eventId", event.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Webhook handling failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Webhook processed"})
}
