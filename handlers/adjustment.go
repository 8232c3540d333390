package handlers

import (
	"net/http"

	"servicehub/middleware"
	"servicehub/services/adjustment"

	"github.com/gin-gonic/gin"
)

// RequestAdjustmentHandler handles POST /api/bookings/:id/request-payment.
func (hb *HandlerBundle) RequestAdjustmentHandler(c *gin.Context) {
	var req adjustment.RequestAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid adjustment payload", "details": err.Error()})
		return
	}

	userID, _ := middleware.Actor(c)
	adj, err := hb.Adjustments.Request(c.Request.Context(), c.Param("id"), userID, req)
	if err != nil {
		hb.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Payment adjustment requested successfully", "adjustment": adj})
}

// RespondAdjustmentHandler handles PUT /api/bookings/adjustments/:adjustmentId/respond.
func (hb *HandlerBundle) RespondAdjustmentHandler(c *gin.Context) {
	var req adjustment.RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid response payload", "details": err.Error()})
		return
	}

	userID, _ := middleware.Actor(c)
	result, err := hb.Adjustments.Respond(c.Request.Context(), c.Param("adjustmentId"), userID, req)
	if err != nil {
		hb.respondError(c, err)
		return
	}

	body := gin.H{"message": "Payment adjustment resolved successfully", "adjustment": result.Adjustment}
	if result.NewTotal > 0 {
		body["newTotal"] = result.NewTotal
	}
	c.JSON(http.StatusOK, body)
}

// ListAdjustmentsHandler handles GET /api/bookings/:id/adjustments.
func (hb *HandlerBundle) ListAdjustmentsHandler(c *gin.Context) {
	userID, _ := middleware.Actor(c)
	adjustments, err := hb.Adjustments.List(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		hb.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payment adjustments retrieved successfully", "adjustments": adjustments})
}
