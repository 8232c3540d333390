package handlers

import (
	"net/http"

	"servicehub/middleware"
	"servicehub/services/booking"

	"github.com/gin-gonic/gin"
)

// CreateBookingHandler handles POST /api/bookings.
func (hb *HandlerBundle) CreateBookingHandler(c *gin.Context) {
	var req booking.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid booking payload", "details": err.Error()})
		return
	}

	userID, _ := middleware.Actor(c)
	bk, err := hb.Bookings.Create(c.Request.Context(), userID, req)
	if err != nil {
		hb.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Booking created successfully", "booking": bk})
}

// ListBookingsHandler handles GET /api/bookings?status=.
func (hb *HandlerBundle) ListBookingsHandler(c *gin.Context) {
	userID, role := middleware.Actor(c)
	bookings, err := hb.Bookings.List(c.Request.Context(), userID, role, c.Query("status"))
	if err != nil {
		hb.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Bookings retrieved successfully", "bookings": bookings})
}

// GetBookingHandler handles GET /api/bookings/:id.
func (hb *HandlerBundle) GetBookingHandler(c *gin.Context) {
	userID, _ := middleware.Actor(c)
	detail, err := hb.Bookings.GetByID(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		hb.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking retrieved successfully", "booking": detail})
}

// UpdateBookingStatusHandler handles PUT /api/bookings/:id/status.
func (hb *HandlerBundle) UpdateBookingStatusHandler(c *gin.Context) {
	var req booking.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid status payload", "details": err.Error()})
		return
	}

	userID, role := middleware.Actor(c)
	bk, err := hb.Bookings.UpdateStatus(c.Request.Context(), c.Param("id"), userID, role, req)
	if err != nil {
		hb.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking status updated successfully", "booking": bk})
}
