package handlers

import (
	"net/http"
	"strconv"

	"servicehub/middleware"
	"servicehub/services/review"

	"github.com/gin-gonic/gin"
)

// CreateReviewHandler handles POST /api/reviews.
func (hb *HandlerBundle) CreateReviewHandler(c *gin.Context) {
	var req review.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid review payload", "details": err.Error()})
		return
	}

	userID, _ := middleware.Actor(c)
	rv, err := hb.Reviews.Create(c.Request.Context(), userID, req)
	if err != nil {
		hb.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Review submitted successfully", "review": rv})
}

// ProviderReviewsHandler handles GET /api/reviews/provider/:providerId.
func (hb *HandlerBundle) ProviderReviewsHandler(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	reviews, total, err := hb.Reviews.ProviderReviews(c.Request.Context(), c.Param("providerId"), limit, offset)
	if err != nil {
		hb.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reviews retrieved successfully", "reviews": reviews, "total": total})
}

// RespondToReviewHandler handles PUT /api/reviews/:id/response.
func (hb *HandlerBundle) RespondToReviewHandler(c *gin.Context) {
	var req struct {
		Response string `json:"response" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid response payload", "details": err.Error()})
		return
	}

	userID, _ := middleware.Actor(c)
	rv, err := hb.Reviews.AddResponse(c.Request.Context(), c.Param("id"), userID, req.Response)
	if err != nil {
		hb.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Response added successfully", "review": rv})
}
