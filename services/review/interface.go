package review

import (
	"context"

	"servicehub/models"
)

// CreateReviewRequest carries a customer's feedback on a completed booking.
type CreateReviewRequest struct {
	BookingID string `json:"bookingId" binding:"required"`
	Rating    int    `json:"rating" binding:"required"`
	Comment   string `json:"comment"`
}

// ReviewService creates reviews for completed bookings and keeps the
// provider's aggregate rating consistent with them.
type ReviewService interface {
	Create(ctx context.Context, customerID string, req CreateReviewRequest) (*models.Review, error)
	ProviderReviews(ctx context.Context, providerID string, limit, offset int) ([]models.ReviewDetail, int64, error)
	AddResponse(ctx context.Context, reviewID, providerUserID, response string) (*models.Review, error)
}
