package reviewRepo

import (
	"context"

	"servicehub/models"
)

// ReviewRepository defines data access for reviews.
type ReviewRepository interface {
	// Create inserts a new review document. The unique index on bookingId
	// rejects a second review for the same booking.
	Create(ctx context.Context, review *models.Review) error
	// GetByID retrieves a review by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Review, error)
	// ExistsForBooking reports whether a review already exists for the booking.
	ExistsForBooking(ctx context.Context, bookingID string) (bool, error)
	// ListByProvider returns a provider's reviews, newest first.
	ListByProvider(ctx context.Context, providerID string, limit, offset int) ([]models.Review, error)
	// CountByProvider returns the number of reviews for the provider.
	CountByProvider(ctx context.Context, providerID string) (int64, error)
	// RatingStats aggregates the unweighted mean rating and review count for
	// the provider.
	RatingStats(ctx context.Context, providerID string) (avg float64, count int, err error)
	// SetResponse attaches the provider's single response to a review.
	SetResponse(ctx context.Context, id, response string) error
}
