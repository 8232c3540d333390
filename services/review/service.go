package review

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingRepo "servicehub/database/repository/booking"
	providerRepo "servicehub/database/repository/provider"
	reviewRepo "servicehub/database/repository/review"
	userRepo "servicehub/database/repository/user"
	"servicehub/models"
	"servicehub/services/notification"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const defaultPageSize = 20

// DefaultReviewService is the production implementation of ReviewService.
type DefaultReviewService struct {
	Reviews   reviewRepo.ReviewRepository
	Bookings  bookingRepo.BookingRepository
	Providers providerRepo.ProviderRepository
	Users     userRepo.UserRepository
	Notifier  notification.Dispatcher
	Logger    *zap.Logger
}

func NewDefaultReviewService(
	reviews reviewRepo.ReviewRepository,
	bookings bookingRepo.BookingRepository,
	providers providerRepo.ProviderRepository,
	users userRepo.UserRepository,
	notifier notification.Dispatcher,
	logger *zap.Logger,
) (*DefaultReviewService, error) {
	if reviews == nil || bookings == nil || providers == nil || users == nil || notifier == nil || logger == nil {
		return nil, fmt.Errorf("review service initialization error: one or more dependencies are nil")
	}
	return &DefaultReviewService{
		Reviews:   reviews,
		Bookings:  bookings,
		Providers: providers,
		Users:     users,
		Notifier:  notifier,
		Logger:    logger,
	}, nil
}

// Create records a review for a completed booking and recomputes the
// provider's aggregate rating from all of its reviews, the just-inserted one
// included.
func (s *DefaultReviewService) Create(ctx context.Context, customerID string, req CreateReviewRequest) (*models.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRating
	}

	bk, err := s.Bookings.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if bk.CustomerID != customerID {
		return nil, ErrForbidden
	}
	if bk.Status != models.BookingStatusCompleted {
		return nil, fmt.Errorf("booking %s is %s: %w", bk.ID, bk.Status, ErrNotCompleted)
	}

	exists, err := s.Reviews.ExistsForBooking(ctx, bk.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicate
	}

	now := time.Now()
	rv := &models.Review{
		ID:         uuid.New().String(),
		BookingID:  bk.ID,
		CustomerID: customerID,
		ProviderID: bk.ProviderID,
		Rating:     req.Rating,
		Comment:    req.Comment,
		IsVerified: true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.Reviews.Create(ctx, rv); err != nil {
		// The unique bookingId index closes the check-then-insert race.
		if mongo.IsDuplicateKeyError(err) || mongo.IsDuplicateKeyError(errors.Unwrap(err)) {
			return nil, ErrDuplicate
		}
		return nil, err
	}

	s.recomputeRating(ctx, bk.ProviderID)

	if provider, err := s.Providers.GetByID(ctx, bk.ProviderID); err == nil {
		msg := fmt.Sprintf("You received a %d-star review.", rv.Rating)
		s.Notifier.Notify(ctx, provider.UserID, models.NotificationTypeReview,
			"New Review", msg, rv.ID, models.RelatedTypeReview)
	} else {
		s.Logger.Warn("review notification skipped, provider lookup failed",
			zap.String("providerId", bk.ProviderID), zap.Error(err))
	}

	return rv, nil
}

// recomputeRating overwrites the provider's derived rating fields from the
// review aggregation. Failure leaves the aggregate stale until the next
// review; the inserted review itself stands.
func (s *DefaultReviewService) recomputeRating(ctx context.Context, providerID string) {
	avg, count, err := s.Reviews.RatingStats(ctx, providerID)
	if err != nil {
		s.Logger.Error("failed to recompute provider rating",
			zap.String("providerId", providerID), zap.Error(err))
		return
	}
	if err := s.Providers.UpdateRating(ctx, providerID, avg, count); err != nil {
		s.Logger.Error("failed to store provider rating",
			zap.String("providerId", providerID), zap.Error(err))
	}
}

// ProviderReviews returns a page of the provider's reviews with each
// reviewer's public fields attached, plus the total review count.
func (s *DefaultReviewService) ProviderReviews(ctx context.Context, providerID string, limit, offset int) ([]models.ReviewDetail, int64, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if offset < 0 {
		offset = 0
	}

	reviews, err := s.Reviews.ListByProvider(ctx, providerID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.Reviews.CountByProvider(ctx, providerID)
	if err != nil {
		return nil, 0, err
	}

	details := make([]models.ReviewDetail, 0, len(reviews))
	for _, rv := range reviews {
		d := models.ReviewDetail{Review: rv}
		if u, err := s.Users.GetByID(ctx, rv.CustomerID); err == nil {
			d.Customer = u.Summary()
		} else {
			s.Logger.Warn("review detail missing customer",
				zap.String("reviewId", rv.ID), zap.Error(err))
		}
		details = append(details, d)
	}
	return details, total, nil
}

// AddResponse attaches the provider's single response to one of its reviews.
func (s *DefaultReviewService) AddResponse(ctx context.Context, reviewID, providerUserID, response string) (*models.Review, error) {
	rv, err := s.Reviews.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	provider, err := s.Providers.GetByUserID(ctx, providerUserID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrForbidden
		}
		return nil, err
	}
	if rv.ProviderID != provider.ID {
		return nil, ErrForbidden
	}

	if err := s.Reviews.SetResponse(ctx, reviewID, response); err != nil {
		return nil, err
	}
	return s.Reviews.GetByID(ctx, reviewID)
}
