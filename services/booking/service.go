package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingRepo "servicehub/database/repository/booking"
	categoryRepo "servicehub/database/repository/category"
	planRepo "servicehub/database/repository/plan"
	providerRepo "servicehub/database/repository/provider"
	userRepo "servicehub/database/repository/user"
	"servicehub/models"
	"servicehub/services/notification"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// legalFrom maps each target status to the statuses a booking may transition
// from. Terminal statuses appear in no value, so a completed or cancelled
// booking never matches a CAS write.
var legalFrom = map[string][]string{
	models.BookingStatusAccepted:   {models.BookingStatusPending},
	models.BookingStatusInProgress: {models.BookingStatusAccepted},
	models.BookingStatusCompleted:  {models.BookingStatusAccepted, models.BookingStatusInProgress},
	models.BookingStatusCancelled:  {models.BookingStatusPending, models.BookingStatusAccepted, models.BookingStatusInProgress},
}

// DefaultBookingService is the production implementation of BookingService.
type DefaultBookingService struct {
	Bookings   bookingRepo.BookingRepository
	Providers  providerRepo.ProviderRepository
	Users      userRepo.UserRepository
	Plans      planRepo.PlanRepository
	Categories categoryRepo.CategoryRepository
	Notifier   notification.Dispatcher
	Logger     *zap.Logger

	// CommissionRate is the platform cut applied when the provider's plan
	// does not carry its own rate.
	CommissionRate float64
}

func NewDefaultBookingService(
	bookings bookingRepo.BookingRepository,
	providers providerRepo.ProviderRepository,
	users userRepo.UserRepository,
	plans planRepo.PlanRepository,
	categories categoryRepo.CategoryRepository,
	notifier notification.Dispatcher,
	logger *zap.Logger,
	commissionRate float64,
) (*DefaultBookingService, error) {
	if bookings == nil || providers == nil || users == nil || notifier == nil || logger == nil {
		return nil, fmt.Errorf("booking service initialization error: one or more dependencies are nil")
	}
	return &DefaultBookingService{
		Bookings:       bookings,
		Providers:      providers,
		Users:          users,
		Plans:          plans,
		Categories:     categories,
		Notifier:       notifier,
		Logger:         logger,
		CommissionRate: commissionRate,
	}, nil
}

// Create persists a pending booking for the customer after checking the
// provider's subscription gate, then notifies the provider.
func (s *DefaultBookingService) Create(ctx context.Context, customerID string, req CreateBookingRequest) (*models.Booking, error) {
	provider, err := s.Providers.GetByID(ctx, req.ProviderID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("provider %s: %w", req.ProviderID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch provider: %w", err)
	}
	if !provider.Bookable() {
		return nil, ErrProviderUnavailable
	}

	now := time.Now()
	bk := &models.Booking{
		ID:                uuid.New().String(),
		CustomerID:        customerID,
		ProviderID:        provider.ID,
		ServiceCategoryID: req.ServiceCategoryID,
		ServiceDate:       req.ServiceDate,
		ServiceTime:       req.ServiceTime,
		Duration:          req.Duration,
		Address:           req.Address,
		City:              req.City,
		State:             req.State,
		ZipCode:           req.ZipCode,
		Description:       req.Description,
		EstimatedCost:     req.EstimatedCost,
		Commission:        req.EstimatedCost * s.commissionRateFor(ctx, provider),
		Status:            models.BookingStatusPending,
		PaymentStatus:     models.PaymentStatusPending,
		PaymentMethod:     req.PaymentMethod,
		Notes:             req.Notes,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.Bookings.Create(ctx, bk); err != nil {
		return nil, err
	}

	s.Notifier.Notify(ctx, provider.UserID, models.NotificationTypeBooking,
		"New Booking Request",
		fmt.Sprintf("You have a new booking request for %s at %s.", bk.ServiceDate, bk.ServiceTime),
		bk.ID, models.RelatedTypeBooking)
	s.Notifier.NotifyExternal(ctx, provider.UserID,
		"New Booking Request",
		fmt.Sprintf("You have a new booking request for %s at %s.", bk.ServiceDate, bk.ServiceTime),
		s.bookingDetails(ctx, bk))

	return bk, nil
}

// commissionRateFor returns the provider's plan commission rate when the
// plan carries one, otherwise the platform default.
func (s *DefaultBookingService) commissionRateFor(ctx context.Context, provider *models.ProviderProfile) float64 {
	if provider.SubscriptionPlanID == "" || s.Plans == nil {
		return s.CommissionRate
	}
	plan, err := s.Plans.GetByID(ctx, provider.SubscriptionPlanID)
	if err != nil {
		s.Logger.Warn("falling back to default commission rate, plan lookup failed",
			zap.String("planId", provider.SubscriptionPlanID), zap.Error(err))
		return s.CommissionRate
	}
	if plan.CommissionRate > 0 {
		return plan.CommissionRate
	}
	return s.CommissionRate
}

// UpdateStatus applies a lifecycle transition with a compare-and-swap write
// guarded by the legal-transition table, then runs the transition's side
// effects. Notification failures never surface; the status write stands.
func (s *DefaultBookingService) UpdateStatus(ctx context.Context, bookingID, actorUserID, actorRole string, req UpdateStatusRequest) (*models.Booking, error) {
	target := models.NormalizeBookingStatus(req.Status)
	from, ok := legalFrom[target]
	if !ok {
		return nil, fmt.Errorf("status %q: %w", req.Status, ErrInvalidTransition)
	}

	bk, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	provider, err := s.Providers.GetByID(ctx, bk.ProviderID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch provider: %w", err)
	}
	if actorUserID != bk.CustomerID && actorUserID != provider.UserID {
		return nil, ErrForbidden
	}

	set := bson.M{"status": target}
	switch target {
	case models.BookingStatusCompleted:
		if req.FinalCost != nil {
			set["finalCost"] = *req.FinalCost
			set["commission"] = *req.FinalCost * s.commissionRateFor(ctx, provider)
		}
	case models.BookingStatusCancelled:
		if req.CancellationReason != "" {
			set["cancellationReason"] = req.CancellationReason
		}
	}

	matched, err := s.Bookings.UpdateStatusIf(ctx, bookingID, from, set)
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, fmt.Errorf("booking %s is %s: %w", bookingID, bk.Status, ErrInvalidTransition)
	}

	updated, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	s.runTransitionEffects(ctx, updated, provider, target, actorRole, req.CancellationReason)
	return updated, nil
}

func (s *DefaultBookingService) runTransitionEffects(ctx context.Context, bk *models.Booking, provider *models.ProviderProfile, target, actorRole, reason string) {
	details := s.bookingDetails(ctx, bk)

	switch target {
	case models.BookingStatusAccepted:
		msg := fmt.Sprintf("Your booking for %s at %s has been accepted.", bk.ServiceDate, bk.ServiceTime)
		s.Notifier.Notify(ctx, bk.CustomerID, models.NotificationTypeBooking,
			"Booking Accepted", msg, bk.ID, models.RelatedTypeBooking)
		s.Notifier.NotifyExternal(ctx, bk.CustomerID, "Booking Accepted", msg, details)

	case models.BookingStatusCompleted:
		if err := s.Providers.IncrementCompletedBookings(ctx, provider.ID, 1); err != nil {
			s.Logger.Error("failed to increment completed bookings",
				zap.String("providerId", provider.ID), zap.Error(err))
		}
		msg := "Your booking has been completed. Please take a moment to leave a review."
		s.Notifier.Notify(ctx, bk.CustomerID, models.NotificationTypeBooking,
			"Booking Completed", msg, bk.ID, models.RelatedTypeBooking)
		s.Notifier.NotifyExternal(ctx, bk.CustomerID, "Booking Completed", msg, details)

	case models.BookingStatusCancelled:
		// Notify whichever party did not initiate the cancellation.
		recipient := bk.CustomerID
		if actorRole == models.RoleCustomer {
			recipient = provider.UserID
		}
		msg := fmt.Sprintf("Your booking for %s at %s has been cancelled.", bk.ServiceDate, bk.ServiceTime)
		if reason != "" {
			msg = fmt.Sprintf("%s Reason: %s", msg, reason)
		}
		s.Notifier.Notify(ctx, recipient, models.NotificationTypeBooking,
			"Booking Cancelled", msg, bk.ID, models.RelatedTypeBooking)
		s.Notifier.NotifyExternal(ctx, recipient, "Booking Cancelled", msg, details)
	}
}

// List returns the actor's bookings, scoped by role and newest first.
func (s *DefaultBookingService) List(ctx context.Context, actorUserID, actorRole, statusFilter string) ([]models.Booking, error) {
	statusFilter = models.NormalizeBookingStatus(statusFilter)

	if actorRole == models.RoleProvider {
		provider, err := s.Providers.GetByUserID(ctx, actorUserID)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, ErrForbidden
			}
			return nil, err
		}
		return s.Bookings.ListByProvider(ctx, provider.ID, statusFilter)
	}
	return s.Bookings.ListByCustomer(ctx, actorUserID, statusFilter)
}

// GetByID returns the booking with its related parties attached. Only the
// booking's customer or its provider may read it.
func (s *DefaultBookingService) GetByID(ctx context.Context, bookingID, actorUserID string) (*models.BookingDetail, error) {
	bk, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	detail := &models.BookingDetail{Booking: *bk}

	provider, err := s.Providers.GetByID(ctx, bk.ProviderID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch provider: %w", err)
	}
	if actorUserID != bk.CustomerID && actorUserID != provider.UserID {
		return nil, ErrForbidden
	}

	summary := &models.ProviderSummary{
		ID:           provider.ID,
		BusinessName: provider.BusinessName,
		Rating:       provider.Rating,
	}
	if u, err := s.Users.GetByID(ctx, provider.UserID); err == nil {
		summary.User = u.Summary()
	} else {
		s.Logger.Warn("booking detail missing provider user",
			zap.String("bookingId", bookingID), zap.Error(err))
	}
	detail.Provider = summary

	if u, err := s.Users.GetByID(ctx, bk.CustomerID); err == nil {
		detail.Customer = u.Summary()
	} else {
		s.Logger.Warn("booking detail missing customer",
			zap.String("bookingId", bookingID), zap.Error(err))
	}

	if s.Categories != nil {
		if c, err := s.Categories.GetByID(ctx, bk.ServiceCategoryID); err == nil {
			detail.ServiceCategory = c
		} else {
			s.Logger.Warn("booking detail missing service category",
				zap.String("bookingId", bookingID), zap.Error(err))
		}
	}

	return detail, nil
}

// bookingDetails assembles the booking context rendered into external
// notification sends. Category lookup is best-effort.
func (s *DefaultBookingService) bookingDetails(ctx context.Context, bk *models.Booking) notification.BookingDetails {
	d := notification.BookingDetails{
		ServiceDate: bk.ServiceDate,
		ServiceTime: bk.ServiceTime,
		Address:     fmt.Sprintf("%s, %s, %s %s", bk.Address, bk.City, bk.State, bk.ZipCode),
	}
	if s.Categories != nil {
		if c, err := s.Categories.GetByID(ctx, bk.ServiceCategoryID); err == nil {
			d.ServiceName = c.Name
		}
	}
	return d
}
