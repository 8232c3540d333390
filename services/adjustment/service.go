package adjustment

import (
	"context"
	"errors"
	"fmt"
	"time"

	adjustmentRepo "servicehub/database/repository/adjustment"
	bookingRepo "servicehub/database/repository/booking"
	providerRepo "servicehub/database/repository/provider"
	"servicehub/models"
	"servicehub/services/notification"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// adjustableStatuses are the booking statuses an adjustment may be requested
// in.
var adjustableStatuses = map[string]bool{
	models.BookingStatusAccepted:   true,
	models.BookingStatusInProgress: true,
}

// DefaultAdjustmentService is the production implementation of
// AdjustmentService.
type DefaultAdjustmentService struct {
	Adjustments adjustmentRepo.AdjustmentRepository
	Bookings    bookingRepo.BookingRepository
	Providers   providerRepo.ProviderRepository
	Notifier    notification.Dispatcher
	Logger      *zap.Logger

	// AdjustedRate is the commission rate applied to the booking's new total
	// when an adjustment is approved.
	AdjustedRate float64
}

func NewDefaultAdjustmentService(
	adjustments adjustmentRepo.AdjustmentRepository,
	bookings bookingRepo.BookingRepository,
	providers providerRepo.ProviderRepository,
	notifier notification.Dispatcher,
	logger *zap.Logger,
	adjustedRate float64,
) (*DefaultAdjustmentService, error) {
	if adjustments == nil || bookings == nil || providers == nil || notifier == nil || logger == nil {
		return nil, fmt.Errorf("adjustment service initialization error: one or more dependencies are nil")
	}
	return &DefaultAdjustmentService{
		Adjustments:  adjustments,
		Bookings:     bookings,
		Providers:    providers,
		Notifier:     notifier,
		Logger:       logger,
		AdjustedRate: adjustedRate,
	}, nil
}

// Request records a pending additional-payment request against an active
// booking and notifies the booking's customer.
func (s *DefaultAdjustmentService) Request(ctx context.Context, bookingID, providerUserID string, req RequestAdjustmentRequest) (*models.PaymentAdjustment, error) {
	bk, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	provider, err := s.Providers.GetByID(ctx, bk.ProviderID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch provider: %w", err)
	}
	if provider.UserID != providerUserID {
		return nil, ErrForbidden
	}
	if !adjustableStatuses[bk.Status] {
		return nil, fmt.Errorf("booking %s is %s: %w", bookingID, bk.Status, ErrInvalidBookingState)
	}

	now := time.Now()
	adj := &models.PaymentAdjustment{
		ID:          uuid.New().String(),
		BookingID:   bookingID,
		RequestedBy: providerUserID,
		Amount:      req.Amount,
		Reason:      req.Reason,
		Description: req.Description,
		Status:      models.AdjustmentStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Adjustments.Create(ctx, adj); err != nil {
		return nil, err
	}

	msg := fmt.Sprintf("Additional payment of $%.2f requested for your booking. Reason: %s", adj.Amount, adj.Reason)
	s.Notifier.Notify(ctx, bk.CustomerID, models.NotificationTypePayment,
		"Additional Payment Requested", msg, adj.ID, models.RelatedTypePaymentAdjustment)
	s.Notifier.NotifyExternal(ctx, bk.CustomerID, "Additional Payment Requested", msg,
		notification.BookingDetails{ServiceDate: bk.ServiceDate, ServiceTime: bk.ServiceTime})

	return adj, nil
}

// Respond resolves a pending adjustment. Approval applies the booking cost
// increase and commission recompute in the same transaction as the status
// flip; both paths are compare-and-swap writes, so a second response on the
// same adjustment fails with ErrAlreadyResolved.
func (s *DefaultAdjustmentService) Respond(ctx context.Context, adjustmentID, customerID string, req RespondRequest) (*RespondResult, error) {
	if req.Action != ActionApprove && req.Action != ActionReject {
		return nil, fmt.Errorf("action %q: %w", req.Action, ErrInvalidAction)
	}

	adj, err := s.Adjustments.GetByID(ctx, adjustmentID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	bk, err := s.Bookings.GetByID(ctx, adj.BookingID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if bk.CustomerID != customerID {
		return nil, ErrForbidden
	}
	if adj.Status != models.AdjustmentStatusPending {
		return nil, ErrAlreadyResolved
	}

	result := &RespondResult{}
	if req.Action == ActionApprove {
		newTotal, matched, err := s.Adjustments.ApproveTransactionally(ctx, adj.ID, bk.ID, adj.Amount, s.AdjustedRate)
		if err != nil {
			return nil, err
		}
		if !matched {
			return nil, ErrAlreadyResolved
		}
		result.NewTotal = newTotal

		msg := fmt.Sprintf("Your request for an additional $%.2f has been approved. New booking total: $%.2f.", adj.Amount, newTotal)
		s.Notifier.Notify(ctx, adj.RequestedBy, models.NotificationTypePayment,
			"Payment Request Approved", msg, adj.ID, models.RelatedTypePaymentAdjustment)
		s.Notifier.NotifyExternal(ctx, adj.RequestedBy, "Payment Request Approved", msg,
			notification.BookingDetails{ServiceDate: bk.ServiceDate, ServiceTime: bk.ServiceTime})
	} else {
		matched, err := s.Adjustments.RejectIfPending(ctx, adj.ID)
		if err != nil {
			return nil, err
		}
		if !matched {
			return nil, ErrAlreadyResolved
		}

		msg := fmt.Sprintf("Your request for an additional $%.2f has been rejected.", adj.Amount)
		s.Notifier.Notify(ctx, adj.RequestedBy, models.NotificationTypePayment,
			"Payment Request Rejected", msg, adj.ID, models.RelatedTypePaymentAdjustment)
		s.Notifier.NotifyExternal(ctx, adj.RequestedBy, "Payment Request Rejected", msg,
			notification.BookingDetails{ServiceDate: bk.ServiceDate, ServiceTime: bk.ServiceTime})
	}

	resolved, err := s.Adjustments.GetByID(ctx, adjustmentID)
	if err != nil {
		return nil, err
	}
	result.Adjustment = resolved
	return result, nil
}

// List returns a booking's adjustments, newest first. Only the booking's
// customer or its provider may read them.
func (s *DefaultAdjustmentService) List(ctx context.Context, bookingID, actorUserID string) ([]models.PaymentAdjustment, error) {
	bk, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	if bk.CustomerID != actorUserID {
		provider, err := s.Providers.GetByID(ctx, bk.ProviderID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch provider: %w", err)
		}
		if provider.UserID != actorUserID {
			return nil, ErrForbidden
		}
	}

	return s.Adjustments.ListByBooking(ctx, bookingID)
}
