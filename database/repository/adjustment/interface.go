package adjustmentRepo

import (
	"context"

	"servicehub/models"
)

// AdjustmentRepository defines data access for payment adjustments. Approval
// spans the adjustments and bookings collections, so the repository owns both
// handles and resolves approvals transactionally.
type AdjustmentRepository interface {
	// Create inserts a new adjustment document.
	Create(ctx context.Context, adjustment *models.PaymentAdjustment) error
	// GetByID retrieves an adjustment by its unique ID.
	GetByID(ctx context.Context, id string) (*models.PaymentAdjustment, error)
	// ListByBooking returns a booking's adjustments, newest first.
	ListByBooking(ctx context.Context, bookingID string) ([]models.PaymentAdjustment, error)
	// RejectIfPending marks the adjustment rejected only while it is still
	// pending, and reports whether a document matched.
	RejectIfPending(ctx context.Context, id string) (bool, error)
	// ApproveTransactionally marks the adjustment approved (only while
	// pending) and, in the same transaction, adds amount to the booking's
	// estimated cost and recomputes its commission at rate. It returns the
	// booking's new total. matched is false when the adjustment was already
	// resolved by a concurrent request.
	ApproveTransactionally(ctx context.Context, id, bookingID string, amount, rate float64) (newTotal float64, matched bool, err error)
}
