package booking

import (
	"context"

	"servicehub/models"
)

// CreateBookingRequest carries the customer's booking submission.
type CreateBookingRequest struct {
	ProviderID        string  `json:"providerId" binding:"required"`
	ServiceCategoryID string  `json:"serviceCategoryId" binding:"required"`
	ServiceDate       string  `json:"serviceDate" binding:"required"` // "YYYY-MM-DD"
	ServiceTime       string  `json:"serviceTime" binding:"required"` // "HH:MM"
	Duration          int     `json:"duration"`
	Address           string  `json:"address" binding:"required"`
	City              string  `json:"city" binding:"required"`
	State             string  `json:"state" binding:"required"`
	ZipCode           string  `json:"zipCode" binding:"required"`
	Description       string  `json:"description"`
	EstimatedCost     float64 `json:"estimatedCost"`
	PaymentMethod     string  `json:"paymentMethod"`
	Notes             string  `json:"notes"`
}

// UpdateStatusRequest carries a lifecycle transition. FinalCost only applies
// to completions, CancellationReason to cancellations.
type UpdateStatusRequest struct {
	Status             string   `json:"status" binding:"required"`
	FinalCost          *float64 `json:"finalCost"`
	CancellationReason string   `json:"cancellationReason"`
}

// BookingService owns the booking status state machine: creation under the
// subscription gate, legal transitions, commission computation, and the
// notifications each transition emits.
type BookingService interface {
	Create(ctx context.Context, customerID string, req CreateBookingRequest) (*models.Booking, error)
	UpdateStatus(ctx context.Context, bookingID, actorUserID, actorRole string, req UpdateStatusRequest) (*models.Booking, error)
	List(ctx context.Context, actorUserID, actorRole, statusFilter string) ([]models.Booking, error)
	GetByID(ctx context.Context, bookingID, actorUserID string) (*models.BookingDetail, error)
}
