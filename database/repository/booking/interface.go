package bookingRepo

import (
	"context"

	"servicehub/models"

	"go.mongodb.org/mongo-driver/bson"
)

// BookingRepository defines data access for bookings.
type BookingRepository interface {
	// Create inserts a new booking document.
	Create(ctx context.Context, booking *models.Booking) error
	// GetByID retrieves a booking by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// ListByCustomer returns a customer's bookings, newest service date first.
	ListByCustomer(ctx context.Context, customerID, status string) ([]models.Booking, error)
	// ListByProvider returns a provider's bookings, newest service date first.
	ListByProvider(ctx context.Context, providerID, status string) ([]models.Booking, error)
	// UpdateStatusIf applies the given update only while the booking's status
	// is one of fromStatuses. It reports whether a document matched, which
	// guards concurrent transitions against lost updates.
	UpdateStatusIf(ctx context.Context, id string, fromStatuses []string, set bson.M) (bool, error)
}
