package providerRepo

import (
	"context"
	"time"

	"servicehub/models"
)

// ProviderRepository defines data access for provider profiles.
type ProviderRepository interface {
	// GetByID retrieves a provider profile by its unique ID.
	GetByID(ctx context.Context, id string) (*models.ProviderProfile, error)
	// GetByUserID retrieves the provider profile owned by a user account.
	GetByUserID(ctx context.Context, userID string) (*models.ProviderProfile, error)
	// IncrementCompletedBookings bumps the completed bookings counter.
	IncrementCompletedBookings(ctx context.Context, id string, by int) error
	// UpdateRating overwrites the derived rating aggregate.
	UpdateRating(ctx context.Context, id string, rating float64, totalReviews int) error
	// ApplySubscription overwrites the subscription fields, as reported by
	// the billing collaborator.
	ApplySubscription(ctx context.Context, id string, sub SubscriptionUpdate) error
	// SetStripeRefs records the provider's Stripe customer/subscription ids.
	SetStripeRefs(ctx context.Context, id, customerID, subscriptionID string) error
	// GetByStripeCustomer resolves a provider from its Stripe customer id.
	GetByStripeCustomer(ctx context.Context, customerID string) (*models.ProviderProfile, error)
}

// SubscriptionUpdate carries the subscription fields applied opaquely from
// billing events.
type SubscriptionUpdate struct {
	Status    string
	PlanID    string
	StartDate *time.Time
	EndDate   *time.Time
}
