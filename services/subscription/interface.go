package subscription

import (
	"context"
	"time"

	"servicehub/models"

	"github.com/stripe/stripe-go/v76"
)

// CheckoutResult is the outcome of starting a plan checkout. Free plans
// activate immediately and carry no redirect URL.
type CheckoutResult struct {
	CheckoutURL string `json:"checkoutUrl,omitempty"`
	Activated   bool   `json:"activated"`
}

// CurrentSubscription is the provider-facing view of its own subscription.
type CurrentSubscription struct {
	Status    string                   `json:"status"`
	Plan      *models.SubscriptionPlan `json:"plan,omitempty"`
	StartDate *time.Time               `json:"startDate,omitempty"`
	EndDate   *time.Time               `json:"endDate,omitempty"`
}

// SubscriptionService is the billing boundary: it lists plans, starts Stripe
// checkouts, and applies webhook events to provider profiles. Billing state
// transitions themselves stay inside Stripe; this service only mirrors their
// outcome onto the profile fields the booking gate reads.
type SubscriptionService interface {
	ListPlans(ctx context.Context) ([]models.SubscriptionPlan, error)
	CreateCheckout(ctx context.Context, providerUserID, planID string) (*CheckoutResult, error)
	Current(ctx context.Context, providerUserID string) (*CurrentSubscription, error)
	HandleEvent(ctx context.Context, event stripe.Event) error
}
