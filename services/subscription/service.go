package subscription

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"servicehub/config"
	planRepo "servicehub/database/repository/plan"
	providerRepo "servicehub/database/repository/provider"
	userRepo "servicehub/database/repository/user"
	"servicehub/models"
	"servicehub/services/notification"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/customer"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const freePlanTrialDays = 14

// DefaultSubscriptionService is the production implementation of
// SubscriptionService.
type DefaultSubscriptionService struct {
	Providers providerRepo.ProviderRepository
	Plans     planRepo.PlanRepository
	Users     userRepo.UserRepository
	Notifier  notification.Dispatcher
	Logger    *zap.Logger
}

func NewDefaultSubscriptionService(
	providers providerRepo.ProviderRepository,
	plans planRepo.PlanRepository,
	users userRepo.UserRepository,
	notifier notification.Dispatcher,
	logger *zap.Logger,
) (*DefaultSubscriptionService, error) {
	if providers == nil || plans == nil || users == nil || logger == nil {
		return nil, fmt.Errorf("subscription service initialization error: one or more dependencies are nil")
	}
	return &DefaultSubscriptionService{
		Providers: providers,
		Plans:     plans,
		Users:     users,
		Notifier:  notifier,
		Logger:    logger,
	}, nil
}

func (s *DefaultSubscriptionService) ListPlans(ctx context.Context) ([]models.SubscriptionPlan, error) {
	return s.Plans.ListActive(ctx)
}

// CreateCheckout starts a Stripe checkout session for a paid plan, or
// activates a free plan directly with a trial window.
func (s *DefaultSubscriptionService) CreateCheckout(ctx context.Context, providerUserID, planID string) (*CheckoutResult, error) {
	provider, err := s.Providers.GetByUserID(ctx, providerUserID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProviderNotFound
		}
		return nil, err
	}
	plan, err := s.Plans.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	if plan.Price == 0 {
		start := time.Now()
		end := start.AddDate(0, 0, freePlanTrialDays)
		err := s.Providers.ApplySubscription(ctx, provider.ID, providerRepo.SubscriptionUpdate{
			Status:    models.SubscriptionStatusTrial,
			PlanID:    plan.ID,
			StartDate: &start,
			EndDate:   &end,
		})
		if err != nil {
			return nil, err
		}
		if s.Notifier != nil {
			s.Notifier.Notify(ctx, providerUserID, models.NotificationTypeSubscription,
				"Trial Started",
				fmt.Sprintf("Your %s trial is active until %s.", plan.Name, end.Format("January 2, 2006")),
				plan.ID, "")
		}
		return &CheckoutResult{Activated: true}, nil
	}

	customerID, err := s.ensureStripeCustomer(ctx, provider)
	if err != nil {
		return nil, err
	}

	params := &stripe.CheckoutSessionParams{
		Customer: stripe.String(customerID),
		Mode:     stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(plan.StripePriceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(config.AppConfig.FrontendURL + "/provider/subscription?checkout=success"),
		CancelURL:  stripe.String(config.AppConfig.FrontendURL + "/provider/subscription?checkout=cancelled"),
	}
	sess, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}
	return &CheckoutResult{CheckoutURL: sess.URL}, nil
}

func (s *DefaultSubscriptionService) ensureStripeCustomer(ctx context.Context, provider *models.ProviderProfile) (string, error) {
	if provider.StripeCustomerID != "" {
		return provider.StripeCustomerID, nil
	}

	params := &stripe.CustomerParams{
		Name: stripe.String(provider.BusinessName),
	}
	if u, err := s.Users.GetByID(ctx, provider.UserID); err == nil {
		params.Email = stripe.String(u.Email)
	}
	params.AddMetadata("providerId", provider.ID)

	cust, err := customer.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create stripe customer: %w", err)
	}
	if err := s.Providers.SetStripeRefs(ctx, provider.ID, cust.ID, provider.StripeSubscriptionID); err != nil {
		return "", err
	}
	return cust.ID, nil
}

func (s *DefaultSubscriptionService) Current(ctx context.Context, providerUserID string) (*CurrentSubscription, error) {
	provider, err := s.Providers.GetByUserID(ctx, providerUserID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProviderNotFound
		}
		return nil, err
	}

	cur := &CurrentSubscription{
		Status:    provider.SubscriptionStatus,
		StartDate: provider.SubscriptionStartDate,
		EndDate:   provider.SubscriptionEndDate,
	}
	if provider.SubscriptionPlanID != "" {
		if plan, err := s.Plans.GetByID(ctx, provider.SubscriptionPlanID); err == nil {
			cur.Plan = plan
		} else {
			s.Logger.Warn("current subscription missing plan",
				zap.String("planId", provider.SubscriptionPlanID), zap.Error(err))
		}
	}
	return cur, nil
}

// HandleEvent applies a Stripe webhook event to the provider profile. Only
// subscription lifecycle events are acted on; everything else is ignored.
func (s *DefaultSubscriptionService) HandleEvent(ctx context.Context, event stripe.Event) error {
	switch event.Type {
	case "customer.subscription.created", "customer.subscription.updated":
		return s.applySubscriptionEvent(ctx, event, false)
	case "customer.subscription.deleted":
		return s.applySubscriptionEvent(ctx, event, true)
	default:
		s.Logger.Debug("ignoring stripe event", zap.String("type", string(event.Type)))
		return nil
	}
}

func (s *DefaultSubscriptionService) applySubscriptionEvent(ctx context.Context, event stripe.Event, deleted bool) error {
	var sub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
		return fmt.Errorf("failed to parse subscription event: %w", err)
	}
	if sub.Customer == nil {
		return fmt.Errorf("subscription event %s carries no customer", event.ID)
	}

	provider, err := s.Providers.GetByStripeCustomer(ctx, sub.Customer.ID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			s.Logger.Warn("stripe event for unknown customer",
				zap.String("customerId", sub.Customer.ID))
			return nil
		}
		return err
	}

	update := providerRepo.SubscriptionUpdate{
		Status: subscriptionStatus(sub.Status, deleted),
		PlanID: s.planIDForPrice(ctx, &sub),
	}
	if sub.CurrentPeriodStart > 0 {
		start := time.Unix(sub.CurrentPeriodStart, 0)
		update.StartDate = &start
	}
	if sub.CurrentPeriodEnd > 0 {
		end := time.Unix(sub.CurrentPeriodEnd, 0)
		update.EndDate = &end
	}

	if err := s.Providers.ApplySubscription(ctx, provider.ID, update); err != nil {
		return err
	}
	if err := s.Providers.SetStripeRefs(ctx, provider.ID, sub.Customer.ID, sub.ID); err != nil {
		return err
	}

	if s.Notifier != nil && update.Status != provider.SubscriptionStatus {
		s.Notifier.Notify(ctx, provider.UserID, models.NotificationTypeSubscription,
			"Subscription Updated",
			fmt.Sprintf("Your subscription is now %s.", update.Status),
			update.PlanID, "")
	}
	return nil
}

// subscriptionStatus maps Stripe's subscription status onto the profile's
// status enum the booking gate reads.
func subscriptionStatus(status stripe.SubscriptionStatus, deleted bool) string {
	if deleted {
		return models.SubscriptionStatusCancelled
	}
	switch status {
	case stripe.SubscriptionStatusActive:
		return models.SubscriptionStatusActive
	case stripe.SubscriptionStatusTrialing:
		return models.SubscriptionStatusTrial
	case stripe.SubscriptionStatusCanceled:
		return models.SubscriptionStatusCancelled
	default:
		return models.SubscriptionStatusInactive
	}
}

// planIDForPrice resolves the local plan whose Stripe price the subscription
// is billed against. Best-effort; an unknown price keeps the previous plan id
// empty.
func (s *DefaultSubscriptionService) planIDForPrice(ctx context.Context, sub *stripe.Subscription) string {
	if sub.Items == nil || len(sub.Items.Data) == 0 || sub.Items.Data[0].Price == nil {
		return ""
	}
	priceID := sub.Items.Data[0].Price.ID

	plans, err := s.Plans.ListActive(ctx)
	if err != nil {
		s.Logger.Warn("plan resolution failed for stripe price",
			zap.String("priceId", priceID), zap.Error(err))
		return ""
	}
	for _, p := range plans {
		if p.StripePriceID == priceID {
			return p.ID
		}
	}
	return ""
}
