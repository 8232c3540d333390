package handlers

import (
	"servicehub/services/adjustment"
	"servicehub/services/booking"
	"servicehub/services/notification"
	"servicehub/services/review"
	"servicehub/services/subscription"

	"go.uber.org/zap"
)

// HandlerBundle groups the endpoint handlers and the services they delegate
// to.
type HandlerBundle struct {
	Bookings      booking.BookingService
	Adjustments   adjustment.AdjustmentService
	Reviews       review.ReviewService
	Notifications notification.Service
	Subscriptions subscription.SubscriptionService
	Logger        *zap.Logger
}

func NewHandlerBundle(
	bookings booking.BookingService,
	adjustments adjustment.AdjustmentService,
	reviews review.ReviewService,
	notifications notification.Service,
	subscriptions subscription.SubscriptionService,
	logger *zap.Logger,
) *HandlerBundle {
	return &HandlerBundle{
		Bookings:      bookings,
		Adjustments:   adjustments,
		Reviews:       reviews,
		Notifications: notifications,
		Subscriptions: subscriptions,
		Logger:        logger,
	}
}
