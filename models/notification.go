package models

import "time"

// Notification types.
const (
	NotificationTypeBooking      = "booking"
	NotificationTypePayment      = "payment"
	NotificationTypeReview       = "review"
	NotificationTypeSubscription = "subscription"
	NotificationTypeGeneral      = "general"
)

// Related entity types referenced by a notification.
const (
	RelatedTypeBooking           = "booking"
	RelatedTypePaymentAdjustment = "payment-adjustment"
	RelatedTypeReview            = "review"
)

// Notification is an in-app, per-user message describing an event. It is
// written by the core services as a side effect and mutated only by its
// recipient (read flag, deletion).
type Notification struct {
	ID          string    `bson:"id" json:"id"`
	UserID      string    `bson:"userId" json:"userId"`
	Type        string    `bson:"type" json:"type"`
	Title       string    `bson:"title" json:"title"`
	Message     string    `bson:"message" json:"message"`
	RelatedID   string    `bson:"relatedId,omitempty" json:"relatedId,omitempty"`
	RelatedType string    `bson:"relatedType,omitempty" json:"relatedType,omitempty"`
	IsRead      bool      `bson:"isRead" json:"isRead"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}
