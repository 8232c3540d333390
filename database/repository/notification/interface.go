package notificationRepo

import (
	"context"

	"servicehub/models"
)

// NotificationRepository defines data access for in-app notifications.
type NotificationRepository interface {
	// Create inserts a new notification document.
	Create(ctx context.Context, n *models.Notification) error
	// ListByUser returns a user's notifications, newest first, capped at limit.
	ListByUser(ctx context.Context, userID string, unreadOnly bool, limit int) ([]models.Notification, error)
	// CountUnread returns the user's unread notification count.
	CountUnread(ctx context.Context, userID string) (int64, error)
	// MarkRead flags a single notification read; only the recipient matches.
	MarkRead(ctx context.Context, id, userID string) (*models.Notification, error)
	// MarkAllRead flags every unread notification of the user read.
	MarkAllRead(ctx context.Context, userID string) error
	// Delete removes a notification; only the recipient matches.
	Delete(ctx context.Context, id, userID string) error
}
