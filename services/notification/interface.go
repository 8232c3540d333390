package notification

import (
	"context"

	"servicehub/models"

	"github.com/hibiken/asynq"
)

// Dispatcher records in-app notifications and queues external deliveries.
// Every method that runs as a side effect of a business transition is
// best-effort: failures are logged and never surface to the caller, so a
// broken notification path can never block or roll back the primary write.
type Dispatcher interface {
	// Notify persists an in-app notification for the user.
	Notify(ctx context.Context, userID, ntype, title, message, relatedID, relatedType string)
	// NotifyExternal queues email and, when the recipient's phone is
	// verified, SMS delivery of the same event.
	NotifyExternal(ctx context.Context, userID, subject, message string, details BookingDetails)
}

// Service is the recipient-facing notification API.
type Service interface {
	Dispatcher
	List(ctx context.Context, userID string, unreadOnly bool) ([]models.Notification, int64, error)
	MarkRead(ctx context.Context, id, userID string) (*models.Notification, error)
	MarkAllRead(ctx context.Context, userID string) error
	Delete(ctx context.Context, id, userID string) error
}

// BookingDetails is the booking context rendered into external messages.
type BookingDetails struct {
	ServiceDate string
	ServiceTime string
	ServiceName string
	Address     string
}

// TaskEnqueuer abstracts the asynq client so delivery can be faked in tests.
type TaskEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// EmailSender delivers booking notification emails.
type EmailSender interface {
	SendBookingNotificationEmail(ctx context.Context, to, firstName, subject, body string, details BookingDetails) error
}

// SMSSender delivers booking notification texts.
type SMSSender interface {
	SendBookingNotification(ctx context.Context, to, message string) error
}
