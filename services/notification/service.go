package notification

import (
	"context"
	"fmt"
	"strconv"
	"time"

	notificationRepo "servicehub/database/repository/notification"
	userRepo "servicehub/database/repository/user"
	"servicehub/models"
	"servicehub/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	listLimit      = 50
	unreadCountTTL = time.Minute
)

// DefaultNotificationService is the production implementation of Service.
type DefaultNotificationService struct {
	Repo   notificationRepo.NotificationRepository
	Users  userRepo.UserRepository
	Tasks  TaskEnqueuer
	Cache  *redis.Client // optional unread-count cache
	Logger *zap.Logger
}

func NewDefaultNotificationService(
	repo notificationRepo.NotificationRepository,
	users userRepo.UserRepository,
	taskClient TaskEnqueuer,
	cache *redis.Client,
	logger *zap.Logger,
) (*DefaultNotificationService, error) {
	if repo == nil || users == nil || logger == nil {
		return nil, fmt.Errorf("notification service initialization error: one or more dependencies are nil")
	}
	return &DefaultNotificationService{
		Repo:   repo,
		Users:  users,
		Tasks:  taskClient,
		Cache:  cache,
		Logger: logger,
	}, nil
}

// Notify persists an in-app notification. Persist failures are logged and
// swallowed; callers never see an error from this path.
func (s *DefaultNotificationService) Notify(ctx context.Context, userID, ntype, title, message, relatedID, relatedType string) {
	now := time.Now()
	n := &models.Notification{
		ID:          uuid.New().String(),
		UserID:      userID,
		Type:        ntype,
		Title:       title,
		Message:     message,
		RelatedID:   relatedID,
		RelatedType: relatedType,
		IsRead:      false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Repo.Create(ctx, n); err != nil {
		s.Logger.Error("failed to record notification",
			zap.String("userId", userID),
			zap.String("type", ntype),
			zap.Error(err))
		return
	}
	s.invalidateUnreadCount(ctx, userID)
}

// NotifyExternal queues email and SMS delivery for the recipient. Lookups and
// enqueues are best-effort; the worker applies its own send timeouts.
func (s *DefaultNotificationService) NotifyExternal(ctx context.Context, userID, subject, message string, details BookingDetails) {
	user, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		s.Logger.Warn("external notification skipped, recipient lookup failed",
			zap.String("userId", userID), zap.Error(err))
		return
	}

	if s.Tasks == nil {
		s.Logger.Warn("external notification skipped, task queue not configured",
			zap.String("userId", userID))
		return
	}

	if user.Email != "" {
		task, err := tasks.NewEmailTask(tasks.EmailPayload{
			To:          user.Email,
			FirstName:   user.FirstName,
			Subject:     subject,
			Body:        message,
			ServiceDate: details.ServiceDate,
			ServiceTime: details.ServiceTime,
			ServiceName: details.ServiceName,
			Address:     details.Address,
		})
		if err == nil {
			_, err = s.Tasks.Enqueue(task)
		}
		if err != nil {
			s.Logger.Warn("failed to queue notification email",
				zap.String("userId", userID), zap.Error(err))
		}
	}

	// SMS only goes to verified phone numbers.
	if user.Phone != "" && user.PhoneVerified {
		task, err := tasks.NewSMSTask(tasks.SMSPayload{
			To:      user.Phone,
			Message: fmt.Sprintf("%s: %s", subject, message),
		})
		if err == nil {
			_, err = s.Tasks.Enqueue(task)
		}
		if err != nil {
			s.Logger.Warn("failed to queue notification SMS",
				zap.String("userId", userID), zap.Error(err))
		}
	}
}

func (s *DefaultNotificationService) List(ctx context.Context, userID string, unreadOnly bool) ([]models.Notification, int64, error) {
	notifications, err := s.Repo.ListByUser(ctx, userID, unreadOnly, listLimit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}
	unread, err := s.unreadCount(ctx, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return notifications, unread, nil
}

func (s *DefaultNotificationService) MarkRead(ctx context.Context, id, userID string) (*models.Notification, error) {
	n, err := s.Repo.MarkRead(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	s.invalidateUnreadCount(ctx, userID)
	return n, nil
}

func (s *DefaultNotificationService) MarkAllRead(ctx context.Context, userID string) error {
	if err := s.Repo.MarkAllRead(ctx, userID); err != nil {
		return err
	}
	s.invalidateUnreadCount(ctx, userID)
	return nil
}

func (s *DefaultNotificationService) Delete(ctx context.Context, id, userID string) error {
	if err := s.Repo.Delete(ctx, id, userID); err != nil {
		return err
	}
	s.invalidateUnreadCount(ctx, userID)
	return nil
}

func unreadCountKey(userID string) string {
	return "notif:unread:" + userID
}

func (s *DefaultNotificationService) unreadCount(ctx context.Context, userID string) (int64, error) {
	if s.Cache != nil {
		if cached, err := s.Cache.Get(ctx, unreadCountKey(userID)).Result(); err == nil {
			if count, convErr := strconv.ParseInt(cached, 10, 64); convErr == nil {
				return count, nil
			}
		}
	}
	count, err := s.Repo.CountUnread(ctx, userID)
	if err != nil {
		return 0, err
	}
	if s.Cache != nil {
		if err := s.Cache.Set(ctx, unreadCountKey(userID), count, unreadCountTTL).Err(); err != nil {
			s.Logger.Debug("unread count cache write failed", zap.Error(err))
		}
	}
	return count, nil
}

func (s *DefaultNotificationService) invalidateUnreadCount(ctx context.Context, userID string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Del(ctx, unreadCountKey(userID)).Err(); err != nil {
		s.Logger.Debug("unread count cache invalidation failed", zap.Error(err))
	}
}
