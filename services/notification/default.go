package notification

import (
	"context"
	"fmt"

	"eventra/models"
	"eventra/services/fault"
	"eventra/services/tasks"
	"eventra/utils"

	notificationRepo "eventra/database/repository/notification"
	userRepo "eventra/database/repository/user"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	repo  notificationRepo.NotificationRepository
	users userRepo.UserRepository
	queue *asynq.Client
}

// NewDefaultNotificationService wires the dispatcher. queue may be nil, in
// which case no emails are enqueued (notifications are still persisted).
func NewDefaultNotificationService(
	repo notificationRepo.NotificationRepository,
	users userRepo.UserRepository,
	queue *asynq.Client,
) (*DefaultNotificationService, error) {
	if repo == nil || users == nil {
		return nil, fmt.Errorf("notification service initialization error: repo or user repo is nil")
	}
	return &DefaultNotificationService{
		repo:  repo,
		users: users,
		queue: queue,
	}, nil
}

// Dispatch records the event and enqueues its email. Best effort only.
func (s *DefaultNotificationService) Dispatch(ctx context.Context, event Event) {
	logger := utils.GetLogger()

	n := &models.Notification{
		ID:     uuid.New().String(),
		UserID: event.RecipientID,
		Type:   event.Type,
		Title:  event.Title,
		Body:   event.Body,
		Link:   event.Link,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		logger.Error("failed to persist notification",
			zap.String("recipient", event.RecipientID),
			zap.String("type", string(event.Type)),
			zap.Error(err),
		)
		return
	}

	if s.queue == nil {
		return
	}

	user, err := s.users.GetByID(ctx, event.RecipientID)
	if err != nil || user == nil {
		logger.Warn("skipping notification email, recipient lookup failed",
			zap.String("recipient", event.RecipientID),
			zap.Error(err),
		)
		return
	}

	payload := models.EmailDeliveryPayload{
		NotificationID: n.ID,
		UserID:         user.ID,
		Email:          user.Email,
		Name:           user.Name,
		Type:           event.Type,
		Title:          event.Title,
		Body:           event.Body,
		Link:           event.Link,
	}
	task, opts, err := tasks.NewEmailDeliveryTask(payload)
	if err != nil {
		logger.Error("failed to build email task", zap.Error(err))
		return
	}
	if _, err := s.queue.EnqueueContext(ctx, task, opts...); err != nil {
		logger.Error("failed to enqueue email task",
			zap.String("notification", n.ID),
			zap.Error(err),
		)
	}
}

// List returns the caller's notifications, newest first.
func (s *DefaultNotificationService) List(ctx context.Context, identity models.Identity, limit int64) ([]models.Notification, error) {
	if identity.UserID == "" {
		return nil, fault.New(fault.Unauthenticated, "missing identity")
	}
	return s.repo.ListByUser(ctx, identity.UserID, limit)
}

// MarkRead flips one notification of the caller to read.
func (s *DefaultNotificationService) MarkRead(ctx context.Context, identity models.Identity, notificationID string) error {
	if identity.UserID == "" {
		return fault.New(fault.Unauthenticated, "missing identity")
	}
	ok, err := s.repo.MarkRead(ctx, notificationID, identity.UserID)
	if err != nil {
		return err
	}
	if !ok {
		return fault.New(fault.NotFound, fmt.Sprintf("notification %s not found", notificationID))
	}
	return nil
}

// MarkAllRead flips all the caller's unread notifications.
func (s *DefaultNotificationService) MarkAllRead(ctx context.Context, identity models.Identity) (int64, error) {
	if identity.UserID == "" {
		return 0, fault.New(fault.Unauthenticated, "missing identity")
	}
	return s.repo.MarkAllRead(ctx, identity.UserID)
}

// UnreadCount returns the caller's unread notification count.
func (s *DefaultNotificationService) UnreadCount(ctx context.Context, identity models.Identity) (int64, error) {
	if identity.UserID == "" {
		return 0, fault.New(fault.Unauthenticated, "missing identity")
	}
	return s.repo.CountUnread(ctx, identity.UserID)
}
