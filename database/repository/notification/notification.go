package notificationRepo

import (
	"context"

	"eventra/models"
)

// NotificationRepository defines data access for per-user notifications.
type NotificationRepository interface {
	// Create persists a new notification.
	Create(ctx context.Context, n *models.Notification) error
	// GetByID returns nil, nil when no notification exists.
	GetByID(ctx context.Context, id string) (*models.Notification, error)
	// ListByUser returns the user's notifications, newest first, capped at
	// limit (<=0 means no cap).
	ListByUser(ctx context.Context, userID string, limit int64) ([]models.Notification, error)
	// MarkRead flips a single notification to read. Returns false if the
	// notification does not belong to the user or does not exist.
	MarkRead(ctx context.Context, id, userID string) (bool, error)
	// MarkAllRead flips every unread notification of the user, returning the
	// number updated.
	MarkAllRead(ctx context.Context, userID string) (int64, error)
	// CountUnread returns how many unread notifications the user has.
	CountUnread(ctx context.Context, userID string) (int64, error)
}
