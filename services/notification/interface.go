package notification

import (
	"context"

	"eventra/models"
)

// Event is one domain occurrence to surface to a user: a persisted
// notification row plus a best-effort email.
type Event struct {
	RecipientID string
	Type        models.NotificationType
	Title       string
	Body        string
	Link        string
}

// NotificationService persists notifications and fans them out to email.
type NotificationService interface {
	// Dispatch records the event for its recipient and enqueues the email.
	// It never returns an error; failures are logged and dropped.
	Dispatch(ctx context.Context, event Event)
	// List returns the caller's notifications, newest first.
	List(ctx context.Context, identity models.Identity, limit int64) ([]models.Notification, error)
	// MarkRead flips one notification of the caller to read.
	MarkRead(ctx context.Context, identity models.Identity, notificationID string) error
	// MarkAllRead flips all the caller's unread notifications, returning the
	// number updated.
	MarkAllRead(ctx context.Context, identity models.Identity) (int64, error)
	// UnreadCount returns the caller's unread notification count.
	UnreadCount(ctx context.Context, identity models.Identity) (int64, error)
}
