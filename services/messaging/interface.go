package messaging

import (
	"context"

	"eventra/models"
)

// MessagingService is the conversation store plus the message log: threads,
// append, read, unread bookkeeping.
type MessagingService interface {
	// GetOrCreateConversation returns the single thread for the pair,
	// creating it on first contact. bookingID, when non-empty, is linked
	// onto the thread.
	GetOrCreateConversation(ctx context.Context, vendorID, customerID, bookingID string) (*models.Conversation, error)
	// SendMessage appends a message from the caller and bumps the other
	// side's unread counter. Empty content is rejected.
	SendMessage(ctx context.Context, identity models.Identity, conversationID string, content models.MessageContent) (*models.Message, error)
	// ListMessages returns the thread ascending by time, hydrates quote
	// references, and resets the caller's unread counter.
	ListMessages(ctx context.Context, identity models.Identity, conversationID string) ([]models.Message, error)
	// ListConversations returns the caller's threads, most recent first.
	ListConversations(ctx context.Context, identity models.Identity) ([]models.Conversation, error)
	// UnreadTotal sums the caller's unread counters across all threads.
	UnreadTotal(ctx context.Context, identity models.Identity) (int, error)
}
