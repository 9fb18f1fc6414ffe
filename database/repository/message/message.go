package messageRepo

import (
	"context"

	"eventra/models"
)

// MessageRepository defines data access for the append-only message log.
type MessageRepository interface {
	// AppendTx inserts the message and updates the parent conversation's
	// last_message_at plus the counterpart's unread counter in one
	// transaction. No reader observes one write without the other.
	AppendTx(ctx context.Context, msg *models.Message, senderIsVendor bool) error
	// ListByConversation returns the log in creation order ascending.
	ListByConversation(ctx context.Context, conversationID string) ([]models.Message, error)
}
