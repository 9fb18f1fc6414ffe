package conversationRepo

import (
	"context"

	"eventra/models"
)

// ConversationRepository defines data access for conversation threads.
type ConversationRepository interface {
	// Upsert returns the single conversation for the vendor-customer pair,
	// creating it if absent. A non-empty bookingID overwrites the thread's
	// booking link. Safe under concurrent first contact.
	Upsert(ctx context.Context, vendorID, customerID, bookingID string) (*models.Conversation, error)
	// GetByID returns nil, nil when no conversation exists.
	GetByID(ctx context.Context, id string) (*models.Conversation, error)
	// MarkRead resets the unread counter of the given side to zero.
	MarkRead(ctx context.Context, id string, role models.Role) error
	// ListByParty returns the caller's threads, most recent activity first,
	// threads with no messages yet last.
	ListByParty(ctx context.Context, partyID string, role models.Role) ([]models.Conversation, error)
	// UnreadTotal sums the caller's unread counters across all threads.
	UnreadTotal(ctx context.Context, partyID string, role models.Role) (int, error)
}
