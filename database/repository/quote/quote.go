package quoteRepo

import (
	"context"
	"errors"

	"eventra/models"
)

// ErrNotPending is returned by the guarded transition methods when the quote
// is no longer pending: the optimistic check lost to a concurrent or earlier
// transition.
var ErrNotPending = errors.New("quote is not pending")

// QuoteRepository defines data access for quotes and their transactional
// side effects on bookings, messages and conversations.
type QuoteRepository interface {
	// GetByID returns nil, nil when no quote exists.
	GetByID(ctx context.Context, id string) (*models.Quote, error)
	// ListByConversation returns all quotes of a thread, newest first.
	ListByConversation(ctx context.Context, conversationID string) ([]models.Quote, error)
	// CreateTx inserts the quote, its type=quote message, and bumps the
	// conversation for the customer in one transaction.
	CreateTx(ctx context.Context, quote *models.Quote, msg *models.Message) error
	// AcceptTx transitions pending -> accepted, inserts the booking, links
	// it on the quote, appends the system message, and bumps the vendor's
	// unread counter, all in one transaction. Returns ErrNotPending if the
	// quote already left pending.
	AcceptTx(ctx context.Context, quoteID string, booking *models.Booking, msg *models.Message) error
	// DeclineTx transitions pending -> declined and appends the system
	// message transactionally. Returns ErrNotPending on a lost race.
	DeclineTx(ctx context.Context, quoteID string, msg *models.Message) error
}
