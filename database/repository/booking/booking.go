package bookingRepo

import (
	"context"
	"errors"
	"time"

	"eventra/models"
)

// ErrStateConflict is returned by the guarded write methods when the booking
// no longer satisfies the precondition: a concurrent or earlier transition
// got there first, or the date-proposal staging field is not in the expected
// state.
var ErrStateConflict = errors.New("booking state conflict")

// BookingRepository defines data access for bookings and their transactional
// side effects on conversations and messages.
type BookingRepository interface {
	// GetByID returns nil, nil when no booking exists.
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// ListByParty returns the caller's bookings, newest first.
	ListByParty(ctx context.Context, partyID string, role models.Role) ([]models.Booking, error)
	// CreateFromInquiryTx inserts the booking and upserts the pair's
	// conversation (linking the booking) in one transaction, returning the
	// conversation.
	CreateFromInquiryTx(ctx context.Context, booking *models.Booking) (*models.Conversation, error)
	// UpdateStatus transitions the booking only while its status is in
	// from; otherwise ErrStateConflict. confirmedAt is set when non-nil.
	UpdateStatus(ctx context.Context, id string, from []models.BookingStatus, to models.BookingStatus, confirmedAt *time.Time) error
	// ProposeDateTx stages a proposed date on a booking that has no event
	// date and no live proposal, and appends the date_proposal message to
	// the conversation transactionally.
	ProposeDateTx(ctx context.Context, bookingID, proposedDate string, msg *models.Message) error
	// AcceptProposedDate promotes proposed_date into event_date and clears
	// the staging field, returning the updated booking. ErrStateConflict
	// when no proposal is live.
	AcceptProposedDate(ctx context.Context, bookingID string) (*models.Booking, error)
	// DeclineProposedDate clears a live proposal without touching
	// event_date. ErrStateConflict when no proposal is live.
	DeclineProposedDate(ctx context.Context, bookingID string) error
}
