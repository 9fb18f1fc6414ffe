package quote

import (
	"context"

	"eventra/models"
)

// SendRequest is a vendor's price offer for a conversation.
type SendRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Price       float64  `json:"price" binding:"required"`
	Features    []string `json:"features"`
	EventDate   string   `json:"eventDate"`
}

// AcceptResult carries the accepted quote and the booking it created.
type AcceptResult struct {
	Quote   *models.Quote   `json:"quote"`
	Booking *models.Booking `json:"booking"`
}

// QuoteService is the quote negotiation engine: vendors offer, customers
// settle, and acceptance creates the booking.
type QuoteService interface {
	// Send creates a pending quote in the thread together with its
	// type=quote message. Vendor only.
	Send(ctx context.Context, identity models.Identity, conversationID string, req SendRequest) (*models.Quote, error)
	// Accept settles a pending quote, creating a pending booking priced
	// from it. Customer only. InvalidState when the quote already settled.
	Accept(ctx context.Context, identity models.Identity, quoteID string) (*AcceptResult, error)
	// Decline settles a pending quote without creating a booking. Customer
	// only.
	Decline(ctx context.Context, identity models.Identity, quoteID string) (*models.Quote, error)
}
