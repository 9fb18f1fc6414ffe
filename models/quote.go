package models

import "time"

// QuoteStatus is monotonic: pending is the only non-terminal state.
type QuoteStatus string

const (
	QuoteStatusPending  QuoteStatus = "pending"
	QuoteStatusAccepted QuoteStatus = "accepted"
	QuoteStatusDeclined QuoteStatus = "declined"
)

// Quote is a vendor-proposed price offer inside a conversation. Only the
// customer may accept or decline it, and only while it is pending.
type Quote struct {
	ID             string      `bson:"id" json:"id"`
	ConversationID string      `bson:"conversation_id" json:"conversationId"`
	VendorID       string      `bson:"vendor_id" json:"vendorId"`
	CustomerID     string      `bson:"customer_id" json:"customerId"`
	Title          string      `bson:"title" json:"title"`
	Description    string      `bson:"description,omitempty" json:"description,omitempty"`
	Price          float64     `bson:"price" json:"price"`
	Features       []string    `bson:"features,omitempty" json:"features,omitempty"`
	EventDate      string      `bson:"event_date,omitempty" json:"eventDate,omitempty"`
	Status         QuoteStatus `bson:"status" json:"status"`
	BookingID      string      `bson:"booking_id,omitempty" json:"bookingId,omitempty"`
	CreatedAt      time.Time   `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time   `bson:"updated_at" json:"updatedAt"`
}

// Terminal reports whether the quote can no longer change state.
func (q *Quote) Terminal() bool {
	return q.Status != QuoteStatusPending
}
