package models

import "time"

// Conversation is the single persistent thread between one vendor and one
// customer. At most one document exists per (vendor_id, customer_id) pair;
// the repository enforces this with a unique index and upsert semantics.
type Conversation struct {
	ID             string     `bson:"id" json:"id"`
	VendorID       string     `bson:"vendor_id" json:"vendorId"`
	CustomerID     string     `bson:"customer_id" json:"customerId"`
	BookingID      string     `bson:"booking_id,omitempty" json:"bookingId,omitempty"`
	LastMessageAt  *time.Time `bson:"last_message_at,omitempty" json:"lastMessageAt,omitempty"`
	UnreadVendor   int        `bson:"unread_vendor" json:"unreadVendor"`
	UnreadCustomer int        `bson:"unread_customer" json:"unreadCustomer"`
	CreatedAt      time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time  `bson:"updated_at" json:"updatedAt"`
}

// HasParty reports whether the given user is one of the two participants.
func (c *Conversation) HasParty(userID string) bool {
	return c.VendorID == userID || c.CustomerID == userID
}

// UnreadFor returns the unread counter belonging to the given side.
func (c *Conversation) UnreadFor(role Role) int {
	if role == RoleVendor {
		return c.UnreadVendor
	}
	return c.UnreadCustomer
}
