package models

import "time"

// NotificationType enumerates the domain events the dispatcher translates
// into per-user notification records.
type NotificationType string

const (
	NotificationNewInquiry       NotificationType = "new_inquiry"
	NotificationMessageReceived  NotificationType = "message_received"
	NotificationQuoteReceived    NotificationType = "quote_received"
	NotificationQuoteAccepted    NotificationType = "quote_accepted"
	NotificationQuoteDeclined    NotificationType = "quote_declined"
	NotificationBookingConfirmed NotificationType = "booking_confirmed"
	NotificationBookingCancelled NotificationType = "booking_cancelled"
	NotificationBookingCompleted NotificationType = "booking_completed"
	NotificationDateProposed     NotificationType = "date_proposed"
	NotificationDateAccepted     NotificationType = "date_accepted"
)

// Notification is a persisted, per-user notification record. The core only
// ever flips Read; retention is handled elsewhere.
type Notification struct {
	ID        string           `bson:"id" json:"id"`
	UserID    string           `bson:"user_id" json:"userId"`
	Type      NotificationType `bson:"type" json:"type"`
	Title     string           `bson:"title" json:"title"`
	Body      string           `bson:"body" json:"body"`
	Link      string           `bson:"link,omitempty" json:"link,omitempty"`
	Read      bool             `bson:"read" json:"read"`
	CreatedAt time.Time        `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time        `bson:"updated_at" json:"updatedAt"`
}
