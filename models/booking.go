package models

import "time"

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingStatusNewInquiry BookingStatus = "new_inquiry"
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusConfirmed  BookingStatus = "confirmed"
	BookingStatusCompleted  BookingStatus = "completed"
	BookingStatusCancelled  BookingStatus = "cancelled"
)

// Booking is the canonical record of a potential engagement between a vendor
// and a customer. Price and fee fields are written exactly once, at the
// moment the total price is first established, and never recomputed.
type Booking struct {
	ID         string        `bson:"id" json:"id"`
	VendorID   string        `bson:"vendor_id" json:"vendorId"`
	CustomerID string        `bson:"customer_id" json:"customerId"`
	PackageID  string        `bson:"package_id,omitempty" json:"packageId,omitempty"`
	QuoteID    string        `bson:"quote_id,omitempty" json:"quoteId,omitempty"`
	Status     BookingStatus `bson:"status" json:"status"`

	// Event details, filled progressively. Dates are ISO-8601 date strings.
	EventDate    string `bson:"event_date,omitempty" json:"eventDate,omitempty"`
	EventType    string `bson:"event_type,omitempty" json:"eventType,omitempty"`
	GuestCount   int    `bson:"guest_count,omitempty" json:"guestCount,omitempty"`
	VenueName    string `bson:"venue_name,omitempty" json:"venueName,omitempty"`
	VenueAddress string `bson:"venue_address,omitempty" json:"venueAddress,omitempty"`
	ContactName  string `bson:"contact_name,omitempty" json:"contactName,omitempty"`
	ContactEmail string `bson:"contact_email,omitempty" json:"contactEmail,omitempty"`
	ContactPhone string `bson:"contact_phone,omitempty" json:"contactPhone,omitempty"`
	Notes        string `bson:"notes,omitempty" json:"notes,omitempty"`

	// ProposedDate is the date-proposal sub-flow's staging field. It is set
	// by the vendor and either promoted into EventDate or cleared by the
	// customer.
	ProposedDate string `bson:"proposed_date,omitempty" json:"proposedDate,omitempty"`

	// TotalPrice is nil until a package or an accepted quote establishes it.
	TotalPrice  *float64 `bson:"total_price,omitempty" json:"totalPrice,omitempty"`
	VendorFee   float64  `bson:"vendor_fee" json:"vendorFee"`
	CustomerFee float64  `bson:"customer_fee" json:"customerFee"`

	ConfirmedAt *time.Time `bson:"confirmed_at,omitempty" json:"confirmedAt,omitempty"`
	CreatedAt   time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time  `bson:"updated_at" json:"updatedAt"`
}

// Terminal reports whether no further status transition is possible.
func (b *Booking) Terminal() bool {
	return b.Status == BookingStatusCompleted || b.Status == BookingStatusCancelled
}
