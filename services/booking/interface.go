package booking

import (
	"context"

	"eventra/models"
)

// InquiryRequest is the customer's initial booking inquiry. A non-empty
// PackageID prices the booking from the vendor's catalog immediately.
type InquiryRequest struct {
	VendorID     string `json:"vendorId" binding:"required"`
	PackageID    string `json:"packageId"`
	EventDate    string `json:"eventDate"`
	EventType    string `json:"eventType"`
	GuestCount   int    `json:"guestCount"`
	VenueName    string `json:"venueName"`
	VenueAddress string `json:"venueAddress"`
	ContactName  string `json:"contactName"`
	ContactEmail string `json:"contactEmail"`
	ContactPhone string `json:"contactPhone"`
	Notes        string `json:"notes"`
}

// InquiryResult carries the created booking and the conversation the inquiry
// landed in.
type InquiryResult struct {
	Booking      *models.Booking      `json:"booking"`
	Conversation *models.Conversation `json:"conversation"`
}

// BookingService is the booking state machine plus the date-proposal
// sub-flow.
type BookingService interface {
	// CreateFromInquiry creates a new_inquiry booking for the customer and
	// upserts the pair's conversation in one transaction.
	CreateFromInquiry(ctx context.Context, identity models.Identity, req InquiryRequest) (*InquiryResult, error)
	// Get returns the booking, restricted to its two parties.
	Get(ctx context.Context, identity models.Identity, bookingID string) (*models.Booking, error)
	// ListForParty returns the caller's bookings, newest first.
	ListForParty(ctx context.Context, identity models.Identity) ([]models.Booking, error)
	// Confirm transitions new_inquiry|pending -> confirmed, stamping
	// confirmedAt exactly once. Vendor only.
	Confirm(ctx context.Context, identity models.Identity, bookingID string) (*models.Booking, error)
	// Cancel transitions new_inquiry|pending|confirmed -> cancelled. Vendor
	// only.
	Cancel(ctx context.Context, identity models.Identity, bookingID string) (*models.Booking, error)
	// Complete transitions confirmed -> completed. Vendor only.
	Complete(ctx context.Context, identity models.Identity, bookingID string) (*models.Booking, error)
	// ProposeDate stages a concrete event date on a booking that has none
	// and posts the proposal into the conversation. Vendor only.
	ProposeDate(ctx context.Context, identity models.Identity, bookingID, proposedDate string) (*models.Booking, error)
	// AcceptDate promotes the live proposal into the booking's event date.
	// Customer only.
	AcceptDate(ctx context.Context, identity models.Identity, bookingID string) (*models.Booking, error)
	// DeclineDate clears the live proposal. Customer only.
	DeclineDate(ctx context.Context, identity models.Identity, bookingID string) (*models.Booking, error)
}
