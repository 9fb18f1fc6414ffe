package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventra/models"
	"eventra/services/fault"
	"eventra/services/notification"

	bookingRepo "eventra/database/repository/booking"
	conversationRepo "eventra/database/repository/conversation"
	vendorRepo "eventra/database/repository/vendor"

	"github.com/google/uuid"
)

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	repo     bookingRepo.BookingRepository
	vendors  vendorRepo.VendorRepository
	convRepo conversationRepo.ConversationRepository
	notifier notification.NotificationService
}

// NewDefaultBookingService wires the booking state machine.
func NewDefaultBookingService(
	repo bookingRepo.BookingRepository,
	vendors vendorRepo.VendorRepository,
	convRepo conversationRepo.ConversationRepository,
	notifier notification.NotificationService,
) (*DefaultBookingService, error) {
	if repo == nil || vendors == nil || convRepo == nil || notifier == nil {
		return nil, fmt.Errorf("booking service initialization error: nil dependency")
	}
	return &DefaultBookingService{
		repo:     repo,
		vendors:  vendors,
		convRepo: convRepo,
		notifier: notifier,
	}, nil
}

// CreateFromInquiry creates the booking and its conversation thread. A
// catalog package, when referenced, fixes the total price and both fees at
// creation time.
func (s *DefaultBookingService) CreateFromInquiry(ctx context.Context, identity models.Identity, req InquiryRequest) (*InquiryResult, error) {
	if identity.UserID == "" {
		return nil, fault.New(fault.Unauthenticated, "missing identity")
	}
	if identity.IsVendor() {
		return nil, fault.New(fault.Forbidden, "only customers create inquiries")
	}
	if req.VendorID == "" {
		return nil, fault.New(fault.InvalidInput, "vendorId is required")
	}

	vendor, err := s.vendors.GetByID(ctx, req.VendorID)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, fault.New(fault.NotFound, "vendor %s not found", req.VendorID)
	}

	b := &models.Booking{
		ID:           uuid.New().String(),
		VendorID:     vendor.ID,
		CustomerID:   identity.UserID,
		PackageID:    req.PackageID,
		Status:       models.BookingStatusNewInquiry,
		EventDate:    req.EventDate,
		EventType:    req.EventType,
		GuestCount:   req.GuestCount,
		VenueName:    req.VenueName,
		VenueAddress: req.VenueAddress,
		ContactName:  req.ContactName,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		Notes:        req.Notes,
	}

	if req.PackageID != "" {
		pkg, ok := vendor.PackageByID(req.PackageID)
		if !ok {
			return nil, fault.New(fault.InvalidInput, "package %s not in vendor catalog", req.PackageID)
		}
		price := pkg.Price
		b.TotalPrice = &price
		b.VendorFee, b.CustomerFee = Fees(price)
	}

	conv, err := s.repo.CreateFromInquiryTx(ctx, b)
	if err != nil {
		return nil, err
	}

	s.notifier.Dispatch(ctx, notification.Event{
		RecipientID: vendor.ID,
		Type:        models.NotificationNewInquiry,
		Title:       "New booking inquiry",
		Body:        "A customer sent you a new booking inquiry.",
		Link:        fmt.Sprintf("/bookings/%s", b.ID),
	})

	return &InquiryResult{Booking: b, Conversation: conv}, nil
}

// Get returns the booking, restricted to its two parties.
func (s *DefaultBookingService) Get(ctx context.Context, identity models.Identity, bookingID string) (*models.Booking, error) {
	return s.authorizedBooking(ctx, identity, bookingID)
}

// ListForParty returns the caller's bookings, newest first.
func (s *DefaultBookingService) ListForParty(ctx context.Context, identity models.Identity) ([]models.Booking, error) {
	if identity.UserID == "" {
		return nil, fault.New(fault.Unauthenticated, "missing identity")
	}
	return s.repo.ListByParty(ctx, identity.UserID, identity.Role)
}

// Confirm transitions the booking to confirmed and stamps confirmedAt.
func (s *DefaultBookingService) Confirm(ctx context.Context, identity models.Identity, bookingID string) (*models.Booking, error) {
	b, err := s.vendorBooking(ctx, identity, bookingID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	from := []models.BookingStatus{models.BookingStatusNewInquiry, models.BookingStatusPending}
	if err := s.transition(ctx, b, from, models.BookingStatusConfirmed, &now); err != nil {
		return nil, err
	}
	b.Status = models.BookingStatusConfirmed
	b.ConfirmedAt = &now

	s.notifier.Dispatch(ctx, notification.Event{
		RecipientID: b.CustomerID,
		Type:        models.NotificationBookingConfirmed,
		Title:       "Booking confirmed",
		Body:        "Your booking has been confirmed by the vendor.",
		Link:        fmt.Sprintf("/bookings/%s", b.ID),
	})
	return b, nil
}

// Cancel transitions the booking to cancelled.
func (s *DefaultBookingService) Cancel(ctx context.Context, identity models.Identity, bookingID string) (*models.Booking, error) {
	b, err := s.vendorBooking(ctx, identity, bookingID)
	if err != nil {
		return nil, err
	}

	from := []models.BookingStatus{
		models.BookingStatusNewInquiry,
		models.BookingStatusPending,
		models.BookingStatusConfirmed,
	}
	if err := s.transition(ctx, b, from, models.BookingStatusCancelled, nil); err != nil {
		return nil, err
	}
	b.Status = models.BookingStatusCancelled

	s.notifier.Dispatch(ctx, notification.Event{
		RecipientID: b.CustomerID,
		Type:        models.NotificationBookingCancelled,
		Title:       "Booking cancelled",
		Body:        "Your booking has been cancelled.",
		Link:        fmt.Sprintf("/bookings/%s", b.ID),
	})
	return b, nil
}

// Complete transitions a confirmed booking to completed.
func (s *DefaultBookingService) Complete(ctx context.Context, identity models.Identity, bookingID string) (*models.Booking, error) {
	b, err := s.vendorBooking(ctx, identity, bookingID)
	if err != nil {
		return nil, err
	}

	from := []models.BookingStatus{models.BookingStatusConfirmed}
	if err := s.transition(ctx, b, from, models.BookingStatusCompleted, nil); err != nil {
		return nil, err
	}
	b.Status = models.BookingStatusCompleted

	s.notifier.Dispatch(ctx, notification.Event{
		RecipientID: b.CustomerID,
		Type:        models.NotificationBookingCompleted,
		Title:       "Booking completed",
		Body:        "Your booking has been marked as completed.",
		Link:        fmt.Sprintf("/bookings/%s", b.ID),
	})
	return b, nil
}

// ProposeDate stages a proposed event date and posts it into the thread.
func (s *DefaultBookingService) ProposeDate(ctx context.Context, identity models.Identity, bookingID, proposedDate string) (*models.Booking, error) {
	b, err := s.vendorBooking(ctx, identity, bookingID)
	if err != nil {
		return nil, err
	}
	if proposedDate == "" {
		return nil, fault.New(fault.InvalidInput, "proposed date is required")
	}
	if b.Terminal() {
		return nil, fault.New(fault.InvalidState, "booking %s is %s", b.ID, b.Status)
	}
	if b.EventDate != "" {
		return nil, fault.New(fault.InvalidState, "booking %s already has an event date", b.ID)
	}

	conv, err := s.convRepo.Upsert(ctx, b.VendorID, b.CustomerID, b.ID)
	if err != nil {
		return nil, err
	}

	msg := &models.Message{
		ID:             uuid.New().String(),
		ConversationID: conv.ID,
		SenderID:       identity.UserID,
		Type:           models.MessageTypeDateProposal,
		BookingID:      b.ID,
		ProposedDate:   proposedDate,
	}
	if err := s.repo.ProposeDateTx(ctx, b.ID, proposedDate, msg); err != nil {
		if errors.Is(err, bookingRepo.ErrStateConflict) {
			return nil, fault.New(fault.InvalidState, "booking %s already has a date or a live proposal", b.ID)
		}
		return nil, err
	}
	b.ProposedDate = proposedDate

	s.notifier.Dispatch(ctx, notification.Event{
		RecipientID: b.CustomerID,
		Type:        models.NotificationDateProposed,
		Title:       "New date proposed",
		Body:        fmt.Sprintf("The vendor proposed %s for your event.", proposedDate),
		Link:        fmt.Sprintf("/bookings/%s", b.ID),
	})
	return b, nil
}

// AcceptDate promotes the live proposal into the booking's event date.
func (s *DefaultBookingService) AcceptDate(ctx context.Context, identity models.Identity, bookingID string) (*models.Booking, error) {
	b, err := s.customerBooking(ctx, identity, bookingID)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.AcceptProposedDate(ctx, b.ID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrStateConflict) {
			return nil, fault.New(fault.InvalidState, "booking %s has no live date proposal", b.ID)
		}
		return nil, err
	}

	s.notifier.Dispatch(ctx, notification.Event{
		RecipientID: updated.VendorID,
		Type:        models.NotificationDateAccepted,
		Title:       "Date accepted",
		Body:        fmt.Sprintf("The customer accepted %s as the event date.", updated.EventDate),
		Link:        fmt.Sprintf("/bookings/%s", updated.ID),
	})
	return updated, nil
}

// DeclineDate clears the live proposal. No notification is emitted.
func (s *DefaultBookingService) DeclineDate(ctx context.Context, identity models.Identity, bookingID string) (*models.Booking, error) {
	b, err := s.customerBooking(ctx, identity, bookingID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.DeclineProposedDate(ctx, b.ID); err != nil {
		if errors.Is(err, bookingRepo.ErrStateConflict) {
			return nil, fault.New(fault.InvalidState, "booking %s has no live date proposal", b.ID)
		}
		return nil, err
	}
	b.ProposedDate = ""
	return b, nil
}

// transition runs the guarded status update and maps a lost guard onto an
// InvalidState fault.
func (s *DefaultBookingService) transition(ctx context.Context, b *models.Booking, from []models.BookingStatus, to models.BookingStatus, confirmedAt *time.Time) error {
	err := s.repo.UpdateStatus(ctx, b.ID, from, to, confirmedAt)
	if errors.Is(err, bookingRepo.ErrStateConflict) {
		return fault.New(fault.InvalidState, "booking %s cannot move from %s to %s", b.ID, b.Status, to)
	}
	return err
}

func (s *DefaultBookingService) authorizedBooking(ctx context.Context, identity models.Identity, bookingID string) (*models.Booking, error) {
	if identity.UserID == "" {
		return nil, fault.New(fault.Unauthenticated, "missing identity")
	}
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, fault.New(fault.NotFound, "booking %s not found", bookingID)
	}
	if b.VendorID != identity.UserID && b.CustomerID != identity.UserID {
		return nil, fault.New(fault.Forbidden, "not a party of this booking")
	}
	return b, nil
}

func (s *DefaultBookingService) vendorBooking(ctx context.Context, identity models.Identity, bookingID string) (*models.Booking, error) {
	b, err := s.authorizedBooking(ctx, identity, bookingID)
	if err != nil {
		return nil, err
	}
	if b.VendorID != identity.UserID {
		return nil, fault.New(fault.Forbidden, "only the vendor may perform this action")
	}
	return b, nil
}

func (s *DefaultBookingService) customerBooking(ctx context.Context, identity models.Identity, bookingID string) (*models.Booking, error) {
	b, err := s.authorizedBooking(ctx, identity, bookingID)
	if err != nil {
		return nil, err
	}
	if b.CustomerID != identity.UserID {
		return nil, fault.New(fault.Forbidden, "only the customer may perform this action")
	}
	return b, nil
}
