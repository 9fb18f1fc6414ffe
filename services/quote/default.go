package quote

import (
	"context"
	"errors"
	"fmt"

	"eventra/models"
	"eventra/services/booking"
	"eventra/services/fault"
	"eventra/services/notification"

	conversationRepo "eventra/database/repository/conversation"
	quoteRepo "eventra/database/repository/quote"

	"github.com/google/uuid"
)

// DefaultQuoteService is the production implementation.
type DefaultQuoteService struct {
	repo     quoteRepo.QuoteRepository
	convRepo conversationRepo.ConversationRepository
	notifier notification.NotificationService
}

// NewDefaultQuoteService wires the quote negotiation engine.
func NewDefaultQuoteService(
	repo quoteRepo.QuoteRepository,
	convRepo conversationRepo.ConversationRepository,
	notifier notification.NotificationService,
) (*DefaultQuoteService, error) {
	if repo == nil || convRepo == nil || notifier == nil {
		return nil, fmt.Errorf("quote service initialization error: nil dependency")
	}
	return &DefaultQuoteService{
		repo:     repo,
		convRepo: convRepo,
		notifier: notifier,
	}, nil
}

// Send creates a pending quote and its message in the thread.
func (s *DefaultQuoteService) Send(ctx context.Context, identity models.Identity, conversationID string, req SendRequest) (*models.Quote, error) {
	if identity.UserID == "" {
		return nil, fault.New(fault.Unauthenticated, "missing identity")
	}

	conv, err := s.convRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, fault.New(fault.NotFound, "conversation %s not found", conversationID)
	}
	if conv.VendorID != identity.UserID {
		return nil, fault.New(fault.Forbidden, "only the conversation's vendor may send quotes")
	}
	if req.Title == "" {
		return nil, fault.New(fault.InvalidInput, "quote title is required")
	}
	if req.Price <= 0 {
		return nil, fault.New(fault.InvalidInput, "quote price must be positive")
	}

	q := &models.Quote{
		ID:             uuid.New().String(),
		ConversationID: conv.ID,
		VendorID:       conv.VendorID,
		CustomerID:     conv.CustomerID,
		Title:          req.Title,
		Description:    req.Description,
		Price:          req.Price,
		Features:       req.Features,
		EventDate:      req.EventDate,
		Status:         models.QuoteStatusPending,
	}
	msg := &models.Message{
		ID:             uuid.New().String(),
		ConversationID: conv.ID,
		SenderID:       identity.UserID,
		Type:           models.MessageTypeQuote,
		QuoteID:        q.ID,
		Text:           req.Title,
	}
	if err := s.repo.CreateTx(ctx, q, msg); err != nil {
		return nil, err
	}

	s.notifier.Dispatch(ctx, notification.Event{
		RecipientID: conv.CustomerID,
		Type:        models.NotificationQuoteReceived,
		Title:       "New quote received",
		Body:        fmt.Sprintf("You received a quote: %s.", q.Title),
		Link:        fmt.Sprintf("/conversations/%s", conv.ID),
	})
	return q, nil
}

// Accept settles a pending quote and creates the booking it priced.
func (s *DefaultQuoteService) Accept(ctx context.Context, identity models.Identity, quoteID string) (*AcceptResult, error) {
	q, err := s.customerQuote(ctx, identity, quoteID)
	if err != nil {
		return nil, err
	}
	if q.Terminal() {
		return nil, fault.New(fault.InvalidState, "quote %s is already %s", q.ID, q.Status)
	}

	price := q.Price
	vendorFee, customerFee := booking.Fees(price)
	b := &models.Booking{
		ID:          uuid.New().String(),
		VendorID:    q.VendorID,
		CustomerID:  q.CustomerID,
		QuoteID:     q.ID,
		Status:      models.BookingStatusPending,
		EventDate:   q.EventDate,
		TotalPrice:  &price,
		VendorFee:   vendorFee,
		CustomerFee: customerFee,
	}
	msg := &models.Message{
		ID:             uuid.New().String(),
		ConversationID: q.ConversationID,
		SenderID:       identity.UserID,
		Type:           models.MessageTypeText,
		Text:           "Quote accepted. Booking created.",
	}

	if err := s.repo.AcceptTx(ctx, q.ID, b, msg); err != nil {
		if errors.Is(err, quoteRepo.ErrNotPending) {
			return nil, fault.New(fault.InvalidState, "quote %s is no longer pending", q.ID)
		}
		return nil, err
	}
	q.Status = models.QuoteStatusAccepted
	q.BookingID = b.ID

	s.notifier.Dispatch(ctx, notification.Event{
		RecipientID: q.VendorID,
		Type:        models.NotificationQuoteAccepted,
		Title:       "Quote accepted",
		Body:        fmt.Sprintf("Your quote %q was accepted. A booking was created.", q.Title),
		Link:        fmt.Sprintf("/bookings/%s", b.ID),
	})
	return &AcceptResult{Quote: q, Booking: b}, nil
}

// Decline settles a pending quote without creating a booking.
func (s *DefaultQuoteService) Decline(ctx context.Context, identity models.Identity, quoteID string) (*models.Quote, error) {
	q, err := s.customerQuote(ctx, identity, quoteID)
	if err != nil {
		return nil, err
	}
	if q.Terminal() {
		return nil, fault.New(fault.InvalidState, "quote %s is already %s", q.ID, q.Status)
	}

	msg := &models.Message{
		ID:             uuid.New().String(),
		ConversationID: q.ConversationID,
		SenderID:       identity.UserID,
		Type:           models.MessageTypeText,
		Text:           "Quote declined.",
	}
	if err := s.repo.DeclineTx(ctx, q.ID, msg); err != nil {
		if errors.Is(err, quoteRepo.ErrNotPending) {
			return nil, fault.New(fault.InvalidState, "quote %s is no longer pending", q.ID)
		}
		return nil, err
	}
	q.Status = models.QuoteStatusDeclined

	s.notifier.Dispatch(ctx, notification.Event{
		RecipientID: q.VendorID,
		Type:        models.NotificationQuoteDeclined,
		Title:       "Quote declined",
		Body:        fmt.Sprintf("Your quote %q was declined.", q.Title),
		Link:        fmt.Sprintf("/conversations/%s", q.ConversationID),
	})
	return q, nil
}

// customerQuote loads the quote and checks that the caller is its customer.
func (s *DefaultQuoteService) customerQuote(ctx context.Context, identity models.Identity, quoteID string) (*models.Quote, error) {
	if identity.UserID == "" {
		return nil, fault.New(fault.Unauthenticated, "missing identity")
	}
	q, err := s.repo.GetByID(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, fault.New(fault.NotFound, "quote %s not found", quoteID)
	}
	if q.CustomerID != identity.UserID {
		return nil, fault.New(fault.Forbidden, "only the quote's customer may settle it")
	}
	return q, nil
}
