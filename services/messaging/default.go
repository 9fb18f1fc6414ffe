package messaging

import (
	"context"
	"fmt"

	"eventra/models"
	"eventra/services/fault"
	"eventra/services/notification"

	conversationRepo "eventra/database/repository/conversation"
	messageRepo "eventra/database/repository/message"
	quoteRepo "eventra/database/repository/quote"

	"github.com/google/uuid"
)

// DefaultMessagingService is the production implementation.
type DefaultMessagingService struct {
	convRepo  conversationRepo.ConversationRepository
	msgRepo   messageRepo.MessageRepository
	quoteRepo quoteRepo.QuoteRepository
	notifier  notification.NotificationService
}

// NewDefaultMessagingService wires the messaging core.
func NewDefaultMessagingService(
	convRepo conversationRepo.ConversationRepository,
	msgRepo messageRepo.MessageRepository,
	qRepo quoteRepo.QuoteRepository,
	notifier notification.NotificationService,
) (*DefaultMessagingService, error) {
	if convRepo == nil || msgRepo == nil || qRepo == nil || notifier == nil {
		return nil, fmt.Errorf("messaging service initialization error: nil dependency")
	}
	return &DefaultMessagingService{
		convRepo:  convRepo,
		msgRepo:   msgRepo,
		quoteRepo: qRepo,
		notifier:  notifier,
	}, nil
}

// GetOrCreateConversation returns the pair's single thread, creating it on
// first contact.
func (s *DefaultMessagingService) GetOrCreateConversation(ctx context.Context, vendorID, customerID, bookingID string) (*models.Conversation, error) {
	if vendorID == "" || customerID == "" {
		return nil, fault.New(fault.InvalidInput, "vendor and customer ids are required")
	}
	return s.convRepo.Upsert(ctx, vendorID, customerID, bookingID)
}

// SendMessage appends a message to the thread and notifies the other side.
func (s *DefaultMessagingService) SendMessage(ctx context.Context, identity models.Identity, conversationID string, content models.MessageContent) (*models.Message, error) {
	conv, err := s.authorizedConversation(ctx, identity, conversationID)
	if err != nil {
		return nil, err
	}
	if content.Type == "" {
		content.Type = models.MessageTypeText
	}
	if content.Empty() {
		return nil, fault.New(fault.InvalidInput, "message content is empty")
	}

	msg := &models.Message{
		ID:             uuid.New().String(),
		ConversationID: conv.ID,
		SenderID:       identity.UserID,
		Type:           content.Type,
		Text:           content.Text,
		AttachmentURL:  content.AttachmentURL,
		AttachmentName: content.AttachmentName,
		AttachmentMime: content.AttachmentMime,
		QuoteID:        content.QuoteID,
		BookingID:      content.BookingID,
		ProposedDate:   content.ProposedDate,
	}
	if err := s.msgRepo.AppendTx(ctx, msg, identity.IsVendor()); err != nil {
		return nil, err
	}

	recipient := conv.CustomerID
	if !identity.IsVendor() {
		recipient = conv.VendorID
	}
	s.notifier.Dispatch(ctx, notification.Event{
		RecipientID: recipient,
		Type:        models.NotificationMessageReceived,
		Title:       "New message",
		Body:        "You have a new message in one of your conversations.",
		Link:        fmt.Sprintf("/conversations/%s", conv.ID),
	})

	return msg, nil
}

// ListMessages returns the thread, hydrates quote references, and clears the
// caller's unread counter. Re-reading an already-read thread is a no-op.
func (s *DefaultMessagingService) ListMessages(ctx context.Context, identity models.Identity, conversationID string) ([]models.Message, error) {
	conv, err := s.authorizedConversation(ctx, identity, conversationID)
	if err != nil {
		return nil, err
	}

	msgs, err := s.msgRepo.ListByConversation(ctx, conv.ID)
	if err != nil {
		return nil, err
	}
	if err := s.hydrateQuotes(ctx, conv.ID, msgs); err != nil {
		return nil, err
	}

	if conv.UnreadFor(identity.Role) > 0 {
		if err := s.convRepo.MarkRead(ctx, conv.ID, identity.Role); err != nil {
			return nil, err
		}
	}
	return msgs, nil
}

// ListConversations returns the caller's threads, most recent first.
func (s *DefaultMessagingService) ListConversations(ctx context.Context, identity models.Identity) ([]models.Conversation, error) {
	if identity.UserID == "" {
		return nil, fault.New(fault.Unauthenticated, "missing identity")
	}
	return s.convRepo.ListByParty(ctx, identity.UserID, identity.Role)
}

// UnreadTotal sums the caller's unread counters across all threads.
func (s *DefaultMessagingService) UnreadTotal(ctx context.Context, identity models.Identity) (int, error) {
	if identity.UserID == "" {
		return 0, fault.New(fault.Unauthenticated, "missing identity")
	}
	return s.convRepo.UnreadTotal(ctx, identity.UserID, identity.Role)
}

// authorizedConversation loads the thread and checks membership.
func (s *DefaultMessagingService) authorizedConversation(ctx context.Context, identity models.Identity, conversationID string) (*models.Conversation, error) {
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
	if !conv.HasParty(identity.UserID) {
		return nil, fault.New(fault.Forbidden, "not a participant of this conversation")
	}
	return conv, nil
}

// hydrateQuotes attaches the full quote documents onto type=quote messages.
func (s *DefaultMessagingService) hydrateQuotes(ctx context.Context, conversationID string, msgs []models.Message) error {
	needed := false
	for i := range msgs {
		if msgs[i].Type == models.MessageTypeQuote && msgs[i].QuoteID != "" {
			needed = true
			break
		}
	}
	if !needed {
		return nil
	}

	quotes, err := s.quoteRepo.ListByConversation(ctx, conversationID)
	if err != nil {
		return err
	}
	byID := make(map[string]*models.Quote, len(quotes))
	for i := range quotes {
		byID[quotes[i].ID] = &quotes[i]
	}
	for i := range msgs {
		if msgs[i].Type == models.MessageTypeQuote {
			msgs[i].Quote = byID[msgs[i].QuoteID]
		}
	}
	return nil
}
