package models

import "time"

// MessageType tags which of a message's optional fields are meaningful.
type MessageType string

const (
	MessageTypeText         MessageType = "text"
	MessageTypeAttachment   MessageType = "attachment"
	MessageTypeQuote        MessageType = "quote"
	MessageTypeDateProposal MessageType = "date_proposal"
)

// Message is one entry in a conversation's append-only log. Messages are
// immutable once written and ordered by creation time ascending.
type Message struct {
	ID             string      `bson:"id" json:"id"`
	ConversationID string      `bson:"conversation_id" json:"conversationId"`
	SenderID       string      `bson:"sender_id" json:"senderId"`
	Type           MessageType `bson:"type" json:"type"`
	Text           string      `bson:"text,omitempty" json:"text,omitempty"`

	// Attachment fields, set when Type == attachment.
	AttachmentURL  string `bson:"attachment_url,omitempty" json:"attachmentUrl,omitempty"`
	AttachmentName string `bson:"attachment_name,omitempty" json:"attachmentName,omitempty"`
	AttachmentMime string `bson:"attachment_mime,omitempty" json:"attachmentMime,omitempty"`

	// Quote back-reference, set when Type == quote. The full quote is
	// hydrated onto the message when listing.
	QuoteID string `bson:"quote_id,omitempty" json:"quoteId,omitempty"`
	Quote   *Quote `bson:"-" json:"quote,omitempty"`

	// Date-proposal payload, set when Type == date_proposal.
	BookingID    string `bson:"booking_id,omitempty" json:"bookingId,omitempty"`
	ProposedDate string `bson:"proposed_date,omitempty" json:"proposedDate,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

// MessageContent is the tagged payload of a message to be appended. Exactly
// one constructor below should produce it; the zero value is invalid.
type MessageContent struct {
	Type           MessageType
	Text           string
	AttachmentURL  string
	AttachmentName string
	AttachmentMime string
	QuoteID        string
	BookingID      string
	ProposedDate   string
}

// TextContent builds a plain text payload.
func TextContent(text string) MessageContent {
	return MessageContent{Type: MessageTypeText, Text: text}
}

// AttachmentContent builds an attachment payload with optional caption text.
func AttachmentContent(text, url, name, mime string) MessageContent {
	return MessageContent{
		Type:           MessageTypeAttachment,
		Text:           text,
		AttachmentURL:  url,
		AttachmentName: name,
		AttachmentMime: mime,
	}
}

// QuoteContent builds a quote-reference payload.
func QuoteContent(quoteID, text string) MessageContent {
	return MessageContent{Type: MessageTypeQuote, Text: text, QuoteID: quoteID}
}

// DateProposalContent builds a date-proposal payload.
func DateProposalContent(bookingID, proposedDate string) MessageContent {
	return MessageContent{Type: MessageTypeDateProposal, BookingID: bookingID, ProposedDate: proposedDate}
}

// Empty reports whether the payload carries nothing to display: no text, no
// attachment and no quote reference. Empty payloads are rejected on append.
func (mc MessageContent) Empty() bool {
	switch mc.Type {
	case MessageTypeAttachment:
		return mc.AttachmentURL == ""
	case MessageTypeQuote:
		return mc.QuoteID == ""
	case MessageTypeDateProposal:
		return mc.BookingID == "" || mc.ProposedDate == ""
	default:
		return mc.Text == ""
	}
}
