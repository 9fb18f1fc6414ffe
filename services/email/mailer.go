package email

import (
	"context"
	"fmt"
	"strings"

	"eventra/config"
	"eventra/models"
)

// Mailer renders notification payloads into plain-text emails and hands them
// to a Sender.
type Mailer struct {
	sender  Sender
	baseURL string
}

// NewMailer creates a Mailer over the given sender.
func NewMailer(sender Sender) *Mailer {
	return &Mailer{
		sender:  sender,
		baseURL: strings.TrimRight(config.AppConfig.AppBaseURL, "/"),
	}
}

// Deliver renders and sends the email for one notification payload.
func (m *Mailer) Deliver(ctx context.Context, p models.EmailDeliveryPayload) error {
	if p.Email == "" {
		return fmt.Errorf("no email address for user %s", p.UserID)
	}

	var b strings.Builder
	name := p.Name
	if name == "" {
		name = "there"
	}
	fmt.Fprintf(&b, "Hi %s,\r\n\r\n", name)
	fmt.Fprintf(&b, "%s\r\n", p.Body)
	if p.Link != "" {
		fmt.Fprintf(&b, "\r\nView it here: %s%s\r\n", m.baseURL, p.Link)
	}
	b.WriteString("\r\n— The Eventra Team\r\n")

	return m.sender.Send(ctx, p.Email, p.Title, []byte(b.String()))
}
