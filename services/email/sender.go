package email

import (
	"context"
	"fmt"
	"net/smtp"

	"eventra/config"
	"eventra/utils"

	"go.uber.org/zap"
)

// Sender delivers one fully rendered email.
type Sender interface {
	Send(ctx context.Context, to, subject string, body []byte) error
}

// SMTPSender implements Sender over plain SMTP.
type SMTPSender struct {
	auth smtp.Auth
	addr string
	from string
}

// NewSender returns an SMTP sender when an SMTP host is configured, and a
// logging sender otherwise so local environments still see outbound mail.
func NewSender() Sender {
	cfg := config.AppConfig
	if cfg.SMTPHost == "" {
		utils.GetLogger().Warn("SMTP host not configured, falling back to logging email sender")
		return &LoggingSender{}
	}

	auth := smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPHost)
	return &SMTPSender{
		auth: auth,
		addr: fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
		from: cfg.SMTPFrom,
	}
}

// Send delivers the message via smtp.SendMail.
func (s *SMTPSender) Send(ctx context.Context, to, subject string, body []byte) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"utf-8\"\r\n\r\n%s", s.from, to, subject, body)
	if err := smtp.SendMail(s.addr, s.auth, s.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("smtp send to %s failed: %w", to, err)
	}
	utils.GetLogger().Info("email sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}

// LoggingSender logs the email instead of sending it.
type LoggingSender struct{}

// Send logs the email details.
func (s *LoggingSender) Send(ctx context.Context, to, subject string, body []byte) error {
	utils.GetLogger().Info("email (logged, not sent)",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.ByteString("body", body),
	)
	return nil
}
