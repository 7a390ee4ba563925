// Package mailer delivers HTML email through a configurable transport.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/bagspec-api/pkg/config"
)

// Message is a single outbound HTML email.
type Message struct {
	To      string
	Subject string
	HTML    string
	// Text is an optional plain-text alternative.
	Text string
}

// Sender delivers a message or reports why it could not.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// ErrInvalidMessage is returned before any network I/O when a message is incomplete.
var ErrInvalidMessage = errors.New("invalid mail message")

// Validate checks the fields every transport needs.
func (m Message) Validate() error {
	switch {
	case strings.TrimSpace(m.To) == "":
		return fmt.Errorf("%w: recipient is empty", ErrInvalidMessage)
	case strings.ContainsAny(m.To, "\r\n"):
		return fmt.Errorf("%w: recipient contains line breaks", ErrInvalidMessage)
	case strings.TrimSpace(m.Subject) == "":
		return fmt.Errorf("%w: subject is empty", ErrInvalidMessage)
	case strings.TrimSpace(m.HTML) == "":
		return fmt.Errorf("%w: body is empty", ErrInvalidMessage)
	}
	return nil
}

// New builds the sender selected by cfg.Driver.
func New(cfg config.MailConfig, logger *zap.Logger) (Sender, error) {
	switch cfg.Driver {
	case config.MailDriverSMTP, "":
		if cfg.SMTPHost == "" || cfg.From == "" {
			return nil, fmt.Errorf("smtp driver requires SMTP_HOST and MAIL_FROM")
		}
		return NewSMTPSender(cfg), nil
	case config.MailDriverSendGrid:
		if cfg.SendGridAPIKey == "" || cfg.From == "" {
			return nil, fmt.Errorf("sendgrid driver requires SENDGRID_API_KEY and MAIL_FROM")
		}
		return NewSendGridSender(cfg), nil
	case config.MailDriverLog:
		return NewLogSender(logger), nil
	default:
		return nil, fmt.Errorf("unknown mail driver %q", cfg.Driver)
	}
}

// LogSender writes messages to the log instead of delivering them.
type LogSender struct {
	logger *zap.Logger
}

// NewLogSender constructs a LogSender.
func NewLogSender(logger *zap.Logger) *LogSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSender{logger: logger}
}

// Send implements Sender.
func (s *LogSender) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	s.logger.Info("mail not delivered (log driver)",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.Int("html_bytes", len(msg.HTML)),
	)
	return nil
}
