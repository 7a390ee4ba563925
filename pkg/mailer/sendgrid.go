package mailer

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/noah-isme/bagspec-api/pkg/config"
)

// SendGridSender delivers mail through the SendGrid v3 API.
type SendGridSender struct {
	apiKey   string
	from     *sgmail.Email
	endpoint string
}

// NewSendGridSender constructs a SendGridSender from mail config.
func NewSendGridSender(cfg config.MailConfig) *SendGridSender {
	return &SendGridSender{
		apiKey: cfg.SendGridAPIKey,
		from:   sgmail.NewEmail(cfg.FromName, cfg.From),
	}
}

// Send implements Sender.
func (s *SendGridSender) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	m := sgmail.NewV3Mail()
	m.SetFrom(s.from)
	m.Subject = msg.Subject
	p := sgmail.NewPersonalization()
	p.AddTos(sgmail.NewEmail("", msg.To))
	m.AddPersonalizations(p)
	// text/plain has to precede text/html in the content list.
	if msg.Text != "" {
		m.AddContent(sgmail.NewContent("text/plain", msg.Text))
	}
	m.AddContent(sgmail.NewContent("text/html", msg.HTML))

	client := sendgrid.NewSendClient(s.apiKey)
	if s.endpoint != "" {
		client.BaseURL = s.endpoint
	}
	resp, err := client.SendWithContext(ctx, m)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send failed: status=%d body=%s", resp.StatusCode, resp.Body)
	}
	return nil
}
