package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/noah-isme/bagspec-api/internal/models"
	"github.com/noah-isme/bagspec-api/internal/view"
	"github.com/noah-isme/bagspec-api/pkg/jobs"
	"github.com/noah-isme/bagspec-api/pkg/mailer"
)

type emailRenderer interface {
	Render(name string, data interface{}) (string, error)
}

type jobQueue interface {
	Enqueue(job jobs.Job) error
}

// NotificationConfig addresses outbound email.
type NotificationConfig struct {
	AdminAddress   string
	ContactAddress string
	SubmissionsURL string
}

// NotificationService renders and delivers workflow emails. Invites are
// always sent inline; submission notices go through the queue when one is set.
type NotificationService struct {
	sender   mailer.Sender
	renderer emailRenderer
	queue    jobQueue
	metrics  *MetricsService
	logger   *zap.Logger
	cfg      NotificationConfig
}

// NewNotificationService constructs a notification service.
func NewNotificationService(sender mailer.Sender, renderer emailRenderer, cfg NotificationConfig, metrics *MetricsService, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{sender: sender, renderer: renderer, cfg: cfg, metrics: metrics, logger: logger}
}

// UseQueue routes submission notices through q.
func (s *NotificationService) UseQueue(q jobQueue) {
	s.queue = q
}

// SendInvite emails the form link to the pending record's recipient.
func (s *NotificationService) SendInvite(ctx context.Context, pending *models.Submission, formURL string) error {
	data := view.InviteEmail{
		FormURL:      formURL,
		PONumber:     models.StringValue(pending.PONumber),
		AdminSize:    models.StringValue(pending.AdminSize),
		ContactEmail: s.cfg.ContactAddress,
	}
	if pending.AdminQuantity != nil {
		data.AdminQuantity = *pending.AdminQuantity
	}
	html, err := s.renderer.Render(view.EmailInvite, data)
	if err != nil {
		return err
	}
	msg := mailer.Message{To: pending.RecipientEmail, Subject: "🔧 Filter Bag Specification Request", HTML: html}
	return s.deliver(ctx, EmailKindInvite, msg)
}

// NotifySubmission sends the admin summary and the client confirmation.
// Failures are logged and never returned.
func (s *NotificationService) NotifySubmission(ctx context.Context, finalized *models.Submission, formURL string) {
	data := view.SubmissionEmail{
		Submission:     finalized,
		BagCount:       1,
		FormURL:        formURL,
		SubmissionsURL: s.cfg.SubmissionsURL,
	}

	if s.cfg.AdminAddress != "" {
		clientName := models.StringValue(finalized.ClientName)
		if clientName == "" {
			clientName = "Client"
		}
		subject := fmt.Sprintf("✅ Form Submitted - %s (1 bag)", clientName)
		s.dispatch(ctx, EmailKindAdminNotice, s.cfg.AdminAddress, subject, view.EmailAdminNotification, data)
	} else {
		s.logger.Warn("admin notification skipped: no admin address configured", zap.String("submission_id", finalized.ID))
	}

	if to := ConfirmationRecipient(finalized); to != "" {
		s.dispatch(ctx, EmailKindConfirmation, to, "✅ Your Filter Bag Submission Details (1 Bag)", view.EmailClientConfirmation, data)
	} else {
		s.logger.Info("client confirmation skipped: no client address", zap.String("submission_id", finalized.ID))
	}
}

// ConfirmationRecipient picks the invite recipient, or the address typed by
// the client when the link was generated without one.
func ConfirmationRecipient(s *models.Submission) string {
	if s.RecipientEmail != "" && !s.IsDirectLink() {
		return s.RecipientEmail
	}
	return models.StringValue(s.ClientEmail)
}

func (s *NotificationService) dispatch(ctx context.Context, kind, to, subject, tmpl string, data interface{}) {
	html, err := s.renderer.Render(tmpl, data)
	if err != nil {
		s.logger.Error("render notification failed", zap.String("kind", kind), zap.Error(err))
		return
	}
	msg := mailer.Message{To: to, Subject: subject, HTML: html}

	if s.queue != nil {
		err := s.queue.Enqueue(jobs.Job{Type: kind, Payload: msg})
		if err == nil {
			return
		}
		s.logger.Warn("enqueue notification failed, sending inline", zap.String("kind", kind), zap.Error(err))
	}
	_ = s.deliver(ctx, kind, msg)
}

// HandleJob is the queue handler for queued notices.
func (s *NotificationService) HandleJob(ctx context.Context, job jobs.Job) error {
	msg, ok := job.Payload.(mailer.Message)
	if !ok {
		return fmt.Errorf("unexpected payload %T for job %s", job.Payload, job.Type)
	}
	err := s.deliver(ctx, job.Type, msg)
	if errors.Is(err, mailer.ErrInvalidMessage) {
		// retrying cannot fix a malformed message
		return nil
	}
	return err
}

func (s *NotificationService) deliver(ctx context.Context, kind string, msg mailer.Message) error {
	err := s.sender.Send(ctx, msg)
	s.metrics.RecordEmail(kind, err)
	if err != nil {
		s.logger.Error("email delivery failed", zap.String("kind", kind), zap.String("to", msg.To), zap.Error(err))
		return err
	}
	s.logger.Info("email sent", zap.String("kind", kind), zap.String("to", msg.To))
	return nil
}
