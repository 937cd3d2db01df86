package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/cognitiondigest/digest-backend/pkg/config"
	"github.com/cognitiondigest/digest-backend/pkg/errors"
	"github.com/cognitiondigest/digest-backend/pkg/logger"
)

// DigestEmail carries everything a digest notification needs to render.
type DigestEmail struct {
	Title     string
	KeyPoints []string
	WordCount int
	FullText  string
	Source    string
	VideoID   string
	ChannelID string
	URL       string
	Language  string
	ReportID  string
}

// Mailer sends digest notifications to report recipients.
type Mailer interface {
	SendDigest(ctx context.Context, to string, data DigestEmail) error
	SendTest(ctx context.Context, to string) error
}

// sender is the minimal surface of the SendGrid client, kept narrow for tests.
type sender interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

// SendGridMailer delivers digest emails through the SendGrid API.
type SendGridMailer struct {
	cfg    config.SendgridConfig
	log    *logger.Logger
	client sender
}

// NewSendGridMailer builds a mailer from config. The API key may be empty;
// sends will then fail with a dependency error instead of panicking.
func NewSendGridMailer(cfg config.SendgridConfig, log *logger.Logger) *SendGridMailer {
	return &SendGridMailer{
		cfg:    cfg,
		log:    log,
		client: sendgrid.NewSendClient(cfg.APIKey),
	}
}

// SendDigest renders and sends the digest summary email.
func (m *SendGridMailer) SendDigest(ctx context.Context, to string, data DigestEmail) error {
	if m.cfg.APIKey == "" {
		m.log.Warn(ctx, "sendgrid api key not configured, skipping email send")
		return errors.New(errors.CodeDependency, "sendgrid is not configured")
	}
	if to == "" {
		return errors.New(errors.CodeValidation, "recipient email is required")
	}

	from := mail.NewEmail(m.cfg.FromName, m.cfg.FromEmail)
	recipient := mail.NewEmail("", to)
	subject := fmt.Sprintf("📊 Digest: %s", data.Title)
	message := mail.NewSingleEmail(from, subject, recipient, plainTextBody(data), htmlBody(data))

	resp, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		return errors.Wrap(errors.CodeDependency, err, "sendgrid send failed")
	}
	if resp.StatusCode >= 400 {
		ctx = m.log.WithFields(ctx, map[string]any{
			"status_code": resp.StatusCode,
			"body":        resp.Body,
		})
		m.log.Error(ctx, "sendgrid rejected message", nil)
		return errors.New(errors.CodeDependency, fmt.Sprintf("sendgrid rejected message with status %d", resp.StatusCode))
	}

	m.log.Info(m.log.WithReportID(ctx, data.ReportID), "digest email sent")
	return nil
}

// SendTest sends a canned digest so operators can verify the integration.
func (m *SendGridMailer) SendTest(ctx context.Context, to string) error {
	return m.SendDigest(ctx, to, TestEmail())
}

// TestEmail is the fixture payload used by the test-email endpoint.
func TestEmail() DigestEmail {
	return DigestEmail{
		Title: "Test Email - AI Agent Revolution",
		KeyPoints: []string{
			"This is a test email from Cognition Digest",
			"SendGrid integration is working correctly",
			"You should receive beautifully formatted emails",
		},
		WordCount: 42,
		FullText:  "This is a test email to verify that SendGrid integration is working properly. If you receive this email, your email service is configured correctly!",
		Source:    "test",
		Language:  "en",
		ReportID:  fmt.Sprintf("test_%d", time.Now().UnixMilli()),
	}
}
