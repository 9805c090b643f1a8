package notify

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
	"github.com/wolfman30/doorquote/pkg/logging"
)

// ResendSender sends emails through the Resend API.
type ResendSender struct {
	client *resend.Client
	from   string
	logger *logging.Logger
}

// ResendConfig holds configuration for Resend.
type ResendConfig struct {
	APIKey string
	From   string // "Name <addr>"
}

// NewResendSender creates a Resend sender. It returns nil without an API key.
func NewResendSender(cfg ResendConfig, logger *logging.Logger) *ResendSender {
	if cfg.APIKey == "" {
		return nil
	}
	return NewResendSenderWithClient(resend.NewClient(cfg.APIKey), cfg, logger)
}

// NewResendSenderWithClient wires a preconfigured client, e.g. one pointed at a test server.
func NewResendSenderWithClient(client *resend.Client, cfg ResendConfig, logger *logging.Logger) *ResendSender {
	if logger == nil {
		logger = logging.Default()
	}
	return &ResendSender{
		client: client,
		from:   cfg.From,
		logger: logger,
	}
}

// Send sends an email via Resend.
func (s *ResendSender) Send(ctx context.Context, msg EmailMessage) error {
	if s.client == nil {
		return fmt.Errorf("notify: resend client not configured")
	}

	from := s.from
	if msg.From != "" {
		from = msg.From
	}
	to := msg.To
	if msg.ToName != "" {
		to = fmt.Sprintf("%s <%s>", msg.ToName, msg.To)
	}

	params := &resend.SendEmailRequest{
		From:    from,
		To:      []string{to},
		Subject: msg.Subject,
		Text:    msg.Body,
		Html:    msg.HTML,
	}
	for _, att := range msg.Attachments {
		params.Attachments = append(params.Attachments, &resend.Attachment{
			Content:     att.Content,
			Filename:    att.Filename,
			ContentType: att.ContentType,
		})
	}

	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		s.logger.Error("resend send failed", "error", err)
		return fmt.Errorf("notify: resend send failed: %w", err)
	}

	s.logger.Info("email sent via resend", "subject", msg.Subject, "attachments", len(msg.Attachments), "message_id", sent.Id)
	return nil
}

var _ EmailSender = (*ResendSender)(nil)
