package leads

import (
	"context"
	"errors"
	"time"

	"github.com/wolfman30/doorquote/internal/notify"
	"github.com/wolfman30/doorquote/internal/observability/metrics"
	"github.com/wolfman30/doorquote/pkg/logging"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var leadsTracer = otel.Tracer("doorquote.internal.leads")

// ServiceConfig configures the submission pipeline.
type ServiceConfig struct {
	To       string // destination mailbox; empty is a configuration error
	From     string
	Locale   string
	Provider string // provider name for metrics and logs
	Policy   AttachmentPolicy
	Catalog  *Catalog
}

// Service runs one submission through validation, normalization,
// attachment filtering, formatting and delivery.
type Service struct {
	sender     notify.EmailSender
	validator  *Validator
	normalizer *Normalizer
	formatter  *Formatter
	policy     AttachmentPolicy
	to         string
	from       string
	provider   string
	metrics    *metrics.LeadMetrics
	logger     *logging.Logger
}

// NewService creates the pipeline. metrics may be nil.
func NewService(sender notify.EmailSender, cfg ServiceConfig, m *metrics.LeadMetrics, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	catalog := cfg.Catalog
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	provider := cfg.Provider
	if provider == "" {
		provider = "unknown"
	}
	return &Service{
		sender:     sender,
		validator:  NewValidator(catalog),
		normalizer: NewNormalizer(catalog),
		formatter:  NewFormatter(catalog, cfg.Locale),
		policy:     cfg.Policy.withDefaults(),
		to:         cfg.To,
		from:       cfg.From,
		provider:   provider,
		metrics:    m,
		logger:     logger,
	}
}

// Submit validates and delivers one lead. Errors are *ValidationError,
// *AttachmentRejectedError, ErrMissingDestination, *DeliveryError, or an
// unclassified read failure.
func (s *Service) Submit(ctx context.Context, form Form, files []RawFile) error {
	ctx, span := leadsTracer.Start(ctx, "leads.submit")
	defer span.End()

	err := s.submit(ctx, form, files)
	outcome := outcomeOf(err)
	s.metrics.ObserveSubmission(outcome)
	span.SetAttributes(attribute.String("doorquote.lead.outcome", outcome))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
	}
	return err
}

func (s *Service) submit(ctx context.Context, form Form, files []RawFile) error {
	lead, err := s.validator.Validate(form)
	if err != nil {
		s.logger.Info("lead validation failed", "error", err)
		return err
	}
	lead = s.normalizer.Normalize(lead)

	attachments, err := FilterAttachments(files, s.policy)
	if err != nil {
		s.logger.Info("lead attachments rejected", "error", err)
		return err
	}

	if s.to == "" {
		s.logger.Error("lead destination not configured", "error", ErrMissingDestination)
		return ErrMissingDestination
	}

	msg := s.formatter.Format(lead, len(attachments))
	sendCtx, sendSpan := leadsTracer.Start(ctx, "leads.deliver")
	sendSpan.SetAttributes(
		attribute.String("doorquote.email.provider", s.provider),
		attribute.Int("doorquote.lead.attachments", len(attachments)),
	)
	defer sendSpan.End()

	start := time.Now()
	err = s.sender.Send(sendCtx, notify.EmailMessage{
		From:        s.from,
		To:          s.to,
		Subject:     msg.Subject,
		Body:        msg.Body,
		Attachments: attachments,
	})
	s.metrics.ObserveDelivery(s.provider, err == nil, time.Since(start).Seconds())
	if err != nil {
		sendSpan.RecordError(err)
		s.logger.Error("lead delivery failed", "error", err, "provider", s.provider, "city", lead.City)
		return &DeliveryError{Err: err}
	}

	s.metrics.ObserveAttachments(len(attachments))
	s.logger.Info("lead delivered",
		"provider", s.provider,
		"city", lead.City,
		"with_frame", string(lead.WithFrame),
		"attachments", len(attachments),
	)
	return nil
}

func outcomeOf(err error) string {
	var (
		validationErr *ValidationError
		rejectedErr   *AttachmentRejectedError
		deliveryErr   *DeliveryError
	)
	switch {
	case err == nil:
		return metrics.OutcomeDelivered
	case errors.As(err, &validationErr):
		return metrics.OutcomeValidationFailed
	case errors.As(err, &rejectedErr):
		return metrics.OutcomeAttachmentRejected
	case errors.Is(err, ErrMissingDestination):
		return metrics.OutcomeMisconfigured
	case errors.As(err, &deliveryErr):
		return metrics.OutcomeDeliveryFailed
	default:
		return metrics.OutcomeError
	}
}
