package mainconfig

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	appconfig "github.com/wolfman30/doorquote/internal/config"
	"github.com/wolfman30/doorquote/internal/notify"
	"github.com/wolfman30/doorquote/pkg/logging"
)

// Email provider names accepted in EMAIL_PROVIDER.
const (
	ProviderAuto     = "auto"
	ProviderResend   = "resend"
	ProviderSendGrid = "sendgrid"
	ProviderSES      = "ses"
	ProviderStub     = "stub"
)

// LoadAWSConfig centralizes AWS SDK initialization so the API server and the
// Lambda share the same LocalStack/production wiring.
func LoadAWSConfig(ctx context.Context, cfg *appconfig.Config) (aws.Config, error) {
	loaders := []func(*config.LoadOptions) error{config.WithRegion(cfg.AWSRegion)}
	if strings.TrimSpace(cfg.AWSAccessKeyID) != "" && strings.TrimSpace(cfg.AWSSecretAccessKey) != "" {
		loaders = append(loaders, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, loaders...)
	if err != nil {
		return aws.Config{}, err
	}
	if endpoint := strings.TrimSpace(cfg.AWSEndpointOverride); endpoint != "" {
		awsCfg.BaseEndpoint = aws.String(endpoint)
	}
	return awsCfg, nil
}

// NewEmailSender picks the lead delivery provider from EMAIL_PROVIDER and
// returns it with its name. In auto mode the first configured provider wins
// (Resend, SendGrid, then SES with explicit AWS keys); development falls
// back to the stub sender.
func NewEmailSender(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) (notify.EmailSender, string, error) {
	if logger == nil {
		logger = logging.Default()
	}
	fromName, fromEmail := "", strings.TrimSpace(cfg.FromEmail)
	if addr, err := mail.ParseAddress(cfg.FromEmail); err == nil {
		fromName, fromEmail = addr.Name, addr.Address
	}

	resendSender := func() notify.EmailSender {
		if s := notify.NewResendSender(notify.ResendConfig{APIKey: cfg.ResendAPIKey, From: cfg.FromEmail}, logger); s != nil {
			return s
		}
		return nil
	}
	sendGridSender := func() notify.EmailSender {
		if s := notify.NewSendGridSender(notify.SendGridConfig{APIKey: cfg.SendGridAPIKey, FromEmail: fromEmail, FromName: fromName}, logger); s != nil {
			return s
		}
		return nil
	}
	sesSender := func() (notify.EmailSender, error) {
		awsCfg, err := LoadAWSConfig(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}
		return notify.NewSESSender(sesv2.NewFromConfig(awsCfg), notify.SESConfig{FromEmail: fromEmail, FromName: fromName}, logger), nil
	}

	switch cfg.EmailProvider {
	case ProviderResend:
		if s := resendSender(); s != nil {
			return s, ProviderResend, nil
		}
		return nil, "", fmt.Errorf("EMAIL_PROVIDER=resend requires RESEND_API_KEY")
	case ProviderSendGrid:
		if s := sendGridSender(); s != nil {
			return s, ProviderSendGrid, nil
		}
		return nil, "", fmt.Errorf("EMAIL_PROVIDER=sendgrid requires SENDGRID_API_KEY")
	case ProviderSES:
		s, err := sesSender()
		if err != nil {
			return nil, "", err
		}
		return s, ProviderSES, nil
	case ProviderStub:
		return notify.NewStubEmailSender(logger), ProviderStub, nil
	case ProviderAuto, "":
		if s := resendSender(); s != nil {
			return s, ProviderResend, nil
		}
		if s := sendGridSender(); s != nil {
			return s, ProviderSendGrid, nil
		}
		if cfg.AWSAccessKeyID != "" && cfg.AWSSecretAccessKey != "" {
			s, err := sesSender()
			if err != nil {
				return nil, "", err
			}
			return s, ProviderSES, nil
		}
		if cfg.IsDevelopment() {
			logger.Warn("no email provider configured; leads will only be logged")
			return notify.NewStubEmailSender(logger), ProviderStub, nil
		}
		return nil, "", fmt.Errorf("no email provider configured: set RESEND_API_KEY, SENDGRID_API_KEY or AWS credentials")
	default:
		return nil, "", fmt.Errorf("unknown EMAIL_PROVIDER %q", cfg.EmailProvider)
	}
}
