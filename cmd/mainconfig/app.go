package mainconfig

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/wolfman30/doorquote/internal/api/router"
	appconfig "github.com/wolfman30/doorquote/internal/config"
	"github.com/wolfman30/doorquote/internal/leads"
	"github.com/wolfman30/doorquote/internal/observability/metrics"
	"github.com/wolfman30/doorquote/pkg/logging"
)

// NewHTTPHandler wires the lead pipeline behind the router. Both the API
// server and the Lambda serve the handler it returns. A nil registry means
// the Prometheus default registry.
func NewHTTPHandler(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger, reg *prometheus.Registry) (http.Handler, error) {
	if logger == nil {
		logger = logging.Default()
	}

	sender, provider, err := NewEmailSender(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if reg != nil {
		registerer, gatherer = reg, reg
	}
	leadMetrics := metrics.NewLeadMetrics(registerer)

	if cfg.LeadsToEmail == "" {
		logger.Warn("LEADS_TO_EMAIL is not set; submissions will fail until it is configured")
	}

	catalog := leads.DefaultCatalog()
	svc := leads.NewService(sender, leads.ServiceConfig{
		To:       cfg.LeadsToEmail,
		From:     cfg.FromEmail,
		Locale:   cfg.LeadsLocale,
		Provider: provider,
		Catalog:  catalog,
		Policy: leads.AttachmentPolicy{
			MaxFiles:     cfg.LeadsMaxFiles,
			MaxFileBytes: cfg.LeadsMaxFileBytes,
		},
	}, leadMetrics, logger)
	handler := leads.NewHandler(svc, leads.HandlerConfig{
		MaxBodyBytes: cfg.LeadsMaxBodyBytes,
		Locale:       cfg.LeadsLocale,
		Catalog:      catalog,
	}, leadMetrics, logger)

	logger.Info("lead pipeline ready",
		"provider", provider,
		"locale", cfg.LeadsLocale,
		"max_files", cfg.LeadsMaxFiles,
	)

	return router.New(&router.Config{
		Logger:             logger,
		LeadsHandler:       handler,
		MetricsHandler:     promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RequestTimeout:     cfg.HTTPWriteTimeout,
	}), nil
}
