package metrics

import "github.com/prometheus/client_golang/prometheus"

// Submission outcomes recorded by LeadMetrics.
const (
	OutcomeDelivered          = "delivered"
	OutcomeInvalidBody        = "invalid_body"
	OutcomeValidationFailed   = "validation_failed"
	OutcomeAttachmentRejected = "attachment_rejected"
	OutcomeMisconfigured      = "misconfigured"
	OutcomeDeliveryFailed     = "delivery_failed"
	OutcomeError              = "error"
)

// LeadMetrics exposes counters/histograms for lead submissions.
type LeadMetrics struct {
	submissionsTotal *prometheus.CounterVec
	attachments      prometheus.Histogram
	deliveryLatency  *prometheus.HistogramVec
}

func NewLeadMetrics(reg prometheus.Registerer) *LeadMetrics {
	m := &LeadMetrics{
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "doorquote",
			Subsystem: "leads",
			Name:      "submissions_total",
			Help:      "Lead submissions by outcome",
		}, []string{"outcome"}),
		attachments: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "doorquote",
			Subsystem: "leads",
			Name:      "attachments",
			Help:      "Images attached to delivered leads",
			Buckets:   []float64{0, 1, 2, 3},
		}),
		deliveryLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "doorquote",
			Subsystem: "leads",
			Name:      "delivery_seconds",
			Help:      "Latency of the email provider call",
			Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"provider", "status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissionsTotal, m.attachments, m.deliveryLatency)
	return m
}

func (m *LeadMetrics) ObserveSubmission(outcome string) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(outcome).Inc()
}

func (m *LeadMetrics) ObserveAttachments(count int) {
	if m == nil {
		return
	}
	m.attachments.Observe(float64(count))
}

func (m *LeadMetrics) ObserveDelivery(provider string, ok bool, seconds float64) {
	if m == nil {
		return
	}
	status := "ok"
	if !ok {
		status = "failed"
	}
	m.deliveryLatency.WithLabelValues(provider, status).Observe(seconds)
}
