package leads

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/wolfman30/doorquote/internal/observability/metrics"
	"github.com/wolfman30/doorquote/pkg/logging"
)

// Submitter runs the submission pipeline.
type Submitter interface {
	Submit(ctx context.Context, form Form, files []RawFile) error
}

// HandlerConfig bounds request bodies and picks the options locale.
type HandlerConfig struct {
	MaxBodyBytes int64
	Locale       string
	Catalog      *Catalog
}

// Handler handles HTTP requests for leads
type Handler struct {
	submitter    Submitter
	options      *optionsCache
	locale       string
	maxBodyBytes int64
	metrics      *metrics.LeadMetrics
	logger       *logging.Logger
}

// NewHandler creates a new leads handler
func NewHandler(submitter Submitter, cfg HandlerConfig, m *metrics.LeadMetrics, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.Catalog == nil {
		cfg.Catalog = DefaultCatalog()
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 25 << 20
	}
	return &Handler{
		submitter:    submitter,
		options:      newOptionsCache(cfg.Catalog),
		locale:       cfg.Locale,
		maxBodyBytes: cfg.MaxBodyBytes,
		metrics:      m,
		logger:       logger,
	}
}

// ErrorResponse is the JSON body of every failed submission.
type ErrorResponse struct {
	Error   string       `json:"error"`
	Details []FieldIssue `json:"details,omitempty"`
}

// multipartMemory is the in-memory share of a multipart body; the rest
// spills to temp files removed after the request.
const multipartMemory = 8 << 20

// SubmitLead handles POST /api/lead requests
func (h *Handler) SubmitLead(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	decoded, err := DecodeRequest(r, multipartMemory)
	if err != nil {
		h.metrics.ObserveSubmission(metrics.OutcomeInvalidBody)
		h.logger.Info("failed to decode lead request", "error", err)
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	err = h.submitter.Submit(r.Context(), decoded.Form, decoded.Files)
	if err == nil {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
		return
	}

	var (
		validationErr *ValidationError
		rejectedErr   *AttachmentRejectedError
	)
	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Validation failed", Details: validationErr.Issues})
	case errors.As(err, &rejectedErr):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: rejectedErr.UserMessage})
	case errors.Is(err, ErrMissingDestination):
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Missing LEADS_TO_EMAIL"})
	default:
		h.logger.Error("failed to submit lead", "error", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Server error"})
	}
}

// Options handles GET /api/lead/options requests
func (h *Handler) Options(w http.ResponseWriter, r *http.Request) {
	locale := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("locale")))
	if locale == "" {
		locale = h.locale
	}
	body, err := h.options.get(locale)
	if err != nil {
		h.logger.Error("failed to encode lead options", "error", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Server error"})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "public, max-age=300")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// HealthCheck handles GET /health requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
