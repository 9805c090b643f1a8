package leads

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidBody is returned when the request body cannot be decoded
	ErrInvalidBody = errors.New("invalid request body")

	// ErrMissingDestination is returned when LEADS_TO_EMAIL is not configured
	ErrMissingDestination = errors.New("missing LEADS_TO_EMAIL")

	// ErrNonImageAttachment is returned when a kept attachment is not an image
	ErrNonImageAttachment = errors.New("only image attachments are allowed")

	// ErrAttachmentTooLarge is returned when a kept attachment exceeds the size cap
	ErrAttachmentTooLarge = errors.New("attachment too large")
)

// Issue messages reported in validation details.
const (
	MsgInvalidEnum     = "invalid enum value"
	MsgMissingRequired = "missing required field"
	MsgLockNeedsFrame  = "business rule violation: silent-close lock requires a frame"
)

// FieldIssue is one field-scoped validation problem.
type FieldIssue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// ValidationError carries every issue found in a submission.
type ValidationError struct {
	Issues []FieldIssue
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, issue.Path+": "+issue.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether an issue was recorded for path.
func (e *ValidationError) Has(path string) bool {
	for _, issue := range e.Issues {
		if issue.Path == path {
			return true
		}
	}
	return false
}

// AttachmentRejectedError aborts a submission because of one file.
type AttachmentRejectedError struct {
	Filename string
	Reason   error
	// UserMessage is safe to return to the submitter.
	UserMessage string
}

func (e *AttachmentRejectedError) Error() string {
	return fmt.Sprintf("attachment %q rejected: %v", e.Filename, e.Reason)
}

func (e *AttachmentRejectedError) Unwrap() error {
	return e.Reason
}

// DeliveryError wraps a failure reported by the email sender.
type DeliveryError struct {
	Err error
}

func (e *DeliveryError) Error() string {
	return "delivery failed: " + e.Err.Error()
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}
