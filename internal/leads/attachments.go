package leads

import (
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/wolfman30/doorquote/internal/notify"
)

// AttachmentPolicy bounds the photos accepted with a submission.
type AttachmentPolicy struct {
	MaxFiles        int
	MaxFileBytes    int64
	ImageExtensions []string
}

// DefaultAttachmentPolicy allows three images of up to 4 MiB each.
func DefaultAttachmentPolicy() AttachmentPolicy {
	return AttachmentPolicy{
		MaxFiles:        3,
		MaxFileBytes:    4 * 1024 * 1024,
		ImageExtensions: []string{"jpg", "jpeg", "png", "webp"},
	}
}

func (p AttachmentPolicy) withDefaults() AttachmentPolicy {
	def := DefaultAttachmentPolicy()
	if p.MaxFiles <= 0 {
		p.MaxFiles = def.MaxFiles
	}
	if p.MaxFileBytes <= 0 {
		p.MaxFileBytes = def.MaxFileBytes
	}
	if len(p.ImageExtensions) == 0 {
		p.ImageExtensions = def.ImageExtensions
	}
	return p
}

// FilterAttachments applies policy to the uploaded files. Empty entries and
// files beyond MaxFiles are dropped silently; a kept file that is not an
// image or is too large rejects the whole submission.
func FilterAttachments(files []RawFile, policy AttachmentPolicy) ([]notify.Attachment, error) {
	policy = policy.withDefaults()

	kept := make([]RawFile, 0, policy.MaxFiles)
	for _, f := range files {
		if f.Size <= 0 || f.Open == nil {
			continue
		}
		if len(kept) == policy.MaxFiles {
			break
		}
		kept = append(kept, f)
	}

	for _, f := range kept {
		if !policy.isImage(f) {
			return nil, &AttachmentRejectedError{
				Filename:    f.Name,
				Reason:      ErrNonImageAttachment,
				UserMessage: "Only images can be attached.",
			}
		}
		if f.Size > policy.MaxFileBytes {
			return nil, policy.tooLarge(f.Name)
		}
	}

	attachments := make([]notify.Attachment, 0, len(kept))
	for i, f := range kept {
		content, err := readCapped(f, policy.MaxFileBytes)
		if err != nil {
			return nil, err
		}
		if int64(len(content)) > policy.MaxFileBytes {
			return nil, policy.tooLarge(f.Name)
		}
		name := f.Name
		if name == "" {
			name = fmt.Sprintf("image-%d.jpg", i+1)
		}
		attachments = append(attachments, notify.Attachment{
			Filename:    name,
			ContentType: contentType(f.ContentType, content),
			Content:     content,
		})
	}
	return attachments, nil
}

func (p AttachmentPolicy) isImage(f RawFile) bool {
	if strings.HasPrefix(strings.ToLower(f.ContentType), "image/") {
		return true
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(f.Name), "."))
	return ext != "" && slices.Contains(p.ImageExtensions, ext)
}

func (p AttachmentPolicy) tooLarge(name string) error {
	return &AttachmentRejectedError{
		Filename:    name,
		Reason:      ErrAttachmentTooLarge,
		UserMessage: fmt.Sprintf("Image too large. Up to %dMB per image.", p.MaxFileBytes/(1024*1024)),
	}
}

// readCapped reads at most limit+1 bytes so an understated size header is
// still caught.
func readCapped(f RawFile, limit int64) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open attachment %q: %w", f.Name, err)
	}
	defer rc.Close()

	content, err := io.ReadAll(io.LimitReader(rc, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read attachment %q: %w", f.Name, err)
	}
	return content, nil
}

// contentType keeps a declared image type and otherwise sniffs the bytes,
// e.g. for photos accepted by extension with a generic declared type.
func contentType(declared string, content []byte) string {
	if strings.HasPrefix(strings.ToLower(declared), "image/") {
		return declared
	}
	return mimetype.Detect(content).String()
}
