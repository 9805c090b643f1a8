package leads

import (
	"fmt"
	"strconv"
	"strings"
)

// Message is the rendered notification.
type Message struct {
	Subject string
	Body    string
}

// Formatter renders submissions with the catalog labels of one locale.
type Formatter struct {
	catalog *Catalog
	locale  string
}

// NewFormatter falls back to the default locale when locale has no captions.
func NewFormatter(catalog *Catalog, locale string) *Formatter {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	if !catalog.HasLocale(locale) {
		locale = DefaultLocale
	}
	return &Formatter{catalog: catalog, locale: locale}
}

// Locale returns the locale in use.
func (f *Formatter) Locale() string {
	return f.locale
}

// Format renders the subject and plain-text body for s.
func (f *Formatter) Format(s LeadSubmission, attachmentCount int) Message {
	c := f.catalog.CaptionsFor(f.locale)

	var lines []string
	line := func(caption, value string) {
		lines = append(lines, caption+": "+value)
	}
	enum := func(caption, field, value string) {
		line(caption, f.catalog.Label(f.locale, field, value))
	}

	lines = append(lines, c.Intro)
	line(c.FullName, s.FullName)
	line(c.Phone, s.Phone)
	line(c.City, s.City)
	line(c.StreetAndNumber, s.StreetAndNumber)
	if s.DoorsCount != "" {
		line(c.DoorsCount, s.DoorsCount)
	}
	if s.ContactPreference != "" {
		enum(c.ContactPreference, FieldContactPreference, string(s.ContactPreference))
	}

	lines = append(lines, "", c.SpecHeader)
	enum(c.DoorCondition, FieldDoorCondition, string(s.DoorCondition))
	enum(c.WithFrame, FieldWithFrame, string(s.WithFrame))
	if s.HasFrame() && s.FrameSize != nil && s.FrameThickness != nil {
		line(c.FrameSpec, fmt.Sprintf(c.FrameSpecValue, strconv.Itoa(*s.FrameSize), strconv.Itoa(*s.FrameThickness)))
	}
	enum(c.OpeningSide, FieldOpeningSide, string(s.OpeningSide))
	enum(c.LockType, FieldLockType, string(s.LockType))
	enum(c.Hinges, FieldHinges, string(s.Hinges))
	enum(c.DoorEdge, FieldDoorEdge, string(s.DoorEdge))
	enum(c.Brand, FieldBrand, string(s.Brand))
	line(c.DoorSize, strconv.Itoa(s.DoorSize))

	if s.Notes != "" {
		lines = append(lines, "")
		line(c.Notes, s.Notes)
	}

	lines = append(lines, "")
	if attachmentCount > 0 {
		lines = append(lines, fmt.Sprintf(c.Attachments, attachmentCount))
	} else {
		lines = append(lines, c.NoAttachments)
	}

	return Message{
		Subject: fmt.Sprintf(c.Subject, s.City),
		Body:    strings.Join(lines, "\n"),
	}
}
