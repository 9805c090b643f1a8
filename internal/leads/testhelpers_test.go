package leads

import (
	"bytes"
	"context"
	"io"
	"maps"
	"sync"

	"github.com/wolfman30/doorquote/internal/notify"
)

// scenarioA is a complete framed submission with a magnetic lock.
func scenarioA() map[string]string {
	return map[string]string{
		FieldFullName:        "Dana Levi",
		FieldPhone:           "0501234567",
		FieldCity:            "Rishon",
		FieldStreetAndNumber: "Herzl 5",
		FieldDoorCondition:   "NEW",
		FieldWithFrame:       "YES",
		FieldFrameSize:       "80",
		FieldFrameThickness:  "12",
		FieldOpeningSide:     "RIGHT",
		FieldLockType:        "MAGNETIC",
		FieldHinges:          "BOOK",
		FieldDoorEdge:        "STRAIGHT",
		FieldBrand:           "PANDOOR",
		FieldDoorSize:        "80",
	}
}

func formWith(overrides map[string]string, drop ...string) Form {
	raw := scenarioA()
	maps.Copy(raw, overrides)
	for _, name := range drop {
		delete(raw, name)
	}
	return NewForm(raw)
}

func memFile(name, contentType string, content []byte) RawFile {
	return RawFile{
		Name:        name,
		ContentType: contentType,
		Size:        int64(len(content)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(content)), nil
		},
	}
}

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

type recordingSender struct {
	mu   sync.Mutex
	sent []notify.EmailMessage
	err  error
}

func (s *recordingSender) Send(_ context.Context, msg notify.EmailMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, msg)
	return nil
}

func (s *recordingSender) messages() []notify.EmailMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]notify.EmailMessage(nil), s.sent...)
}
