package leads

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"slices"
	"strconv"
	"strings"
)

// Form is the flat field set extracted from a request. Required fields are
// always present (possibly ""); optional fields are absent unless the
// submitter supplied a non-blank value.
type Form struct {
	values map[string]string
}

// NewForm builds a Form from raw values, applying the same presence rules
// as the request decoders. Unknown keys are ignored.
func NewForm(raw map[string]string) Form {
	return newForm(func(name string) (string, bool) {
		v, ok := raw[name]
		return v, ok
	})
}

func newForm(get func(name string) (string, bool)) Form {
	values := make(map[string]string, len(requiredFields)+len(optionalFields))
	for _, name := range requiredFields {
		v, _ := get(name)
		values[name] = strings.TrimSpace(v)
	}
	for _, name := range optionalFields {
		if v, ok := get(name); ok {
			if v = strings.TrimSpace(v); v != "" {
				values[name] = v
			}
		}
	}
	return Form{values: values}
}

// Get returns the value of name, "" when absent.
func (f Form) Get(name string) string {
	return f.values[name]
}

// Lookup distinguishes an absent optional field from a present one.
func (f Form) Lookup(name string) (string, bool) {
	v, ok := f.values[name]
	return v, ok
}

// RawFile is an uploaded file before the attachment policy is applied.
type RawFile struct {
	Name        string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// Decoded is the result of decoding one submission request.
type Decoded struct {
	Form  Form
	Files []RawFile
}

// DecodeRequest extracts the form and files from a multipart or JSON body.
// Callers cap the body size with http.MaxBytesReader beforehand and release
// multipart temp files with r.MultipartForm.RemoveAll.
func DecodeRequest(r *http.Request, maxMemory int64) (*Decoded, error) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("%w: content type: %v", ErrInvalidBody, err)
	}
	switch mediaType {
	case "multipart/form-data":
		return decodeMultipart(r, maxMemory)
	case "application/json":
		form, err := DecodeJSON(r.Body)
		if err != nil {
			return nil, err
		}
		return &Decoded{Form: form}, nil
	default:
		return nil, fmt.Errorf("%w: unsupported content type %q", ErrInvalidBody, mediaType)
	}
}

func decodeMultipart(r *http.Request, maxMemory int64) (*Decoded, error) {
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	mf := r.MultipartForm
	form := newForm(func(name string) (string, bool) {
		vs, ok := mf.Value[name]
		if !ok || len(vs) == 0 {
			return "", false
		}
		return vs[0], true
	})

	var files []RawFile
	for _, fh := range mf.File[FieldImages] {
		files = append(files, rawFileFromHeader(fh))
	}
	return &Decoded{Form: form, Files: files}, nil
}

func rawFileFromHeader(fh *multipart.FileHeader) RawFile {
	if fh == nil {
		return RawFile{}
	}
	return RawFile{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}

// DecodeJSON reads the attachment-less JSON variant of the form. withFrame
// may be a boolean, numeric enums may be numbers, and null means absent.
func DecodeJSON(body io.Reader) (Form, error) {
	var raw map[string]json.RawMessage
	dec := json.NewDecoder(body)
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return Form{}, fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}

	values := make(map[string]string, len(raw))
	for name, msg := range raw {
		v, ok, err := jsonScalar(name, msg)
		if err != nil {
			return Form{}, fmt.Errorf("%w: field %s: %v", ErrInvalidBody, name, err)
		}
		if ok {
			values[name] = v
		}
	}
	return NewForm(values), nil
}

var errNotScalar = errors.New("expected a string, number or boolean")

func jsonScalar(name string, msg json.RawMessage) (string, bool, error) {
	var v any
	dec := json.NewDecoder(strings.NewReader(string(msg)))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return "", false, err
	}
	switch t := v.(type) {
	case nil:
		return "", false, nil
	case string:
		return t, true, nil
	case json.Number:
		return t.String(), true, nil
	case bool:
		if name == FieldWithFrame {
			if t {
				return string(WithFrameYes), true, nil
			}
			return string(WithFrameNo), true, nil
		}
		return strconv.FormatBool(t), true, nil
	default:
		if isSchemaField(name) {
			return "", false, errNotScalar
		}
		return "", false, nil
	}
}

func isSchemaField(name string) bool {
	return slices.Contains(requiredFields, name) || slices.Contains(optionalFields, name)
}
