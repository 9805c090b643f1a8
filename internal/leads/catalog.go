package leads

import (
	_ "embed"
	"fmt"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// DefaultLocale is used whenever a requested locale has no captions.
const DefaultLocale = "en"

// Catalog holds the enumerated door options, their defaults and labels.
type Catalog struct {
	Version  int                 `yaml:"version"`
	Fields   []FieldSpec         `yaml:"fields"`
	Rules    FrameRules          `yaml:"rules"`
	Captions map[string]Captions `yaml:"captions"`

	byName map[string]*FieldSpec
}

// FieldSpec describes one enumerated field.
type FieldSpec struct {
	Name    string                       `yaml:"name"`
	Values  []string                     `yaml:"values"`
	Default string                       `yaml:"default"`
	Labels  map[string]map[string]string `yaml:"labels"`
}

// FrameRules ties lock types to the presence of a door frame.
type FrameRules struct {
	FramelessLock  string   `yaml:"framelessLock"`
	FrameOnlyLocks []string `yaml:"frameOnlyLocks"`
}

// Captions are the localized line labels of the notification email.
type Captions struct {
	Subject           string `yaml:"subject"`
	Intro             string `yaml:"intro"`
	FullName          string `yaml:"fullName"`
	Phone             string `yaml:"phone"`
	City              string `yaml:"city"`
	StreetAndNumber   string `yaml:"streetAndNumber"`
	DoorsCount        string `yaml:"doorsCount"`
	ContactPreference string `yaml:"contactPreference"`
	SpecHeader        string `yaml:"specHeader"`
	DoorCondition     string `yaml:"doorCondition"`
	WithFrame         string `yaml:"withFrame"`
	FrameSpec         string `yaml:"frameSpec"`
	FrameSpecValue    string `yaml:"frameSpecValue"`
	OpeningSide       string `yaml:"openingSide"`
	LockType          string `yaml:"lockType"`
	Hinges            string `yaml:"hinges"`
	DoorEdge          string `yaml:"doorEdge"`
	Brand             string `yaml:"brand"`
	DoorSize          string `yaml:"doorSize"`
	Notes             string `yaml:"notes"`
	Attachments       string `yaml:"attachments"`
	NoAttachments     string `yaml:"noAttachments"`
}

var (
	defaultCatalog     *Catalog
	defaultCatalogOnce sync.Once
)

// DefaultCatalog returns the embedded catalog. It panics if the embedded
// file is invalid, which the package tests guard against.
func DefaultCatalog() *Catalog {
	defaultCatalogOnce.Do(func() {
		c, err := ParseCatalog(catalogYAML)
		if err != nil {
			panic(fmt.Sprintf("leads: embedded catalog: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// ParseCatalog decodes and checks a catalog document.
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	c.byName = make(map[string]*FieldSpec, len(c.Fields))
	for i := range c.Fields {
		f := &c.Fields[i]
		if f.Name == "" || len(f.Values) == 0 {
			return nil, fmt.Errorf("field %d: name and values are required", i)
		}
		if _, dup := c.byName[f.Name]; dup {
			return nil, fmt.Errorf("field %s: declared twice", f.Name)
		}
		if f.Default != "" && !slices.Contains(f.Values, f.Default) {
			return nil, fmt.Errorf("field %s: default %q is not a declared value", f.Name, f.Default)
		}
		for locale, labels := range f.Labels {
			for _, v := range f.Values {
				if labels[v] == "" {
					return nil, fmt.Errorf("field %s: locale %s has no label for %q", f.Name, locale, v)
				}
			}
		}
		c.byName[f.Name] = f
	}

	lock := c.byName[FieldLockType]
	if lock == nil || c.byName[FieldWithFrame] == nil {
		return nil, fmt.Errorf("catalog must declare %s and %s", FieldLockType, FieldWithFrame)
	}
	if !slices.Contains(lock.Values, c.Rules.FramelessLock) {
		return nil, fmt.Errorf("rules: frameless lock %q is not a lock type", c.Rules.FramelessLock)
	}
	for _, l := range c.Rules.FrameOnlyLocks {
		if !slices.Contains(lock.Values, l) {
			return nil, fmt.Errorf("rules: frame-only lock %q is not a lock type", l)
		}
		if l == c.Rules.FramelessLock {
			return nil, fmt.Errorf("rules: %q cannot be both frameless and frame-only", l)
		}
	}
	if _, ok := c.Captions[DefaultLocale]; !ok {
		return nil, fmt.Errorf("captions: locale %s is required", DefaultLocale)
	}
	return &c, nil
}

// Has reports whether value is declared for field.
func (c *Catalog) Has(field, value string) bool {
	f, ok := c.byName[field]
	return ok && slices.Contains(f.Values, value)
}

// Values lists the declared values of field in catalog order.
func (c *Catalog) Values(field string) []string {
	if f, ok := c.byName[field]; ok {
		return f.Values
	}
	return nil
}

// Default returns the client-side default for field, or "".
func (c *Catalog) Default(field string) string {
	if f, ok := c.byName[field]; ok {
		return f.Default
	}
	return ""
}

// RequiresFrame reports whether lock may only be installed in a frame.
func (c *Catalog) RequiresFrame(lock LockType) bool {
	return slices.Contains(c.Rules.FrameOnlyLocks, string(lock))
}

// FramelessLock is the lock forced on submissions without a frame.
func (c *Catalog) FramelessLock() LockType {
	return LockType(c.Rules.FramelessLock)
}

// Label renders value for display. Fields without labels (sizes) and
// unknown locales fall back to the default locale, then to the raw value.
func (c *Catalog) Label(locale, field, value string) string {
	f, ok := c.byName[field]
	if !ok {
		return value
	}
	if l, ok := f.Labels[locale][value]; ok {
		return l
	}
	if l, ok := f.Labels[DefaultLocale][value]; ok {
		return l
	}
	return value
}

// CaptionsFor returns the captions of locale, falling back to the default locale.
func (c *Catalog) CaptionsFor(locale string) Captions {
	if captions, ok := c.Captions[locale]; ok {
		return captions
	}
	return c.Captions[DefaultLocale]
}

// HasLocale reports whether captions exist for locale.
func (c *Catalog) HasLocale(locale string) bool {
	_, ok := c.Captions[locale]
	return ok
}

// Option is one selectable value in the options view.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FieldOptions is the client-facing view of one field.
type FieldOptions struct {
	Name     string   `json:"name"`
	Default  string   `json:"default,omitempty"`
	Optional bool     `json:"optional,omitempty"`
	Options  []Option `json:"options"`
}

// OptionsView is served to the intake form so it renders the server's
// values and defaults.
type OptionsView struct {
	Version int            `json:"version"`
	Locale  string         `json:"locale"`
	Rules   RulesView      `json:"rules"`
	Fields  []FieldOptions `json:"fields"`
}

// RulesView exposes the frame rules to the client.
type RulesView struct {
	FramelessLock  string   `json:"framelessLock"`
	FrameOnlyLocks []string `json:"frameOnlyLocks"`
	FrameFields    []string `json:"frameFields"`
}

// Options builds the options view for locale.
func (c *Catalog) Options(locale string) OptionsView {
	if !c.HasLocale(locale) {
		locale = DefaultLocale
	}
	view := OptionsView{
		Version: c.Version,
		Locale:  locale,
		Rules: RulesView{
			FramelessLock:  c.Rules.FramelessLock,
			FrameOnlyLocks: c.Rules.FrameOnlyLocks,
			FrameFields:    []string{FieldFrameSize, FieldFrameThickness},
		},
	}
	for _, f := range c.Fields {
		fo := FieldOptions{
			Name:     f.Name,
			Default:  f.Default,
			Optional: slices.Contains(optionalFields, f.Name),
		}
		for _, v := range f.Values {
			fo.Options = append(fo.Options, Option{Value: v, Label: c.Label(locale, f.Name, v)})
		}
		view.Fields = append(view.Fields, fo)
	}
	return view
}
