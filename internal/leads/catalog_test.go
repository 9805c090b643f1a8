package leads

import (
	"strings"
	"testing"
)

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()

	if got := c.Default(FieldDoorSize); got != "80" {
		t.Errorf("doorSize default = %q, want 80", got)
	}
	if got := c.Default(FieldLockType); got != string(LockRegular101) {
		t.Errorf("lockType default = %q, want REGULAR_101", got)
	}
	if !c.RequiresFrame(LockMagnetic) || c.RequiresFrame(LockRegular101) {
		t.Error("only MAGNETIC should require a frame")
	}
	if c.FramelessLock() != LockRegular101 {
		t.Errorf("frameless lock = %q", c.FramelessLock())
	}
	for _, name := range []string{FieldDoorCondition, FieldWithFrame, FieldOpeningSide, FieldLockType, FieldHinges, FieldDoorEdge, FieldBrand, FieldDoorSize} {
		if len(c.Values(name)) == 0 {
			t.Errorf("field %s has no values", name)
		}
	}
	if !c.HasLocale("he") {
		t.Error("expected hebrew captions")
	}
}

func TestCatalogLabelFallback(t *testing.T) {
	c := DefaultCatalog()

	if got := c.Label("en", FieldLockType, "MAGNETIC"); got != "silent-close (magnetic)" {
		t.Errorf("en label = %q", got)
	}
	if got := c.Label("fr", FieldLockType, "MAGNETIC"); got != "silent-close (magnetic)" {
		t.Errorf("unknown locale should fall back to en, got %q", got)
	}
	if got := c.Label("he", FieldFrameSize, "80"); got != "80" {
		t.Errorf("unlabelled value should render raw, got %q", got)
	}
	if got := c.Label("en", "color", "RED"); got != "RED" {
		t.Errorf("unknown field should render raw, got %q", got)
	}
}

func TestParseCatalogRejectsBadDocuments(t *testing.T) {
	base := `
fields:
  - name: withFrame
    values: ["YES", "NO"]
  - name: lockType
    values: ["MAGNETIC", "REGULAR_101"]
    default: %s
rules:
  framelessLock: %s
  frameOnlyLocks: [%s]
captions:
  %s:
    subject: "s"
`
	cases := []struct {
		name    string
		def     string
		lock    string
		only    string
		locale  string
		wantErr string
	}{
		{"ok", "REGULAR_101", "REGULAR_101", "MAGNETIC", "en", ""},
		{"bad default", "WOOD", "REGULAR_101", "MAGNETIC", "en", "default"},
		{"bad frameless lock", "REGULAR_101", "WOOD", "MAGNETIC", "en", "frameless lock"},
		{"overlapping rules", "REGULAR_101", "REGULAR_101", "REGULAR_101", "en", "both"},
		{"missing default locale", "REGULAR_101", "REGULAR_101", "MAGNETIC", "he", "captions"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := fillCatalog(base, tc.def, tc.lock, tc.only, tc.locale)
			_, err := ParseCatalog([]byte(doc))
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func fillCatalog(tmpl string, args ...string) string {
	for _, a := range args {
		tmpl = strings.Replace(tmpl, "%s", a, 1)
	}
	return tmpl
}

func TestParseCatalogMissingLabel(t *testing.T) {
	doc := `
fields:
  - name: withFrame
    values: ["YES", "NO"]
    labels:
      en: {"YES": "with frame"}
  - name: lockType
    values: ["REGULAR_101"]
rules:
  framelessLock: REGULAR_101
captions:
  en: {subject: "s"}
`
	if _, err := ParseCatalog([]byte(doc)); err == nil || !strings.Contains(err.Error(), "no label") {
		t.Fatalf("expected missing label error, got %v", err)
	}
}

func TestCatalogOptions(t *testing.T) {
	view := DefaultCatalog().Options("he")
	if view.Locale != "he" {
		t.Fatalf("locale = %q", view.Locale)
	}
	if view.Rules.FramelessLock != "REGULAR_101" {
		t.Errorf("rules = %+v", view.Rules)
	}

	var lock *FieldOptions
	for i := range view.Fields {
		if view.Fields[i].Name == FieldLockType {
			lock = &view.Fields[i]
		}
		if view.Fields[i].Name == FieldFrameSize && !view.Fields[i].Optional {
			t.Error("frameSize should be marked optional")
		}
	}
	if lock == nil || len(lock.Options) != 2 || lock.Options[1].Label != "מנעול רגיל (101)" {
		t.Fatalf("unexpected lock options %+v", lock)
	}

	if got := DefaultCatalog().Options("xx").Locale; got != DefaultLocale {
		t.Errorf("unknown locale should fall back, got %q", got)
	}
}
