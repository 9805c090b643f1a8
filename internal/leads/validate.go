package leads

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// submissionInput mirrors the form with validation tags. Pointer fields are
// optional; nil means the submitter left them out.
type submissionInput struct {
	FullName          string  `json:"fullName" validate:"min=2"`
	Phone             string  `json:"phone" validate:"min=7"`
	City              string  `json:"city" validate:"min=2"`
	StreetAndNumber   string  `json:"streetAndNumber" validate:"min=2"`
	DoorsCount        *string `json:"doorsCount"`
	Message           *string `json:"message"`
	Notes             *string `json:"notes"`
	ContactPreference *string `json:"contactPreference" validate:"omitempty,enum"`
	DoorCondition     string  `json:"doorCondition" validate:"enum"`
	WithFrame         string  `json:"withFrame" validate:"enum"`
	FrameSize         *string `json:"frameSize" validate:"omitempty,enum"`
	FrameThickness    *string `json:"frameThickness" validate:"omitempty,enum"`
	OpeningSide       string  `json:"openingSide" validate:"enum"`
	LockType          string  `json:"lockType" validate:"enum"`
	Hinges            string  `json:"hinges" validate:"enum"`
	DoorEdge          string  `json:"doorEdge" validate:"enum"`
	Brand             string  `json:"brand" validate:"enum"`
	DoorSize          string  `json:"doorSize" validate:"enum"`
}

// Validator turns a decoded Form into a LeadSubmission or a ValidationError.
type Validator struct {
	catalog  *Catalog
	validate *validator.Validate
}

// NewValidator creates a validator whose enum sets come from catalog.
func NewValidator(catalog *Catalog) *Validator {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// enum checks membership in the catalog set named after the field.
	_ = v.RegisterValidation("enum", func(fl validator.FieldLevel) bool {
		return catalog.Has(fl.FieldName(), fl.Field().String())
	})
	return &Validator{catalog: catalog, validate: v}
}

// Validate runs per-field checks, then the frame/lock cross-field rules on
// fields that passed. All issues are reported together.
func (v *Validator) Validate(form Form) (LeadSubmission, error) {
	in := submissionInput{
		FullName:          form.Get(FieldFullName),
		Phone:             form.Get(FieldPhone),
		City:              form.Get(FieldCity),
		StreetAndNumber:   form.Get(FieldStreetAndNumber),
		DoorsCount:        optional(form, FieldDoorsCount),
		Message:           optional(form, FieldMessage),
		Notes:             optional(form, FieldNotes),
		ContactPreference: optional(form, FieldContactPreference),
		DoorCondition:     form.Get(FieldDoorCondition),
		WithFrame:         form.Get(FieldWithFrame),
		FrameSize:         optional(form, FieldFrameSize),
		FrameThickness:    optional(form, FieldFrameThickness),
		OpeningSide:       form.Get(FieldOpeningSide),
		LockType:          form.Get(FieldLockType),
		Hinges:            form.Get(FieldHinges),
		DoorEdge:          form.Get(FieldDoorEdge),
		Brand:             form.Get(FieldBrand),
		DoorSize:          form.Get(FieldDoorSize),
	}

	var issues []FieldIssue
	failed := map[string]bool{}
	if err := v.validate.Struct(in); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return LeadSubmission{}, fmt.Errorf("validate submission: %w", err)
		}
		for _, fe := range fieldErrs {
			failed[fe.Field()] = true
			issues = append(issues, FieldIssue{Path: fe.Field(), Message: v.message(fe)})
		}
	}

	if !failed[FieldWithFrame] {
		frame := WithFrame(in.WithFrame)
		if frame == WithFrameYes {
			if in.FrameSize == nil {
				issues = append(issues, FieldIssue{Path: FieldFrameSize, Message: MsgMissingRequired})
			}
			if in.FrameThickness == nil {
				issues = append(issues, FieldIssue{Path: FieldFrameThickness, Message: MsgMissingRequired})
			}
		}
		if frame == WithFrameNo && !failed[FieldLockType] && v.catalog.RequiresFrame(LockType(in.LockType)) {
			issues = append(issues, FieldIssue{Path: FieldLockType, Message: MsgLockNeedsFrame})
		}
	}

	if len(issues) > 0 {
		return LeadSubmission{}, &ValidationError{Issues: issues}
	}
	return in.toSubmission(), nil
}

func (v *Validator) message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "min":
		return fmt.Sprintf("must contain at least %s character(s)", fe.Param())
	case "enum":
		return fmt.Sprintf("%s; expected one of %s", MsgInvalidEnum, strings.Join(v.catalog.Values(fe.Field()), " | "))
	default:
		return "invalid value"
	}
}

func optional(form Form, name string) *string {
	if v, ok := form.Lookup(name); ok {
		return &v
	}
	return nil
}

// toSubmission converts an input that already passed validation, so the
// numeric conversions cannot fail.
func (in submissionInput) toSubmission() LeadSubmission {
	s := LeadSubmission{
		FullName:        in.FullName,
		Phone:           in.Phone,
		City:            in.City,
		StreetAndNumber: in.StreetAndNumber,
		DoorCondition:   DoorCondition(in.DoorCondition),
		WithFrame:       WithFrame(in.WithFrame),
		OpeningSide:     OpeningSide(in.OpeningSide),
		LockType:        LockType(in.LockType),
		Hinges:          Hinges(in.Hinges),
		DoorEdge:        DoorEdge(in.DoorEdge),
		Brand:           Brand(in.Brand),
		DoorSize:        atoi(in.DoorSize),
	}
	if in.DoorsCount != nil {
		s.DoorsCount = *in.DoorsCount
	}
	if in.ContactPreference != nil {
		s.ContactPreference = ContactPreference(*in.ContactPreference)
	}
	var notes []string
	for _, n := range []*string{in.Message, in.Notes} {
		if n != nil {
			notes = append(notes, *n)
		}
	}
	s.Notes = strings.Join(notes, "\n")
	if in.FrameSize != nil {
		size := atoi(*in.FrameSize)
		s.FrameSize = &size
	}
	if in.FrameThickness != nil {
		thickness := atoi(*in.FrameThickness)
		s.FrameThickness = &thickness
	}
	return s
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
