package leads

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validationIssues(t *testing.T, err error) *ValidationError {
	t.Helper()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected *ValidationError, got %v", err)
	return verr
}

func TestValidateScenarioA(t *testing.T) {
	s, err := NewValidator(nil).Validate(formWith(nil))
	require.NoError(t, err)

	assert.Equal(t, "Dana Levi", s.FullName)
	assert.Equal(t, WithFrameYes, s.WithFrame)
	assert.Equal(t, LockMagnetic, s.LockType)
	require.NotNil(t, s.FrameSize)
	require.NotNil(t, s.FrameThickness)
	assert.Equal(t, 80, *s.FrameSize)
	assert.Equal(t, 12, *s.FrameThickness)
	assert.Equal(t, 80, s.DoorSize)
	assert.Empty(t, s.DoorsCount)
}

func TestValidateMagneticWithoutFrame(t *testing.T) {
	_, err := NewValidator(nil).Validate(formWith(map[string]string{FieldWithFrame: "NO"}))

	verr := validationIssues(t, err)
	require.Len(t, verr.Issues, 1)
	assert.Equal(t, FieldLockType, verr.Issues[0].Path)
	assert.Equal(t, MsgLockNeedsFrame, verr.Issues[0].Message)
}

func TestValidateFrameMeasurementsRequired(t *testing.T) {
	_, err := NewValidator(nil).Validate(formWith(nil, FieldFrameSize, FieldFrameThickness))

	verr := validationIssues(t, err)
	assert.True(t, verr.Has(FieldFrameSize))
	assert.True(t, verr.Has(FieldFrameThickness))
	for _, issue := range verr.Issues {
		assert.Equal(t, MsgMissingRequired, issue.Message)
	}
}

func TestValidateWithoutFrameIgnoresMeasurements(t *testing.T) {
	s, err := NewValidator(nil).Validate(formWith(map[string]string{
		FieldWithFrame: "NO",
		FieldLockType:  "REGULAR_101",
	}, FieldFrameSize, FieldFrameThickness))
	require.NoError(t, err)
	assert.Nil(t, s.FrameSize)
}

func TestValidateReportsAllIssues(t *testing.T) {
	_, err := NewValidator(nil).Validate(formWith(map[string]string{
		FieldFullName:    "D",
		FieldPhone:       "12345",
		FieldBrand:       "IKEA",
		FieldDoorSize:    "85",
		FieldFrameSize:   "81",
		FieldWithFrame:   "MAYBE",
		FieldOpeningSide: "",
	}))

	verr := validationIssues(t, err)
	paths := make([]string, 0, len(verr.Issues))
	for _, issue := range verr.Issues {
		paths = append(paths, issue.Path)
	}
	assert.Equal(t, []string{
		FieldFullName, FieldPhone, FieldWithFrame, FieldFrameSize,
		FieldOpeningSide, FieldBrand, FieldDoorSize,
	}, paths)
	assert.Contains(t, verr.Issues[2].Message, MsgInvalidEnum)
	assert.Contains(t, verr.Issues[0].Message, "at least 2")
}

func TestValidateMinLengths(t *testing.T) {
	cases := map[string]string{
		FieldFullName:        "A",
		FieldPhone:           "050123",
		FieldCity:            "R",
		FieldStreetAndNumber: "5",
	}
	v := NewValidator(nil)
	for field, value := range cases {
		t.Run(field, func(t *testing.T) {
			_, err := v.Validate(formWith(map[string]string{field: value}))
			verr := validationIssues(t, err)
			assert.True(t, verr.Has(field))
		})
	}

	_, err := v.Validate(formWith(map[string]string{FieldPhone: "0501234"}))
	assert.NoError(t, err, "seven characters is enough for a phone")
}

func TestValidateOptionalFields(t *testing.T) {
	s, err := NewValidator(nil).Validate(formWith(map[string]string{
		FieldDoorsCount:        "3",
		FieldMessage:           "call after 5",
		FieldNotes:             "two bathrooms",
		FieldContactPreference: "WHATSAPP",
	}))
	require.NoError(t, err)
	assert.Equal(t, "3", s.DoorsCount)
	assert.Equal(t, "call after 5\ntwo bathrooms", s.Notes)
	assert.Equal(t, ContactWhatsApp, s.ContactPreference)

	_, err = NewValidator(nil).Validate(formWith(map[string]string{FieldContactPreference: "PIGEON"}))
	assert.True(t, validationIssues(t, err).Has(FieldContactPreference))
}

func TestValidateBadLockSkipsFrameRule(t *testing.T) {
	_, err := NewValidator(nil).Validate(formWith(map[string]string{
		FieldWithFrame: "NO",
		FieldLockType:  "DEADBOLT",
	}))
	verr := validationIssues(t, err)
	require.Len(t, verr.Issues, 1)
	assert.Contains(t, verr.Issues[0].Message, MsgInvalidEnum)
}
