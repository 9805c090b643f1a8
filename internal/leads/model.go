package leads

// Form field names shared by the decoder, validator and catalog.
const (
	FieldFullName          = "fullName"
	FieldPhone             = "phone"
	FieldCity              = "city"
	FieldStreetAndNumber   = "streetAndNumber"
	FieldDoorsCount        = "doorsCount"
	FieldMessage           = "message"
	FieldNotes             = "notes"
	FieldContactPreference = "contactPreference"
	FieldDoorCondition     = "doorCondition"
	FieldWithFrame         = "withFrame"
	FieldFrameSize         = "frameSize"
	FieldFrameThickness    = "frameThickness"
	FieldOpeningSide       = "openingSide"
	FieldLockType          = "lockType"
	FieldHinges            = "hinges"
	FieldDoorEdge          = "doorEdge"
	FieldBrand             = "brand"
	FieldDoorSize          = "doorSize"

	// FieldImages is the multipart field carrying photos.
	FieldImages = "images"
)

// requiredFields decode to "" when missing; optionalFields decode to absent.
var (
	requiredFields = []string{
		FieldFullName, FieldPhone, FieldCity, FieldStreetAndNumber,
		FieldDoorCondition, FieldWithFrame, FieldOpeningSide, FieldLockType,
		FieldHinges, FieldDoorEdge, FieldBrand, FieldDoorSize,
	}
	optionalFields = []string{
		FieldDoorsCount, FieldMessage, FieldNotes, FieldContactPreference,
		FieldFrameSize, FieldFrameThickness,
	}
)

type (
	DoorCondition     string
	WithFrame         string
	OpeningSide       string
	LockType          string
	Hinges            string
	DoorEdge          string
	Brand             string
	ContactPreference string
)

const (
	DoorConditionB       DoorCondition = "B"
	DoorConditionNew     DoorCondition = "NEW"
	DoorConditionGeneric DoorCondition = "GENERIC"

	WithFrameYes WithFrame = "YES"
	WithFrameNo  WithFrame = "NO"

	OpeningSideRight OpeningSide = "RIGHT"
	OpeningSideLeft  OpeningSide = "LEFT"

	LockMagnetic   LockType = "MAGNETIC"
	LockRegular101 LockType = "REGULAR_101"

	HingesBook Hinges = "BOOK"
	HingesPipe Hinges = "PIPE"

	DoorEdgeStep     DoorEdge = "STEP"
	DoorEdgeStraight DoorEdge = "STRAIGHT"

	BrandPandoor      Brand = "PANDOOR"
	BrandHamadia      Brand = "HAMADIA"
	BrandRavBariach   Brand = "RAV_BARIACH"
	BrandOren         Brand = "OREN"
	BrandNoPreference Brand = "NO_PREFERENCE"

	ContactWhatsApp ContactPreference = "WHATSAPP"
	ContactCall     ContactPreference = "CALL"
)

// LeadSubmission is one validated quote request. It lives for a single
// HTTP request and is never stored.
type LeadSubmission struct {
	FullName          string
	Phone             string
	City              string
	StreetAndNumber   string
	DoorsCount        string // "" when not provided
	Notes             string // message or notes, "" when not provided
	ContactPreference ContactPreference

	DoorCondition  DoorCondition
	WithFrame      WithFrame
	FrameSize      *int // nil unless WithFrame is YES
	FrameThickness *int
	OpeningSide    OpeningSide
	LockType       LockType
	Hinges         Hinges
	DoorEdge       DoorEdge
	Brand          Brand
	DoorSize       int
}

// HasFrame reports whether the door is ordered with a frame.
func (s LeadSubmission) HasFrame() bool {
	return s.WithFrame == WithFrameYes
}
