package survey

import "errors"

// Validation errors returned before anything is written.
var (
	ErrRatingOutOfRange           = errors.New("rating must be between 0 and 100")
	ErrEmptyName                  = errors.New("name cannot be empty")
	ErrMissingResponse            = errors.New("response id is required")
	ErrUnknownObservingSystemType = errors.New("unknown observing system type")
	ErrSubtypeMismatch            = errors.New("observing system type does not match its subtype row")
	ErrCrossResponseLink          = errors.New("linked rows belong to different responses")
	ErrMissingSocietalBenefitArea = errors.New("societal benefit area id is required")
	ErrFieldTooLong               = errors.New("field exceeds maximum length")
)

// Column widths of the stored text fields.
const (
	MaxNameLength = 256
	MaxTextLength = 512
)
