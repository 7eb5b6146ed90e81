package vtasurvey

import (
	"errors"

	"github.com/nsidc/usaon-vta-survey/application/service"
	"github.com/nsidc/usaon-vta-survey/domain/survey"
	"github.com/nsidc/usaon-vta-survey/internal/database"
)

// Exported errors for library consumers. Match them with errors.Is.
var (
	// ErrNoDatabase indicates no database was configured.
	ErrNoDatabase = errors.New("vtasurvey: no database configured")

	// ErrClientClosed indicates the client has been closed.
	ErrClientClosed = service.ErrClientClosed

	// ErrNotFound indicates a requested row does not exist.
	ErrNotFound = database.ErrNotFound

	// ErrConstraintViolation matches every write the database rejected.
	ErrConstraintViolation = database.ErrConstraintViolation

	// ErrUniqueViolation indicates a duplicate name within one response.
	ErrUniqueViolation = database.ErrUniqueViolation

	// ErrForeignKeyViolation indicates a reference to a missing row.
	ErrForeignKeyViolation = database.ErrForeignKeyViolation

	// ErrRatingOutOfRange indicates a rating outside 0..100.
	ErrRatingOutOfRange = survey.ErrRatingOutOfRange

	// ErrCrossResponseLink indicates an attempt to link rows from two responses.
	ErrCrossResponseLink = survey.ErrCrossResponseLink

	// ErrUnknownSocietalBenefitArea indicates an area the taxonomy does not define.
	ErrUnknownSocietalBenefitArea = service.ErrUnknownSocietalBenefitArea
)
