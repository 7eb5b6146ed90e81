// Package survey holds the response aggregate of the value tree analysis
// survey: one respondent's survey session, the response it submits, and the
// observing systems, data products and applications reported in it.
package survey

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Survey is a single respondent's survey session.
type Survey struct {
	id         uuid.UUID
	responseID int64
	createdAt  time.Time
	notes      *string
}

// NewSurvey creates a Survey with a freshly generated random id.
func NewSurvey(notes *string) (Survey, error) {
	if notes != nil {
		if err := checkLength("notes", *notes, MaxTextLength); err != nil {
			return Survey{}, err
		}
	}
	return Survey{
		id:        uuid.New(),
		createdAt: time.Now(),
		notes:     copyString(notes),
	}, nil
}

// ReconstructSurvey reconstructs a Survey from persistence.
func ReconstructSurvey(id uuid.UUID, responseID int64, createdAt time.Time, notes *string) Survey {
	return Survey{
		id:         id,
		responseID: responseID,
		createdAt:  createdAt,
		notes:      copyString(notes),
	}
}

// ID returns the survey id.
func (s Survey) ID() uuid.UUID { return s.id }

// ResponseID returns the linked response id, or 0 when none is linked.
func (s Survey) ResponseID() int64 { return s.responseID }

// HasResponse reports whether a response is linked.
func (s Survey) HasResponse() bool { return s.responseID != 0 }

// CreatedAt returns the creation timestamp.
func (s Survey) CreatedAt() time.Time { return s.createdAt }

// Notes returns the free-text notes, or nil.
func (s Survey) Notes() *string { return copyString(s.notes) }

// WithResponse returns a copy linked to the given response.
func (s Survey) WithResponse(responseID int64) Survey {
	s.responseID = responseID
	return s
}

// Response is the root aggregate holding all answers for one survey submission.
type Response struct {
	id        int64
	createdAt time.Time
	updatedAt time.Time
}

// NewResponse creates an unsaved Response stamped with the current time.
func NewResponse() Response {
	now := time.Now()
	return Response{createdAt: now, updatedAt: now}
}

// ReconstructResponse reconstructs a Response from persistence.
func ReconstructResponse(id int64, createdAt, updatedAt time.Time) Response {
	return Response{id: id, createdAt: createdAt, updatedAt: updatedAt}
}

// ID returns the response id.
func (r Response) ID() int64 { return r.id }

// CreatedAt returns the creation timestamp.
func (r Response) CreatedAt() time.Time { return r.createdAt }

// UpdatedAt returns the last-modified timestamp.
func (r Response) UpdatedAt() time.Time { return r.updatedAt }

// Touch returns a copy with the updated timestamp advanced to now.
// The timestamp never moves backwards.
func (r Response) Touch(now time.Time) Response {
	if now.After(r.updatedAt) {
		r.updatedAt = now
	}
	return r
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func checkName(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	return checkLength("name", name, MaxNameLength)
}

func checkLength(field, value string, limit int) error {
	if n := utf8.RuneCountInString(value); n > limit {
		return fmt.Errorf("%w: %s has %d characters, limit %d", ErrFieldTooLong, field, n, limit)
	}
	return nil
}

func checkOptionalText(field string, value *string) error {
	if value == nil {
		return nil
	}
	return checkLength(field, *value, MaxTextLength)
}
