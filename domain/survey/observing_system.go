package survey

import (
	"fmt"
	"strings"
)

// ObservingSystemType discriminates which subtype extends an observing system.
type ObservingSystemType string

// ObservingSystemType values.
const (
	ObservingSystemTypeObservational ObservingSystemType = "observational"
	ObservingSystemTypeResearch      ObservingSystemType = "research"
	ObservingSystemTypeOther         ObservingSystemType = "other"
)

// ParseObservingSystemType parses a discriminator value, case-insensitively.
func ParseObservingSystemType(s string) (ObservingSystemType, error) {
	t := ObservingSystemType(strings.ToLower(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownObservingSystemType, s)
	}
	return t, nil
}

// IsValid reports whether t is one of the known discriminator values.
func (t ObservingSystemType) IsValid() bool {
	switch t {
	case ObservingSystemTypeObservational, ObservingSystemTypeResearch, ObservingSystemTypeOther:
		return true
	}
	return false
}

// String implements fmt.Stringer.
func (t ObservingSystemType) String() string { return string(t) }

// ObservingSystemDetails is the type-specific payload of an observing system.
// Exactly one of Observational, Research or Other.
type ObservingSystemDetails interface {
	Type() ObservingSystemType
	validate() error
}

// Observational describes a system that observes directly.
type Observational struct {
	Platform string
	Sensor   string
}

// Type returns ObservingSystemTypeObservational.
func (Observational) Type() ObservingSystemType { return ObservingSystemTypeObservational }

func (o Observational) validate() error {
	if err := checkLength("platform", o.Platform, MaxNameLength); err != nil {
		return err
	}
	return checkLength("sensor", o.Sensor, MaxNameLength)
}

// Research describes a research system and the intermediate product it yields.
type Research struct {
	IntermediateProduct string
}

// Type returns ObservingSystemTypeResearch.
func (Research) Type() ObservingSystemType { return ObservingSystemTypeResearch }

func (r Research) validate() error {
	return checkLength("intermediate_product", r.IntermediateProduct, MaxNameLength)
}

// Other is an observing system with no extra attributes.
type Other struct{}

// Type returns ObservingSystemTypeOther.
func (Other) Type() ObservingSystemType { return ObservingSystemTypeOther }

func (Other) validate() error { return nil }

// ObservingSystemInfo holds the attributes common to every observing system.
type ObservingSystemInfo struct {
	URL                 string
	AuthorName          string
	AuthorEmail         string
	FundingCountry      string
	FundingAgency       string
	ReferencesCitations string
	Notes               string
}

func (i ObservingSystemInfo) validate() error {
	short := []struct {
		field string
		value string
	}{
		{"url", i.URL},
		{"author_name", i.AuthorName},
		{"author_email", i.AuthorEmail},
		{"funding_country", i.FundingCountry},
		{"funding_agency", i.FundingAgency},
	}
	for _, f := range short {
		if err := checkLength(f.field, f.value, MaxNameLength); err != nil {
			return err
		}
	}
	if err := checkLength("references_citations", i.ReferencesCitations, MaxTextLength); err != nil {
		return err
	}
	return checkLength("notes", i.Notes, MaxTextLength)
}

// ObservingSystem is one observing system a respondent reports on.
type ObservingSystem struct {
	id         int64
	responseID int64
	name       string
	info       ObservingSystemInfo
	details    ObservingSystemDetails
}

// NewObservingSystem validates and creates an unsaved ObservingSystem.
// A nil details value is treated as Other.
func NewObservingSystem(responseID int64, name string, details ObservingSystemDetails, info ObservingSystemInfo) (ObservingSystem, error) {
	if responseID == 0 {
		return ObservingSystem{}, ErrMissingResponse
	}
	if err := checkName(name); err != nil {
		return ObservingSystem{}, fmt.Errorf("observing system: %w", err)
	}
	if details == nil {
		details = Other{}
	}
	if err := details.validate(); err != nil {
		return ObservingSystem{}, fmt.Errorf("observing system %q: %w", name, err)
	}
	if err := info.validate(); err != nil {
		return ObservingSystem{}, fmt.Errorf("observing system %q: %w", name, err)
	}
	return ObservingSystem{
		responseID: responseID,
		name:       name,
		info:       info,
		details:    details,
	}, nil
}

// ReconstructObservingSystem reconstructs an ObservingSystem from persistence.
func ReconstructObservingSystem(id, responseID int64, name string, details ObservingSystemDetails, info ObservingSystemInfo) ObservingSystem {
	if details == nil {
		details = Other{}
	}
	return ObservingSystem{
		id:         id,
		responseID: responseID,
		name:       name,
		info:       info,
		details:    details,
	}
}

// ID returns the observing system id.
func (o ObservingSystem) ID() int64 { return o.id }

// ResponseID returns the owning response id.
func (o ObservingSystem) ResponseID() int64 { return o.responseID }

// Name returns the observing system name.
func (o ObservingSystem) Name() string { return o.name }

// Info returns the common attributes.
func (o ObservingSystem) Info() ObservingSystemInfo { return o.info }

// Details returns the type-specific payload.
func (o ObservingSystem) Details() ObservingSystemDetails { return o.details }

// Type returns the discriminator, always derived from the details.
func (o ObservingSystem) Type() ObservingSystemType { return o.details.Type() }

// Observational returns the observational payload, if this is an observational system.
func (o ObservingSystem) Observational() (Observational, bool) {
	d, ok := o.details.(Observational)
	return d, ok
}

// Research returns the research payload, if this is a research system.
func (o ObservingSystem) Research() (Research, bool) {
	d, ok := o.details.(Research)
	return d, ok
}

// WithID returns a copy with the given id.
func (o ObservingSystem) WithID(id int64) ObservingSystem {
	o.id = id
	return o
}
