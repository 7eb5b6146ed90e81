package persistence

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/nsidc/usaon-vta-survey/domain/survey"
	"github.com/nsidc/usaon-vta-survey/domain/taxonomy"
)

// SurveyMapper maps between domain Survey and persistence SurveyModel.
type SurveyMapper struct{}

// ToDomain converts a SurveyModel built by ToModel back to a domain Survey.
// Rows read from the database go through Parse instead.
func (m SurveyMapper) ToDomain(e SurveyModel) survey.Survey {
	sv, _ := m.Parse(e)
	return sv
}

// Parse converts a stored SurveyModel to a domain Survey, failing with
// ErrInvalidSurveyID when the id column does not hold a UUID.
func (m SurveyMapper) Parse(e SurveyModel) (survey.Survey, error) {
	id, err := uuid.Parse(e.ID)
	if err != nil {
		return survey.Survey{}, fmt.Errorf("%w: %q", ErrInvalidSurveyID, e.ID)
	}
	var responseID int64
	if e.ResponseID != nil {
		responseID = *e.ResponseID
	}
	return survey.ReconstructSurvey(id, responseID, e.CreatedTimestamp, e.Notes), nil
}

// ToModel converts a domain Survey to a SurveyModel.
func (m SurveyMapper) ToModel(s survey.Survey) SurveyModel {
	var responseID *int64
	if s.HasResponse() {
		id := s.ResponseID()
		responseID = &id
	}
	return SurveyModel{
		ID:               s.ID().String(),
		ResponseID:       responseID,
		CreatedTimestamp: s.CreatedAt().UTC(),
		Notes:            s.Notes(),
	}
}

// ResponseMapper maps between domain Response and persistence ResponseModel.
type ResponseMapper struct{}

// ToDomain converts a ResponseModel to a domain Response.
func (m ResponseMapper) ToDomain(e ResponseModel) survey.Response {
	return survey.ReconstructResponse(e.ID, e.CreatedTimestamp, e.UpdatedTimestamp)
}

// ToModel converts a domain Response to a ResponseModel.
func (m ResponseMapper) ToModel(r survey.Response) ResponseModel {
	return ResponseModel{
		ID:               r.ID(),
		CreatedTimestamp: r.CreatedAt().UTC(),
		UpdatedTimestamp: r.UpdatedAt().UTC(),
	}
}

// observingSystemRows is the base row plus whichever subtype rows exist for it.
type observingSystemRows struct {
	base          ObservingSystemModel
	observational *ObservingSystemObservationalModel
	research      *ObservingSystemResearchModel
}

// ObservingSystemMapper maps an observing system across its base and subtype tables.
type ObservingSystemMapper struct{}

// ToDomain converts stored rows to a domain ObservingSystem. It fails with
// survey.ErrSubtypeMismatch when the discriminator and the subtype rows disagree.
func (m ObservingSystemMapper) ToDomain(rows observingSystemRows) (survey.ObservingSystem, error) {
	e := rows.base
	t, err := survey.ParseObservingSystemType(e.Type)
	if err != nil {
		return survey.ObservingSystem{}, fmt.Errorf("observing system %d: %w", e.ID, err)
	}
	if err := checkSubtypeRows(e.ID, t, rows.observational != nil, rows.research != nil); err != nil {
		return survey.ObservingSystem{}, err
	}

	var details survey.ObservingSystemDetails
	switch t {
	case survey.ObservingSystemTypeObservational:
		details = survey.Observational{Platform: rows.observational.Platform, Sensor: rows.observational.Sensor}
	case survey.ObservingSystemTypeResearch:
		details = survey.Research{IntermediateProduct: rows.research.IntermediateProduct}
	default:
		details = survey.Other{}
	}

	info := survey.ObservingSystemInfo{
		URL:                 e.URL,
		AuthorName:          e.AuthorName,
		AuthorEmail:         e.AuthorEmail,
		FundingCountry:      e.FundingCountry,
		FundingAgency:       e.FundingAgency,
		ReferencesCitations: e.ReferencesCitations,
		Notes:               e.Notes,
	}
	return survey.ReconstructObservingSystem(e.ID, e.ResponseID, e.Name, details, info), nil
}

// ToModel converts a domain ObservingSystem to its base row and, for
// observational and research systems, its subtype row.
func (m ObservingSystemMapper) ToModel(o survey.ObservingSystem) observingSystemRows {
	info := o.Info()
	rows := observingSystemRows{
		base: ObservingSystemModel{
			ID:                  o.ID(),
			Name:                o.Name(),
			ResponseID:          o.ResponseID(),
			Type:                o.Type().String(),
			URL:                 info.URL,
			AuthorName:          info.AuthorName,
			AuthorEmail:         info.AuthorEmail,
			FundingCountry:      info.FundingCountry,
			FundingAgency:       info.FundingAgency,
			ReferencesCitations: info.ReferencesCitations,
			Notes:               info.Notes,
		},
	}
	switch d := o.Details().(type) {
	case survey.Observational:
		rows.observational = &ObservingSystemObservationalModel{
			ObservingSystemID: o.ID(),
			Platform:          d.Platform,
			Sensor:            d.Sensor,
		}
	case survey.Research:
		rows.research = &ObservingSystemResearchModel{
			ObservingSystemID:   o.ID(),
			IntermediateProduct: d.IntermediateProduct,
		}
	}
	return rows
}

// checkSubtypeRows enforces: other has no subtype row, observational has only
// an observational row, research has only a research row.
func checkSubtypeRows(id int64, t survey.ObservingSystemType, hasObservational, hasResearch bool) error {
	var ok bool
	switch t {
	case survey.ObservingSystemTypeObservational:
		ok = hasObservational && !hasResearch
	case survey.ObservingSystemTypeResearch:
		ok = hasResearch && !hasObservational
	default:
		ok = !hasObservational && !hasResearch
	}
	if !ok {
		return fmt.Errorf("%w: observing system %d has type %s (observational row: %t, research row: %t)",
			survey.ErrSubtypeMismatch, id, t, hasObservational, hasResearch)
	}
	return nil
}

// DataProductMapper maps between domain DataProduct and persistence DataProductModel.
type DataProductMapper struct{}

// ToDomain converts a DataProductModel to a domain DataProduct.
func (m DataProductMapper) ToDomain(e DataProductModel) survey.DataProduct {
	return survey.ReconstructDataProduct(e.ID, e.ResponseID, e.Name, storedRating(e.SatisfactionRating))
}

// ToModel converts a domain DataProduct to a DataProductModel.
func (m DataProductMapper) ToModel(d survey.DataProduct) DataProductModel {
	return DataProductModel{
		ID:                 d.ID(),
		Name:               d.Name(),
		ResponseID:         d.ResponseID(),
		SatisfactionRating: d.Satisfaction().Int16(),
	}
}

// ApplicationMapper maps between domain Application and persistence ApplicationModel.
type ApplicationMapper struct{}

// ToDomain converts an ApplicationModel to a domain Application.
func (m ApplicationMapper) ToDomain(e ApplicationModel) survey.Application {
	return survey.ReconstructApplication(e.ID, e.ResponseID, e.Name)
}

// ToModel converts a domain Application to an ApplicationModel.
func (m ApplicationMapper) ToModel(a survey.Application) ApplicationModel {
	return ApplicationModel{ID: a.ID(), Name: a.Name(), ResponseID: a.ResponseID()}
}

// ObservingSystemDataProductMapper maps the observing system to data product link.
type ObservingSystemDataProductMapper struct{}

// ToDomain converts an ObservingSystemDataProductModel to a domain link.
func (m ObservingSystemDataProductMapper) ToDomain(e ObservingSystemDataProductModel) survey.ObservingSystemDataProduct {
	return survey.ReconstructObservingSystemDataProduct(
		e.ObservingSystemID,
		e.DataProductID,
		storedAssessment(e.ObservingSystemContributionToDataProductRating, e.SatisfactionRating, e.Rationale, e.NeededImprovements),
	)
}

// ToModel converts a domain link to an ObservingSystemDataProductModel.
func (m ObservingSystemDataProductMapper) ToModel(l survey.ObservingSystemDataProduct) ObservingSystemDataProductModel {
	a := l.Assessment()
	model := ObservingSystemDataProductModel{
		ObservingSystemID:  l.ObservingSystemID(),
		DataProductID:      l.DataProductID(),
		SatisfactionRating: a.Satisfaction().Int16(),
		Rationale:          a.Rationale(),
		NeededImprovements: a.NeededImprovements(),
	}
	model.ObservingSystemContributionToDataProductRating = a.Contribution().Int16()
	return model
}

// DataProductApplicationMapper maps the data product to application link.
type DataProductApplicationMapper struct{}

// ToDomain converts a DataProductApplicationModel to a domain link.
func (m DataProductApplicationMapper) ToDomain(e DataProductApplicationModel) survey.DataProductApplication {
	return survey.ReconstructDataProductApplication(
		e.DataProductID,
		e.ApplicationID,
		storedAssessment(e.DataProductContributionToApplicationRating, e.SatisfactionRating, e.Rationale, e.NeededImprovements),
	)
}

// ToModel converts a domain link to a DataProductApplicationModel.
func (m DataProductApplicationMapper) ToModel(l survey.DataProductApplication) DataProductApplicationModel {
	a := l.Assessment()
	model := DataProductApplicationModel{
		DataProductID:      l.DataProductID(),
		ApplicationID:      l.ApplicationID(),
		SatisfactionRating: a.Satisfaction().Int16(),
		Rationale:          a.Rationale(),
		NeededImprovements: a.NeededImprovements(),
	}
	model.DataProductContributionToApplicationRating = a.Contribution().Int16()
	return model
}

// ApplicationAreaMapper maps the application to societal benefit area link.
type ApplicationAreaMapper struct{}

// ToDomain converts an ApplicationSocietalBenefitAreaModel to a domain link.
func (m ApplicationAreaMapper) ToDomain(e ApplicationSocietalBenefitAreaModel) survey.ApplicationSocietalBenefitArea {
	return survey.ReconstructApplicationSocietalBenefitArea(e.ApplicationID, e.AreaID)
}

// ToModel converts a domain link to an ApplicationSocietalBenefitAreaModel.
func (m ApplicationAreaMapper) ToModel(l survey.ApplicationSocietalBenefitArea) ApplicationSocietalBenefitAreaModel {
	return ApplicationSocietalBenefitAreaModel{ApplicationID: l.ApplicationID(), AreaID: l.AreaID()}
}

// AreaMapper maps between taxonomy.Area and SocietalBenefitAreaModel.
type AreaMapper struct{}

// ToDomain converts a SocietalBenefitAreaModel to a taxonomy.Area.
func (m AreaMapper) ToDomain(e SocietalBenefitAreaModel) taxonomy.Area { return taxonomy.NewArea(e.ID) }

// ToModel converts a taxonomy.Area to a SocietalBenefitAreaModel.
func (m AreaMapper) ToModel(a taxonomy.Area) SocietalBenefitAreaModel {
	return SocietalBenefitAreaModel{ID: a.ID()}
}

// SubAreaMapper maps between taxonomy.SubArea and SocietalBenefitSubAreaModel.
type SubAreaMapper struct{}

// ToDomain converts a SocietalBenefitSubAreaModel to a taxonomy.SubArea.
func (m SubAreaMapper) ToDomain(e SocietalBenefitSubAreaModel) taxonomy.SubArea {
	return taxonomy.NewSubArea(e.ID, e.AreaID)
}

// ToModel converts a taxonomy.SubArea to a SocietalBenefitSubAreaModel.
func (m SubAreaMapper) ToModel(s taxonomy.SubArea) SocietalBenefitSubAreaModel {
	return SocietalBenefitSubAreaModel{ID: s.ID(), AreaID: s.AreaID()}
}

// KeyObjectiveMapper maps between taxonomy.KeyObjective and SocietalBenefitKeyObjectiveModel.
type KeyObjectiveMapper struct{}

// ToDomain converts a SocietalBenefitKeyObjectiveModel to a taxonomy.KeyObjective.
func (m KeyObjectiveMapper) ToDomain(e SocietalBenefitKeyObjectiveModel) taxonomy.KeyObjective {
	return taxonomy.NewKeyObjective(e.ID, e.SubAreaID)
}

// ToModel converts a taxonomy.KeyObjective to a SocietalBenefitKeyObjectiveModel.
func (m KeyObjectiveMapper) ToModel(k taxonomy.KeyObjective) SocietalBenefitKeyObjectiveModel {
	return SocietalBenefitKeyObjectiveModel{ID: k.ID(), SubAreaID: k.SubAreaID()}
}

func storedRating(v int16) survey.Rating { return survey.ReconstructRating(v) }

func storedAssessment(contribution, satisfaction int16, rationale, improvements *string) survey.Assessment {
	return survey.ReconstructAssessment(storedRating(contribution), storedRating(satisfaction), rationale, improvements)
}
