package service

import (
	"github.com/nsidc/usaon-vta-survey/domain/survey"
	"github.com/nsidc/usaon-vta-survey/domain/taxonomy"
)

// Stores bundles the persistence collaborators the services write through.
type Stores struct {
	Surveys          survey.SurveyStore
	Responses        survey.ResponseStore
	ObservingSystems survey.ObservingSystemStore
	DataProducts     survey.DataProductStore
	Applications     survey.ApplicationStore
	SystemProducts   survey.ObservingSystemDataProductStore
	ProductApps      survey.DataProductApplicationStore
	ApplicationAreas survey.ApplicationAreaStore
	Taxonomy         taxonomy.Store
}
