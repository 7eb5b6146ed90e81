package survey

import "fmt"

// Assessment is the rating payload shared by the weighted associations.
type Assessment struct {
	contribution       Rating
	satisfaction       Rating
	rationale          *string
	neededImprovements *string
}

// NewAssessment validates and creates an Assessment.
// Rationale and needed improvements are optional.
func NewAssessment(contribution, satisfaction Rating, rationale, neededImprovements *string) (Assessment, error) {
	if err := checkOptionalText("rationale", rationale); err != nil {
		return Assessment{}, err
	}
	if err := checkOptionalText("needed_improvements", neededImprovements); err != nil {
		return Assessment{}, err
	}
	return Assessment{
		contribution:       contribution,
		satisfaction:       satisfaction,
		rationale:          copyString(rationale),
		neededImprovements: copyString(neededImprovements),
	}, nil
}

// Contribution returns how much the upstream entity contributes downstream.
func (a Assessment) Contribution() Rating { return a.contribution }

// Satisfaction returns the satisfaction rating.
func (a Assessment) Satisfaction() Rating { return a.satisfaction }

// Rationale returns the optional rationale.
func (a Assessment) Rationale() *string { return copyString(a.rationale) }

// NeededImprovements returns the optional needed-improvements text.
func (a Assessment) NeededImprovements() *string { return copyString(a.neededImprovements) }

// ObservingSystemDataProduct links an observing system to a data product it feeds.
type ObservingSystemDataProduct struct {
	observingSystemID int64
	dataProductID     int64
	assessment        Assessment
}

// NewObservingSystemDataProduct creates the link. Both ids must be set.
func NewObservingSystemDataProduct(observingSystemID, dataProductID int64, assessment Assessment) (ObservingSystemDataProduct, error) {
	if observingSystemID == 0 || dataProductID == 0 {
		return ObservingSystemDataProduct{}, fmt.Errorf("observing system data product: both ids are required")
	}
	return ObservingSystemDataProduct{
		observingSystemID: observingSystemID,
		dataProductID:     dataProductID,
		assessment:        assessment,
	}, nil
}

// ReconstructObservingSystemDataProduct reconstructs the link from persistence.
func ReconstructObservingSystemDataProduct(observingSystemID, dataProductID int64, assessment Assessment) ObservingSystemDataProduct {
	return ObservingSystemDataProduct{
		observingSystemID: observingSystemID,
		dataProductID:     dataProductID,
		assessment:        assessment,
	}
}

// ObservingSystemID returns the observing system id.
func (l ObservingSystemDataProduct) ObservingSystemID() int64 { return l.observingSystemID }

// DataProductID returns the data product id.
func (l ObservingSystemDataProduct) DataProductID() int64 { return l.dataProductID }

// Assessment returns the ratings and comments.
func (l ObservingSystemDataProduct) Assessment() Assessment { return l.assessment }

// DataProductApplication links a data product to an application it serves.
type DataProductApplication struct {
	dataProductID int64
	applicationID int64
	assessment    Assessment
}

// NewDataProductApplication creates the link. Both ids must be set.
func NewDataProductApplication(dataProductID, applicationID int64, assessment Assessment) (DataProductApplication, error) {
	if dataProductID == 0 || applicationID == 0 {
		return DataProductApplication{}, fmt.Errorf("data product application: both ids are required")
	}
	return DataProductApplication{
		dataProductID: dataProductID,
		applicationID: applicationID,
		assessment:    assessment,
	}, nil
}

// ReconstructDataProductApplication reconstructs the link from persistence.
func ReconstructDataProductApplication(dataProductID, applicationID int64, assessment Assessment) DataProductApplication {
	return DataProductApplication{
		dataProductID: dataProductID,
		applicationID: applicationID,
		assessment:    assessment,
	}
}

// DataProductID returns the data product id.
func (l DataProductApplication) DataProductID() int64 { return l.dataProductID }

// ApplicationID returns the application id.
func (l DataProductApplication) ApplicationID() int64 { return l.applicationID }

// Assessment returns the ratings and comments.
func (l DataProductApplication) Assessment() Assessment { return l.assessment }

// ApplicationSocietalBenefitArea tags an application with a societal benefit area.
type ApplicationSocietalBenefitArea struct {
	applicationID int64
	areaID        string
}

// NewApplicationSocietalBenefitArea creates the link.
func NewApplicationSocietalBenefitArea(applicationID int64, areaID string) (ApplicationSocietalBenefitArea, error) {
	if applicationID == 0 {
		return ApplicationSocietalBenefitArea{}, fmt.Errorf("application societal benefit area: application id is required")
	}
	if areaID == "" {
		return ApplicationSocietalBenefitArea{}, ErrMissingSocietalBenefitArea
	}
	return ApplicationSocietalBenefitArea{applicationID: applicationID, areaID: areaID}, nil
}

// ApplicationID returns the application id.
func (l ApplicationSocietalBenefitArea) ApplicationID() int64 { return l.applicationID }

// AreaID returns the societal benefit area id.
func (l ApplicationSocietalBenefitArea) AreaID() string { return l.areaID }

// ReconstructApplicationSocietalBenefitArea reconstructs the link from persistence.
func ReconstructApplicationSocietalBenefitArea(applicationID int64, areaID string) ApplicationSocietalBenefitArea {
	return ApplicationSocietalBenefitArea{applicationID: applicationID, areaID: areaID}
}

// ReconstructAssessment reconstructs an Assessment from persistence without validation.
func ReconstructAssessment(contribution, satisfaction Rating, rationale, neededImprovements *string) Assessment {
	return Assessment{
		contribution:       contribution,
		satisfaction:       satisfaction,
		rationale:          copyString(rationale),
		neededImprovements: copyString(neededImprovements),
	}
}
