package persistence

import "time"

// Table names. External reporting tooling queries these directly.
const (
	TableSurvey                         = "survey"
	TableResponse                       = "response"
	TableObservingSystem                = "response_observing_system"
	TableObservingSystemObservational   = "response_observing_system_observational"
	TableObservingSystemResearch        = "response_observing_system_research"
	TableDataProduct                    = "response_data_product"
	TableApplication                    = "response_application"
	TableObservingSystemDataProduct     = "response_observing_system_data_product"
	TableDataProductApplication         = "response_data_product_application"
	TableApplicationSocietalBenefitArea = "response_application_societal_benefit_area"
	TableSocietalBenefitArea            = "societal_benefit_area"
	TableSocietalBenefitSubArea         = "societal_benefit_subarea"
	TableSocietalBenefitKeyObjective    = "societal_benefit_key_objective"
)

// SurveyModel represents a respondent's survey session.
type SurveyModel struct {
	ID               string         `gorm:"column:id;primaryKey;type:uuid"`
	ResponseID       *int64         `gorm:"column:response_id;index"`
	Response         *ResponseModel `gorm:"foreignKey:ResponseID;references:ID"`
	CreatedTimestamp time.Time      `gorm:"column:created_timestamp;not null;default:CURRENT_TIMESTAMP"`
	Notes            *string        `gorm:"column:notes;size:512"`
}

// TableName returns the table name.
func (SurveyModel) TableName() string { return TableSurvey }

// ResponseModel represents one survey submission.
type ResponseModel struct {
	ID               int64     `gorm:"column:id;primaryKey;autoIncrement"`
	CreatedTimestamp time.Time `gorm:"column:created_timestamp;not null;default:CURRENT_TIMESTAMP"`
	UpdatedTimestamp time.Time `gorm:"column:updated_timestamp;not null;default:CURRENT_TIMESTAMP"`
}

// TableName returns the table name.
func (ResponseModel) TableName() string { return TableResponse }

// ObservingSystemModel is the base row of every observing system.
// The type column selects which subtype table, if any, extends it.
type ObservingSystemModel struct {
	ID                  int64          `gorm:"column:id;primaryKey;autoIncrement"`
	Name                string         `gorm:"column:name;not null;size:256;uniqueIndex:uq_response_observing_system_name_response"`
	ResponseID          int64          `gorm:"column:response_id;not null;uniqueIndex:uq_response_observing_system_name_response"`
	Response            *ResponseModel `gorm:"foreignKey:ResponseID;references:ID"`
	Type                string         `gorm:"column:type;not null;size:16;check:chk_response_observing_system_type,type IN ('observational','research','other')"`
	URL                 string         `gorm:"column:url;not null;size:256"`
	AuthorName          string         `gorm:"column:author_name;not null;size:256"`
	AuthorEmail         string         `gorm:"column:author_email;not null;size:256"`
	FundingCountry      string         `gorm:"column:funding_country;not null;size:256"`
	FundingAgency       string         `gorm:"column:funding_agency;not null;size:256"`
	ReferencesCitations string         `gorm:"column:references_citations;not null;size:512"`
	Notes               string         `gorm:"column:notes;not null;size:512"`
}

// TableName returns the table name.
func (ObservingSystemModel) TableName() string { return TableObservingSystem }

// ObservingSystemObservationalModel extends an observational observing system.
type ObservingSystemObservationalModel struct {
	ObservingSystemID int64                 `gorm:"column:response_observing_system_id;primaryKey;autoIncrement:false"`
	ObservingSystem   *ObservingSystemModel `gorm:"foreignKey:ObservingSystemID;references:ID"`
	Platform          string                `gorm:"column:platform;not null;size:256"`
	Sensor            string                `gorm:"column:sensor;not null;size:256"`
}

// TableName returns the table name.
func (ObservingSystemObservationalModel) TableName() string {
	return TableObservingSystemObservational
}

// ObservingSystemResearchModel extends a research observing system.
type ObservingSystemResearchModel struct {
	ObservingSystemID   int64                 `gorm:"column:response_observing_system_id;primaryKey;autoIncrement:false"`
	ObservingSystem     *ObservingSystemModel `gorm:"foreignKey:ObservingSystemID;references:ID"`
	IntermediateProduct string                `gorm:"column:intermediate_product;not null;size:256"`
}

// TableName returns the table name.
func (ObservingSystemResearchModel) TableName() string { return TableObservingSystemResearch }

// DataProductModel represents a reported data product.
type DataProductModel struct {
	ID                 int64          `gorm:"column:id;primaryKey;autoIncrement"`
	Name               string         `gorm:"column:name;not null;size:256;uniqueIndex:uq_response_data_product_name_response"`
	ResponseID         int64          `gorm:"column:response_id;not null;uniqueIndex:uq_response_data_product_name_response"`
	Response           *ResponseModel `gorm:"foreignKey:ResponseID;references:ID"`
	SatisfactionRating int16          `gorm:"column:satisfaction_rating;not null;check:chk_response_data_product_satisfaction,satisfaction_rating BETWEEN 0 AND 100"`
}

// TableName returns the table name.
func (DataProductModel) TableName() string { return TableDataProduct }

// ApplicationModel represents a reported application.
type ApplicationModel struct {
	ID         int64          `gorm:"column:id;primaryKey;autoIncrement"`
	Name       string         `gorm:"column:name;not null;size:256;uniqueIndex:uq_response_application_name_response"`
	ResponseID int64          `gorm:"column:response_id;not null;uniqueIndex:uq_response_application_name_response"`
	Response   *ResponseModel `gorm:"foreignKey:ResponseID;references:ID"`
}

// TableName returns the table name.
func (ApplicationModel) TableName() string { return TableApplication }

// ObservingSystemDataProductModel links an observing system to a data product.
type ObservingSystemDataProductModel struct {
	ObservingSystemID                              int64                 `gorm:"column:response_observing_system_id;primaryKey;autoIncrement:false"`
	ObservingSystem                                *ObservingSystemModel `gorm:"foreignKey:ObservingSystemID;references:ID"`
	DataProductID                                  int64                 `gorm:"column:response_data_product_id;primaryKey;autoIncrement:false;index"`
	DataProduct                                    *DataProductModel     `gorm:"foreignKey:DataProductID;references:ID"`
	ObservingSystemContributionToDataProductRating int16                 `gorm:"column:observing_system_contribution_to_data_product_rating;not null;check:chk_response_os_dp_contribution,observing_system_contribution_to_data_product_rating BETWEEN 0 AND 100"`
	SatisfactionRating                             int16                 `gorm:"column:satisfaction_rating;not null;check:chk_response_os_dp_satisfaction,satisfaction_rating BETWEEN 0 AND 100"`
	Rationale                                      *string               `gorm:"column:rationale;size:512"`
	NeededImprovements                             *string               `gorm:"column:needed_improvements;size:512"`
}

// TableName returns the table name.
func (ObservingSystemDataProductModel) TableName() string {
	return TableObservingSystemDataProduct
}

// DataProductApplicationModel links a data product to an application.
type DataProductApplicationModel struct {
	DataProductID                              int64             `gorm:"column:response_data_product_id;primaryKey;autoIncrement:false"`
	DataProduct                                *DataProductModel `gorm:"foreignKey:DataProductID;references:ID"`
	ApplicationID                              int64             `gorm:"column:response_application_id;primaryKey;autoIncrement:false;index"`
	Application                                *ApplicationModel `gorm:"foreignKey:ApplicationID;references:ID"`
	DataProductContributionToApplicationRating int16             `gorm:"column:data_product_contribution_to_application_rating;not null;check:chk_response_dp_app_contribution,data_product_contribution_to_application_rating BETWEEN 0 AND 100"`
	SatisfactionRating                         int16             `gorm:"column:satisfaction_rating;not null;check:chk_response_dp_app_satisfaction,satisfaction_rating BETWEEN 0 AND 100"`
	Rationale                                  *string           `gorm:"column:rationale;size:512"`
	NeededImprovements                         *string           `gorm:"column:needed_improvements;size:512"`
}

// TableName returns the table name.
func (DataProductApplicationModel) TableName() string { return TableDataProductApplication }

// ApplicationSocietalBenefitAreaModel tags an application with a societal benefit area.
type ApplicationSocietalBenefitAreaModel struct {
	ApplicationID int64                     `gorm:"column:response_application_id;primaryKey;autoIncrement:false"`
	Application   *ApplicationModel         `gorm:"foreignKey:ApplicationID;references:ID"`
	AreaID        string                    `gorm:"column:societal_benefit_area_id;primaryKey;size:256;index"`
	Area          *SocietalBenefitAreaModel `gorm:"foreignKey:AreaID;references:ID"`
}

// TableName returns the table name.
func (ApplicationSocietalBenefitAreaModel) TableName() string {
	return TableApplicationSocietalBenefitArea
}

// SocietalBenefitAreaModel is the top level of the taxonomy.
type SocietalBenefitAreaModel struct {
	ID string `gorm:"column:id;primaryKey;size:256"`
}

// TableName returns the table name.
func (SocietalBenefitAreaModel) TableName() string { return TableSocietalBenefitArea }

// SocietalBenefitSubAreaModel belongs to one area.
type SocietalBenefitSubAreaModel struct {
	ID     string                    `gorm:"column:id;primaryKey;size:256"`
	AreaID string                    `gorm:"column:societal_benefit_area_id;not null;size:256;index"`
	Area   *SocietalBenefitAreaModel `gorm:"foreignKey:AreaID;references:ID"`
}

// TableName returns the table name.
func (SocietalBenefitSubAreaModel) TableName() string { return TableSocietalBenefitSubArea }

// SocietalBenefitKeyObjectiveModel belongs to one subarea.
type SocietalBenefitKeyObjectiveModel struct {
	ID        string                       `gorm:"column:id;primaryKey;size:256"`
	SubAreaID string                       `gorm:"column:societal_benefit_subarea_id;not null;size:256;index"`
	SubArea   *SocietalBenefitSubAreaModel `gorm:"foreignKey:SubAreaID;references:ID"`
}

// TableName returns the table name.
func (SocietalBenefitKeyObjectiveModel) TableName() string {
	return TableSocietalBenefitKeyObjective
}
