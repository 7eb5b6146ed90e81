package persistence

import (
	"context"
	"fmt"

	"github.com/nsidc/usaon-vta-survey/domain/survey"
	"github.com/nsidc/usaon-vta-survey/internal/database"
)

// ObservingSystemDataProductStore implements survey.ObservingSystemDataProductStore using GORM.
type ObservingSystemDataProductStore struct {
	database.Repository[survey.ObservingSystemDataProduct, ObservingSystemDataProductModel]
}

// NewObservingSystemDataProductStore creates a new ObservingSystemDataProductStore.
func NewObservingSystemDataProductStore(db database.Database) ObservingSystemDataProductStore {
	return ObservingSystemDataProductStore{
		Repository: database.NewRepository[survey.ObservingSystemDataProduct, ObservingSystemDataProductModel](
			db, ObservingSystemDataProductMapper{}, "observing system data product",
		),
	}
}

// contributingDataProductRow is one row of the observing system to data product join.
type contributingDataProductRow struct {
	ID                                             int64
	Name                                           string
	ResponseID                                     int64
	SatisfactionRating                             int16
	ObservingSystemContributionToDataProductRating int16
	LinkSatisfactionRating                         int16
	Rationale                                      *string
	NeededImprovements                             *string
}

// FindByObservingSystem returns the data products the observing system
// contributes to, joined through the association, ordered by data product id.
func (s ObservingSystemDataProductStore) FindByObservingSystem(ctx context.Context, observingSystemID int64) ([]survey.ContributingDataProduct, error) {
	var rows []contributingDataProductRow
	err := s.DB(ctx).
		Table(TableObservingSystemDataProduct+" AS l").
		Select(
			"dp.id, dp.name, dp.response_id, dp.satisfaction_rating, "+
				"l.observing_system_contribution_to_data_product_rating, "+
				"l.satisfaction_rating AS link_satisfaction_rating, "+
				"l.rationale, l.needed_improvements",
		).
		Joins("JOIN "+TableDataProduct+" AS dp ON dp.id = l.response_data_product_id").
		Where("l.response_observing_system_id = ?", observingSystemID).
		Order("dp.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("find data products by observing system: %w", err)
	}

	mapper := DataProductMapper{}
	result := make([]survey.ContributingDataProduct, len(rows))
	for i, r := range rows {
		assessment := storedAssessment(
			r.ObservingSystemContributionToDataProductRating,
			r.LinkSatisfactionRating,
			r.Rationale,
			r.NeededImprovements,
		)
		dataProduct := mapper.ToDomain(DataProductModel{
			ID:                 r.ID,
			Name:               r.Name,
			ResponseID:         r.ResponseID,
			SatisfactionRating: r.SatisfactionRating,
		})
		result[i] = survey.NewContributingDataProduct(dataProduct, assessment)
	}
	return result, nil
}

// DataProductApplicationStore implements survey.DataProductApplicationStore using GORM.
type DataProductApplicationStore struct {
	database.Repository[survey.DataProductApplication, DataProductApplicationModel]
}

// NewDataProductApplicationStore creates a new DataProductApplicationStore.
func NewDataProductApplicationStore(db database.Database) DataProductApplicationStore {
	return DataProductApplicationStore{
		Repository: database.NewRepository[survey.DataProductApplication, DataProductApplicationModel](
			db, DataProductApplicationMapper{}, "data product application",
		),
	}
}

// ApplicationAreaStore implements survey.ApplicationAreaStore using GORM.
type ApplicationAreaStore struct {
	database.Repository[survey.ApplicationSocietalBenefitArea, ApplicationSocietalBenefitAreaModel]
}

// NewApplicationAreaStore creates a new ApplicationAreaStore.
func NewApplicationAreaStore(db database.Database) ApplicationAreaStore {
	return ApplicationAreaStore{
		Repository: database.NewRepository[survey.ApplicationSocietalBenefitArea, ApplicationSocietalBenefitAreaModel](
			db, ApplicationAreaMapper{}, "application societal benefit area",
		),
	}
}
