package persistence

import (
	"context"

	"github.com/nsidc/usaon-vta-survey/domain/query"
	"github.com/nsidc/usaon-vta-survey/domain/survey"
	"github.com/nsidc/usaon-vta-survey/internal/database"
)

// DataProductStore implements survey.DataProductStore using GORM.
type DataProductStore struct {
	database.Repository[survey.DataProduct, DataProductModel]
}

// NewDataProductStore creates a new DataProductStore.
func NewDataProductStore(db database.Database) DataProductStore {
	return DataProductStore{
		Repository: database.NewRepository[survey.DataProduct, DataProductModel](db, DataProductMapper{}, "data product"),
	}
}

// Get returns the data product with the given id.
func (s DataProductStore) Get(ctx context.Context, id int64) (survey.DataProduct, error) {
	return s.FindOne(ctx, query.WithID(id))
}

// ApplicationStore implements survey.ApplicationStore using GORM.
type ApplicationStore struct {
	database.Repository[survey.Application, ApplicationModel]
}

// NewApplicationStore creates a new ApplicationStore.
func NewApplicationStore(db database.Database) ApplicationStore {
	return ApplicationStore{
		Repository: database.NewRepository[survey.Application, ApplicationModel](db, ApplicationMapper{}, "application"),
	}
}

// Get returns the application with the given id.
func (s ApplicationStore) Get(ctx context.Context, id int64) (survey.Application, error) {
	return s.FindOne(ctx, query.WithID(id))
}
