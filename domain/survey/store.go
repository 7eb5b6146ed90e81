package survey

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/nsidc/usaon-vta-survey/domain/query"
)

// SurveyStore persists survey sessions.
type SurveyStore interface {
	Create(ctx context.Context, s Survey) (Survey, error)
	Get(ctx context.Context, id uuid.UUID) (Survey, error)
	Find(ctx context.Context, options ...query.Option) ([]Survey, error)
	// LinkResponse sets the response of a survey that has none yet.
	LinkResponse(ctx context.Context, id uuid.UUID, responseID int64) (Survey, error)
	// DetachResponse clears response_id on every survey linked to the response.
	DetachResponse(ctx context.Context, responseID int64) (int64, error)
}

// ResponseStore persists responses.
type ResponseStore interface {
	Create(ctx context.Context, r Response) (Response, error)
	Get(ctx context.Context, id int64) (Response, error)
	Find(ctx context.Context, options ...query.Option) ([]Response, error)
	// Touch advances updated_timestamp to at, never backwards.
	Touch(ctx context.Context, id int64, at time.Time) error
	Delete(ctx context.Context, id int64) error
}

// ObservingSystemStore persists observing systems together with their subtype rows.
type ObservingSystemStore interface {
	Create(ctx context.Context, o ObservingSystem) (ObservingSystem, error)
	Get(ctx context.Context, id int64) (ObservingSystem, error)
	Find(ctx context.Context, options ...query.Option) ([]ObservingSystem, error)
	Count(ctx context.Context, options ...query.Option) (int64, error)
	// IDs returns the ids of the matching systems without reading subtype rows,
	// so rows that fail the subtype check can still be removed.
	IDs(ctx context.Context, options ...query.Option) ([]int64, error)
	// ResponseIDOf returns the response an observing system belongs to.
	ResponseIDOf(ctx context.Context, id int64) (int64, error)
	// DeleteBy removes the matching systems, subtype rows first.
	DeleteBy(ctx context.Context, options ...query.Option) (int64, error)
}

// DataProductStore persists data products.
type DataProductStore interface {
	Create(ctx context.Context, d DataProduct) (DataProduct, error)
	Get(ctx context.Context, id int64) (DataProduct, error)
	Find(ctx context.Context, options ...query.Option) ([]DataProduct, error)
	Count(ctx context.Context, options ...query.Option) (int64, error)
	DeleteBy(ctx context.Context, options ...query.Option) (int64, error)
}

// ApplicationStore persists applications.
type ApplicationStore interface {
	Create(ctx context.Context, a Application) (Application, error)
	Get(ctx context.Context, id int64) (Application, error)
	Find(ctx context.Context, options ...query.Option) ([]Application, error)
	Count(ctx context.Context, options ...query.Option) (int64, error)
	DeleteBy(ctx context.Context, options ...query.Option) (int64, error)
}

// ContributingDataProduct is a data product reached from an observing system
// through their association, with the association's ratings.
type ContributingDataProduct struct {
	dataProduct DataProduct
	assessment  Assessment
}

// NewContributingDataProduct pairs a data product with the association ratings.
func NewContributingDataProduct(d DataProduct, a Assessment) ContributingDataProduct {
	return ContributingDataProduct{dataProduct: d, assessment: a}
}

// DataProduct returns the data product.
func (c ContributingDataProduct) DataProduct() DataProduct { return c.dataProduct }

// Assessment returns the association ratings.
func (c ContributingDataProduct) Assessment() Assessment { return c.assessment }

// ObservingSystemDataProductStore persists observing system to data product links.
type ObservingSystemDataProductStore interface {
	Create(ctx context.Context, l ObservingSystemDataProduct) (ObservingSystemDataProduct, error)
	Find(ctx context.Context, options ...query.Option) ([]ObservingSystemDataProduct, error)
	// FindByObservingSystem joins through the association to the data products.
	FindByObservingSystem(ctx context.Context, observingSystemID int64) ([]ContributingDataProduct, error)
	DeleteBy(ctx context.Context, options ...query.Option) (int64, error)
}

// DataProductApplicationStore persists data product to application links.
type DataProductApplicationStore interface {
	Create(ctx context.Context, l DataProductApplication) (DataProductApplication, error)
	Find(ctx context.Context, options ...query.Option) ([]DataProductApplication, error)
	DeleteBy(ctx context.Context, options ...query.Option) (int64, error)
}

// ApplicationAreaStore persists application to societal benefit area links.
type ApplicationAreaStore interface {
	Create(ctx context.Context, l ApplicationSocietalBenefitArea) (ApplicationSocietalBenefitArea, error)
	Find(ctx context.Context, options ...query.Option) ([]ApplicationSocietalBenefitArea, error)
	DeleteBy(ctx context.Context, options ...query.Option) (int64, error)
}
