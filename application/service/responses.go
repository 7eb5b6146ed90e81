package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/nsidc/usaon-vta-survey/domain/query"
	"github.com/nsidc/usaon-vta-survey/domain/survey"
	"github.com/nsidc/usaon-vta-survey/internal/database"
)

// ResponseContents is everything recorded under one response.
type ResponseContents struct {
	Response         survey.Response
	ObservingSystems []survey.ObservingSystem
	DataProducts     []survey.DataProduct
	Applications     []survey.Application
	SystemProducts   []survey.ObservingSystemDataProduct
	ProductApps      []survey.DataProductApplication
	ApplicationAreas []survey.ApplicationSocietalBenefitArea
}

// DeleteSummary counts the rows removed by a response deletion.
type DeleteSummary struct {
	ApplicationAreas int64
	ProductApps      int64
	SystemProducts   int64
	ObservingSystems int64
	DataProducts     int64
	Applications     int64
	DetachedSurveys  int64
}

// Responses reads and deletes whole responses.
type Responses struct {
	db     database.Database
	stores Stores
	clock  func() time.Time
	closed *atomic.Bool
	logger *slog.Logger
}

// NewResponses creates a new Responses service. closed may be nil.
func NewResponses(db database.Database, stores Stores, closed *atomic.Bool, logger *slog.Logger) *Responses {
	return &Responses{
		db:     db,
		stores: stores,
		clock:  func() time.Time { return time.Now().UTC() },
		closed: closed,
		logger: logger,
	}
}

// Get returns the response and every entity and association recorded under it.
func (s *Responses) Get(ctx context.Context, responseID int64) (ResponseContents, error) {
	if err := checkOpen(s.closed); err != nil {
		return ResponseContents{}, err
	}
	response, err := s.stores.Responses.Get(ctx, responseID)
	if err != nil {
		return ResponseContents{}, fmt.Errorf("get response: %w", err)
	}
	contents := ResponseContents{Response: response}

	byResponse := survey.WithResponseID(responseID)
	if contents.ObservingSystems, err = s.stores.ObservingSystems.Find(ctx, byResponse); err != nil {
		return ResponseContents{}, err
	}
	if contents.DataProducts, err = s.stores.DataProducts.Find(ctx, byResponse); err != nil {
		return ResponseContents{}, err
	}
	if contents.Applications, err = s.stores.Applications.Find(ctx, byResponse); err != nil {
		return ResponseContents{}, err
	}

	if ids := observingSystemIDs(contents.ObservingSystems); len(ids) > 0 {
		if contents.SystemProducts, err = s.stores.SystemProducts.Find(ctx, survey.WithObservingSystemIDIn(ids)); err != nil {
			return ResponseContents{}, err
		}
	}
	if ids := dataProductIDs(contents.DataProducts); len(ids) > 0 {
		if contents.ProductApps, err = s.stores.ProductApps.Find(ctx, survey.WithDataProductIDIn(ids)); err != nil {
			return ResponseContents{}, err
		}
	}
	if ids := applicationIDs(contents.Applications); len(ids) > 0 {
		if contents.ApplicationAreas, err = s.stores.ApplicationAreas.Find(ctx, survey.WithApplicationIDIn(ids)); err != nil {
			return ResponseContents{}, err
		}
	}
	return contents, nil
}

// ContributingDataProducts lists the data products an observing system
// contributes to, with the association ratings.
func (s *Responses) ContributingDataProducts(ctx context.Context, observingSystemID int64) ([]survey.ContributingDataProduct, error) {
	if err := checkOpen(s.closed); err != nil {
		return nil, err
	}
	return s.stores.SystemProducts.FindByObservingSystem(ctx, observingSystemID)
}

// Delete removes a response and everything recorded under it in one
// transaction. Associations go first, then entities, then the response.
// Surveys that pointed at the response are kept with no response.
func (s *Responses) Delete(ctx context.Context, responseID int64) (DeleteSummary, error) {
	if err := checkOpen(s.closed); err != nil {
		return DeleteSummary{}, err
	}
	summary, err := database.WithTransactionResult(ctx, s.db, func(ctx context.Context) (DeleteSummary, error) {
		var summary DeleteSummary
		if _, err := s.stores.Responses.Get(ctx, responseID); err != nil {
			return summary, fmt.Errorf("get response: %w", err)
		}

		byResponse := survey.WithResponseID(responseID)
		systems, err := s.stores.ObservingSystems.IDs(ctx, byResponse)
		if err != nil {
			return summary, err
		}
		products, err := s.stores.DataProducts.Find(ctx, byResponse)
		if err != nil {
			return summary, err
		}
		applications, err := s.stores.Applications.Find(ctx, byResponse)
		if err != nil {
			return summary, err
		}

		if ids := applicationIDs(applications); len(ids) > 0 {
			if summary.ApplicationAreas, err = s.stores.ApplicationAreas.DeleteBy(ctx, survey.WithApplicationIDIn(ids)); err != nil {
				return summary, err
			}
			if summary.ProductApps, err = s.stores.ProductApps.DeleteBy(ctx, survey.WithApplicationIDIn(ids)); err != nil {
				return summary, err
			}
		}
		if ids := dataProductIDs(products); len(ids) > 0 {
			n, err := s.stores.ProductApps.DeleteBy(ctx, survey.WithDataProductIDIn(ids))
			if err != nil {
				return summary, err
			}
			summary.ProductApps += n
		}
		if len(systems) > 0 {
			if summary.SystemProducts, err = s.stores.SystemProducts.DeleteBy(ctx, survey.WithObservingSystemIDIn(systems)); err != nil {
				return summary, err
			}
		}
		if len(systems) > 0 {
			if summary.ObservingSystems, err = s.stores.ObservingSystems.DeleteBy(ctx, query.WithIDIn(systems)); err != nil {
				return summary, err
			}
		}
		if len(products) > 0 {
			if summary.DataProducts, err = s.stores.DataProducts.DeleteBy(ctx, byResponse); err != nil {
				return summary, err
			}
		}
		if len(applications) > 0 {
			if summary.Applications, err = s.stores.Applications.DeleteBy(ctx, byResponse); err != nil {
				return summary, err
			}
		}
		if summary.DetachedSurveys, err = s.stores.Surveys.DetachResponse(ctx, responseID); err != nil {
			return summary, err
		}
		if err := s.stores.Responses.Delete(ctx, responseID); err != nil {
			return summary, fmt.Errorf("delete response: %w", err)
		}
		return summary, nil
	})
	if err != nil {
		s.logger.WarnContext(ctx, "response delete failed", slog.Int64("response_id", responseID), slog.Any("error", err))
		return DeleteSummary{}, err
	}

	s.logger.InfoContext(ctx, "response deleted",
		slog.Int64("response_id", responseID),
		slog.Int64("observing_systems", summary.ObservingSystems),
		slog.Int64("data_products", summary.DataProducts),
		slog.Int64("applications", summary.Applications),
		slog.Int64("detached_surveys", summary.DetachedSurveys),
	)
	return summary, nil
}

// DeleteObservingSystem removes one observing system, its data product links
// and its subtype row.
func (s *Responses) DeleteObservingSystem(ctx context.Context, observingSystemID int64) error {
	if err := checkOpen(s.closed); err != nil {
		return err
	}
	err := database.WithTransaction(ctx, s.db, func(ctx context.Context) error {
		responseID, err := s.stores.ObservingSystems.ResponseIDOf(ctx, observingSystemID)
		if err != nil {
			return fmt.Errorf("get observing system: %w", err)
		}
		if _, err := s.stores.SystemProducts.DeleteBy(ctx, survey.WithObservingSystemID(observingSystemID)); err != nil {
			return err
		}
		if _, err := s.stores.ObservingSystems.DeleteBy(ctx, query.WithID(observingSystemID)); err != nil {
			return err
		}
		return s.stores.Responses.Touch(ctx, responseID, s.clock())
	})
	if err != nil {
		return err
	}
	s.logger.DebugContext(ctx, "observing system deleted", slog.Int64("id", observingSystemID))
	return nil
}

func dataProductIDs(products []survey.DataProduct) []int64 {
	ids := make([]int64, len(products))
	for i, d := range products {
		ids[i] = d.ID()
	}
	return ids
}

func applicationIDs(applications []survey.Application) []int64 {
	ids := make([]int64, len(applications))
	for i, a := range applications {
		ids[i] = a.ID()
	}
	return ids
}

func observingSystemIDs(systems []survey.ObservingSystem) []int64 {
	ids := make([]int64, len(systems))
	for i, o := range systems {
		ids[i] = o.ID()
	}
	return ids
}
