package persistence

import (
	"context"
	"fmt"

	"github.com/nsidc/usaon-vta-survey/domain/query"
	"github.com/nsidc/usaon-vta-survey/domain/survey"
	"github.com/nsidc/usaon-vta-survey/internal/database"
)

// ObservingSystemStore implements survey.ObservingSystemStore using GORM.
// Every observing system spans its base row and at most one subtype row; both
// are written in one transaction and read back together.
type ObservingSystemStore struct {
	db     database.Database
	mapper ObservingSystemMapper
}

// NewObservingSystemStore creates a new ObservingSystemStore.
func NewObservingSystemStore(db database.Database) ObservingSystemStore {
	return ObservingSystemStore{db: db}
}

// Create inserts the base row and the subtype row the discriminator calls for.
func (s ObservingSystemStore) Create(ctx context.Context, o survey.ObservingSystem) (survey.ObservingSystem, error) {
	rows := s.mapper.ToModel(o)
	if err := checkSubtypeRows(rows.base.ID, o.Type(), rows.observational != nil, rows.research != nil); err != nil {
		return survey.ObservingSystem{}, err
	}

	err := database.WithTransaction(ctx, s.db, func(ctx context.Context) error {
		session := s.db.Session(ctx)
		if err := session.Create(&rows.base).Error; err != nil {
			return fmt.Errorf("create observing system: %w", database.Classify(err))
		}
		if rows.observational != nil {
			rows.observational.ObservingSystemID = rows.base.ID
			if err := session.Create(rows.observational).Error; err != nil {
				return fmt.Errorf("create observational subtype: %w", database.Classify(err))
			}
		}
		if rows.research != nil {
			rows.research.ObservingSystemID = rows.base.ID
			if err := session.Create(rows.research).Error; err != nil {
				return fmt.Errorf("create research subtype: %w", database.Classify(err))
			}
		}
		return nil
	})
	if err != nil {
		return survey.ObservingSystem{}, err
	}
	return o.WithID(rows.base.ID), nil
}

// Get returns the observing system with the given id, subtype included.
func (s ObservingSystemStore) Get(ctx context.Context, id int64) (survey.ObservingSystem, error) {
	found, err := s.Find(ctx, query.WithID(id))
	if err != nil {
		return survey.ObservingSystem{}, err
	}
	if len(found) == 0 {
		return survey.ObservingSystem{}, fmt.Errorf("%w: observing system %d", database.ErrNotFound, id)
	}
	return found[0], nil
}

// Find returns the observing systems matching the options. Subtype rows are
// loaded in one query per subtype table and checked against each discriminator.
func (s ObservingSystemStore) Find(ctx context.Context, options ...query.Option) ([]survey.ObservingSystem, error) {
	var bases []ObservingSystemModel
	if err := database.ApplyOptions(s.db.Session(ctx), options...).Find(&bases).Error; err != nil {
		return nil, fmt.Errorf("find observing systems: %w", err)
	}
	if len(bases) == 0 {
		return []survey.ObservingSystem{}, nil
	}

	ids := make([]int64, len(bases))
	for i, b := range bases {
		ids[i] = b.ID
	}

	var observational []ObservingSystemObservationalModel
	if err := s.db.Session(ctx).Where("response_observing_system_id IN ?", ids).Find(&observational).Error; err != nil {
		return nil, fmt.Errorf("find observational subtypes: %w", err)
	}
	var research []ObservingSystemResearchModel
	if err := s.db.Session(ctx).Where("response_observing_system_id IN ?", ids).Find(&research).Error; err != nil {
		return nil, fmt.Errorf("find research subtypes: %w", err)
	}

	observationalByID := make(map[int64]*ObservingSystemObservationalModel, len(observational))
	for i := range observational {
		observationalByID[observational[i].ObservingSystemID] = &observational[i]
	}
	researchByID := make(map[int64]*ObservingSystemResearchModel, len(research))
	for i := range research {
		researchByID[research[i].ObservingSystemID] = &research[i]
	}

	result := make([]survey.ObservingSystem, 0, len(bases))
	for _, b := range bases {
		o, err := s.mapper.ToDomain(observingSystemRows{
			base:          b,
			observational: observationalByID[b.ID],
			research:      researchByID[b.ID],
		})
		if err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	return result, nil
}

// Count returns the number of observing systems matching the options.
func (s ObservingSystemStore) Count(ctx context.Context, options ...query.Option) (int64, error) {
	var count int64
	db := database.ApplyConditions(s.db.Session(ctx).Model(&ObservingSystemModel{}), options...)
	if err := db.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count observing systems: %w", err)
	}
	return count, nil
}

// IDs returns the ids of the matching observing systems. Subtype rows are not read.
func (s ObservingSystemStore) IDs(ctx context.Context, options ...query.Option) ([]int64, error) {
	var ids []int64
	db := database.ApplyConditions(s.db.Session(ctx).Model(&ObservingSystemModel{}), options...)
	if err := db.Order("id").Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("select observing systems: %w", err)
	}
	return ids, nil
}

// ResponseIDOf returns the response id stored on an observing system's base row.
func (s ObservingSystemStore) ResponseIDOf(ctx context.Context, id int64) (int64, error) {
	var responseIDs []int64
	err := s.db.Session(ctx).Model(&ObservingSystemModel{}).Where("id = ?", id).Pluck("response_id", &responseIDs).Error
	if err != nil {
		return 0, fmt.Errorf("select observing system %d: %w", id, err)
	}
	if len(responseIDs) == 0 {
		return 0, fmt.Errorf("%w: observing system %d", database.ErrNotFound, id)
	}
	return responseIDs[0], nil
}

// DeleteBy removes the matching observing systems, subtype rows before base
// rows. Association rows pointing at them must already be gone.
func (s ObservingSystemStore) DeleteBy(ctx context.Context, options ...query.Option) (int64, error) {
	if len(query.Build(options...).Conditions()) == 0 {
		return 0, fmt.Errorf("delete observing systems: refusing delete without conditions")
	}
	return database.WithTransactionResult(ctx, s.db, func(ctx context.Context) (int64, error) {
		ids, err := s.IDs(ctx, options...)
		if err != nil {
			return 0, err
		}
		if len(ids) == 0 {
			return 0, nil
		}

		session := s.db.Session(ctx)
		if err := session.Where("response_observing_system_id IN ?", ids).Delete(&ObservingSystemObservationalModel{}).Error; err != nil {
			return 0, fmt.Errorf("delete observational subtypes: %w", database.Classify(err))
		}
		if err := session.Where("response_observing_system_id IN ?", ids).Delete(&ObservingSystemResearchModel{}).Error; err != nil {
			return 0, fmt.Errorf("delete research subtypes: %w", database.Classify(err))
		}
		result := session.Where("id IN ?", ids).Delete(&ObservingSystemModel{})
		if result.Error != nil {
			return 0, fmt.Errorf("delete observing systems: %w", database.Classify(result.Error))
		}
		return result.RowsAffected, nil
	})
}
