package persistence

import (
	"context"
	"fmt"

	"github.com/nsidc/usaon-vta-survey/domain/query"
	"github.com/nsidc/usaon-vta-survey/domain/taxonomy"
	"github.com/nsidc/usaon-vta-survey/internal/database"
	"gorm.io/gorm/clause"
)

// TaxonomyStore implements taxonomy.Store using GORM.
type TaxonomyStore struct {
	areas         database.Repository[taxonomy.Area, SocietalBenefitAreaModel]
	subAreas      database.Repository[taxonomy.SubArea, SocietalBenefitSubAreaModel]
	keyObjectives database.Repository[taxonomy.KeyObjective, SocietalBenefitKeyObjectiveModel]
}

// NewTaxonomyStore creates a new TaxonomyStore.
func NewTaxonomyStore(db database.Database) TaxonomyStore {
	return TaxonomyStore{
		areas:         database.NewRepository[taxonomy.Area, SocietalBenefitAreaModel](db, AreaMapper{}, "societal benefit area"),
		subAreas:      database.NewRepository[taxonomy.SubArea, SocietalBenefitSubAreaModel](db, SubAreaMapper{}, "societal benefit subarea"),
		keyObjectives: database.NewRepository[taxonomy.KeyObjective, SocietalBenefitKeyObjectiveModel](db, KeyObjectiveMapper{}, "societal benefit key objective"),
	}
}

// SaveAreas inserts areas that are not yet stored.
func (s TaxonomyStore) SaveAreas(ctx context.Context, areas []taxonomy.Area) error {
	if len(areas) == 0 {
		return nil
	}
	models := make([]SocietalBenefitAreaModel, len(areas))
	for i, a := range areas {
		models[i] = s.areas.Mapper().ToModel(a)
	}
	err := s.areas.DB(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&models).Error
	if err != nil {
		return fmt.Errorf("save societal benefit areas: %w", database.Classify(err))
	}
	return nil
}

// SaveSubAreas upserts subareas. A stored subarea moves to its new parent area.
func (s TaxonomyStore) SaveSubAreas(ctx context.Context, subAreas []taxonomy.SubArea) error {
	if len(subAreas) == 0 {
		return nil
	}
	models := make([]SocietalBenefitSubAreaModel, len(subAreas))
	for i, sa := range subAreas {
		models[i] = s.subAreas.Mapper().ToModel(sa)
	}
	err := s.subAreas.DB(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"societal_benefit_area_id"}),
	}).Create(&models).Error
	if err != nil {
		return fmt.Errorf("save societal benefit subareas: %w", database.Classify(err))
	}
	return nil
}

// SaveKeyObjectives upserts key objectives. A stored objective moves to its new parent subarea.
func (s TaxonomyStore) SaveKeyObjectives(ctx context.Context, keyObjectives []taxonomy.KeyObjective) error {
	if len(keyObjectives) == 0 {
		return nil
	}
	models := make([]SocietalBenefitKeyObjectiveModel, len(keyObjectives))
	for i, k := range keyObjectives {
		models[i] = s.keyObjectives.Mapper().ToModel(k)
	}
	err := s.keyObjectives.DB(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"societal_benefit_subarea_id"}),
	}).Create(&models).Error
	if err != nil {
		return fmt.Errorf("save societal benefit key objectives: %w", database.Classify(err))
	}
	return nil
}

// AreaExists reports whether an area with the given id is stored.
func (s TaxonomyStore) AreaExists(ctx context.Context, id string) (bool, error) {
	return s.areas.Exists(ctx, query.WithCondition("id", id))
}

// Tree reads the whole taxonomy back and validates it.
func (s TaxonomyStore) Tree(ctx context.Context) (taxonomy.Tree, error) {
	areas, err := s.areas.Find(ctx, query.WithOrderAsc("id"))
	if err != nil {
		return taxonomy.Tree{}, err
	}
	subAreas, err := s.subAreas.Find(ctx, query.WithOrderAsc("id"))
	if err != nil {
		return taxonomy.Tree{}, err
	}
	keyObjectives, err := s.keyObjectives.Find(ctx, query.WithOrderAsc("id"))
	if err != nil {
		return taxonomy.Tree{}, err
	}
	tree, err := taxonomy.NewTree(areas, subAreas, keyObjectives)
	if err != nil {
		return taxonomy.Tree{}, fmt.Errorf("load taxonomy: %w", err)
	}
	return tree, nil
}
