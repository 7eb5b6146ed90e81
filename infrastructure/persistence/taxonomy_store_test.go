package persistence

import (
	"context"
	"testing"

	"github.com/nsidc/usaon-vta-survey/domain/taxonomy"
	"github.com/nsidc/usaon-vta-survey/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTree(t *testing.T) taxonomy.Tree {
	t.Helper()
	tree, err := taxonomy.NewTree(
		[]taxonomy.Area{taxonomy.NewArea("Agriculture"), taxonomy.NewArea("Water resources")},
		[]taxonomy.SubArea{
			taxonomy.NewSubArea("Crop production", "Agriculture"),
			taxonomy.NewSubArea("Flood forecasting", "Water resources"),
		},
		[]taxonomy.KeyObjective{
			taxonomy.NewKeyObjective("Drought monitoring", "Crop production"),
			taxonomy.NewKeyObjective("Yield forecasting", "Crop production"),
		},
	)
	require.NoError(t, err)
	return tree
}

func saveTree(t *testing.T, store TaxonomyStore, tree taxonomy.Tree) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, store.SaveAreas(ctx, tree.Areas()))
	require.NoError(t, store.SaveSubAreas(ctx, tree.SubAreas()))
	require.NoError(t, store.SaveKeyObjectives(ctx, tree.KeyObjectives()))
}

func TestTaxonomyStore_SaveAndTree(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	store := NewTaxonomyStore(db)

	saveTree(t, store, testTree(t))
	saveTree(t, store, testTree(t))

	tree, err := store.Tree(ctx)
	require.NoError(t, err)
	assert.Len(t, tree.Areas(), 2)
	assert.Len(t, tree.SubAreas(), 2)
	assert.Len(t, tree.KeyObjectives(), 2)
	assert.Len(t, tree.KeyObjectivesOf("Crop production"), 2)

	exists, err := store.AreaExists(ctx, "Agriculture")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = store.AreaExists(ctx, "Health")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestTaxonomyStore_SubAreaMovesToNewParent(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	store := NewTaxonomyStore(db)
	saveTree(t, store, testTree(t))

	require.NoError(t, store.SaveSubAreas(ctx, []taxonomy.SubArea{taxonomy.NewSubArea("Crop production", "Water resources")}))

	tree, err := store.Tree(ctx)
	require.NoError(t, err)
	assert.Len(t, tree.SubAreasOf("Water resources"), 2)
	assert.Empty(t, tree.SubAreasOf("Agriculture"))
}

func TestTaxonomyStore_ParentsMustExist(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	store := NewTaxonomyStore(db)

	err := store.SaveSubAreas(ctx, []taxonomy.SubArea{taxonomy.NewSubArea("Crop production", "Agriculture")})
	assert.ErrorIs(t, err, database.ErrForeignKeyViolation)

	err = store.SaveKeyObjectives(ctx, []taxonomy.KeyObjective{taxonomy.NewKeyObjective("Yield forecasting", "Crop production")})
	assert.ErrorIs(t, err, database.ErrForeignKeyViolation)

	tree, err := store.Tree(ctx)
	require.NoError(t, err)
	assert.True(t, tree.IsEmpty())
}

func TestTaxonomyStore_AreaInUseCannotBeDeleted(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	store := NewTaxonomyStore(db)
	saveTree(t, store, testTree(t))

	err := database.Classify(db.Session(ctx).Exec("DELETE FROM "+TableSocietalBenefitArea+" WHERE id = ?", "Agriculture").Error)
	assert.ErrorIs(t, err, database.ErrForeignKeyViolation)
}
