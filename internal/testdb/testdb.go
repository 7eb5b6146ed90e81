// Package testdb provides a shared test database helper for fast,
// realistic testing against an in-memory SQLite database.
package testdb

import (
	"context"
	"testing"

	"github.com/nsidc/usaon-vta-survey/domain/taxonomy"
	"github.com/nsidc/usaon-vta-survey/infrastructure/persistence"
	"github.com/nsidc/usaon-vta-survey/internal/database"
)

// New creates an in-memory SQLite database with the survey schema applied and
// foreign keys enforced. The database is closed when the test finishes.
func New(t *testing.T) database.Database {
	t.Helper()
	db := NewPlain(t)
	if err := persistence.AutoMigrate(db); err != nil {
		t.Fatalf("testdb.New: auto migrate: %v", err)
	}
	return db
}

// NewPlain creates an in-memory SQLite database without running migrations.
func NewPlain(t *testing.T) database.Database {
	t.Helper()
	ctx := context.Background()
	db, err := database.NewDatabase(ctx, "sqlite:///:memory:")
	if err != nil {
		t.Fatalf("testdb.NewPlain: open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// Taxonomy returns a small valid taxonomy: two areas, one subarea under
// Agriculture and two key objectives under it.
func Taxonomy(t *testing.T) taxonomy.Tree {
	t.Helper()
	tree, err := taxonomy.NewTree(
		[]taxonomy.Area{taxonomy.NewArea("Agriculture"), taxonomy.NewArea("Water resources")},
		[]taxonomy.SubArea{taxonomy.NewSubArea("Crop production", "Agriculture")},
		[]taxonomy.KeyObjective{
			taxonomy.NewKeyObjective("Yield forecasting", "Crop production"),
			taxonomy.NewKeyObjective("Drought monitoring", "Crop production"),
		},
	)
	if err != nil {
		t.Fatalf("testdb.Taxonomy: %v", err)
	}
	return tree
}
