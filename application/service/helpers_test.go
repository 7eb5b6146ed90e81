package service

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/nsidc/usaon-vta-survey/infrastructure/persistence"
	"github.com/nsidc/usaon-vta-survey/internal/database"
	"github.com/nsidc/usaon-vta-survey/internal/testdb"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	db          database.Database
	stores      Stores
	submissions *Submission
	responses   *Responses
	taxonomy    *Taxonomy
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	db := testdb.New(t)
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	stores := Stores{
		Surveys:          persistence.NewSurveyStore(db),
		Responses:        persistence.NewResponseStore(db),
		ObservingSystems: persistence.NewObservingSystemStore(db),
		DataProducts:     persistence.NewDataProductStore(db),
		Applications:     persistence.NewApplicationStore(db),
		SystemProducts:   persistence.NewObservingSystemDataProductStore(db),
		ProductApps:      persistence.NewDataProductApplicationStore(db),
		ApplicationAreas: persistence.NewApplicationAreaStore(db),
		Taxonomy:         persistence.NewTaxonomyStore(db),
	}
	f := fixture{
		db:          db,
		stores:      stores,
		submissions: NewSubmission(db, stores, nil, logger),
		responses:   NewResponses(db, stores, nil, logger),
		taxonomy:    NewTaxonomy(db, stores.Taxonomy, nil, logger),
	}
	require.NoError(t, f.taxonomy.Seed(context.Background(), testdb.Taxonomy(t)))
	return f
}

func (f fixture) count(t *testing.T, table string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Session(context.Background()).Table(table).Count(&n).Error)
	return n
}

func (f fixture) logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func text(s string) *string { return &s }
