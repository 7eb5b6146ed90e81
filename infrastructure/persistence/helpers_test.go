package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/nsidc/usaon-vta-survey/domain/survey"
	"github.com/nsidc/usaon-vta-survey/internal/database"
	"github.com/stretchr/testify/require"
)

// newTestDB creates a migrated in-memory SQLite database for testing.
// Cannot use testdb package here due to import cycle (testdb imports persistence).
func newTestDB(t *testing.T) database.Database {
	t.Helper()
	ctx := context.Background()
	db, err := database.NewDatabase(ctx, "sqlite:///:memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, AutoMigrate(db))
	return db
}

type testStores struct {
	db            database.Database
	surveys       SurveyStore
	responses     ResponseStore
	systems       ObservingSystemStore
	dataProducts  DataProductStore
	applications  ApplicationStore
	systemLinks   ObservingSystemDataProductStore
	productLinks  DataProductApplicationStore
	areaLinks     ApplicationAreaStore
	taxonomyStore TaxonomyStore
}

func newTestStores(t *testing.T) testStores {
	t.Helper()
	db := newTestDB(t)
	return testStores{
		db:            db,
		surveys:       NewSurveyStore(db),
		responses:     NewResponseStore(db),
		systems:       NewObservingSystemStore(db),
		dataProducts:  NewDataProductStore(db),
		applications:  NewApplicationStore(db),
		systemLinks:   NewObservingSystemDataProductStore(db),
		productLinks:  NewDataProductApplicationStore(db),
		areaLinks:     NewApplicationAreaStore(db),
		taxonomyStore: NewTaxonomyStore(db),
	}
}

func (s testStores) createResponse(t *testing.T) survey.Response {
	t.Helper()
	r, err := s.responses.Create(context.Background(), survey.NewResponse())
	require.NoError(t, err)
	require.NotZero(t, r.ID())
	return r
}

func (s testStores) createObservingSystem(t *testing.T, responseID int64, name string, details survey.ObservingSystemDetails) survey.ObservingSystem {
	t.Helper()
	o, err := survey.NewObservingSystem(responseID, name, details, testInfo())
	require.NoError(t, err)
	created, err := s.systems.Create(context.Background(), o)
	require.NoError(t, err)
	return created
}

func (s testStores) createDataProduct(t *testing.T, responseID int64, name string, satisfaction int) survey.DataProduct {
	t.Helper()
	d, err := survey.NewDataProduct(responseID, name, survey.MustRating(satisfaction))
	require.NoError(t, err)
	created, err := s.dataProducts.Create(context.Background(), d)
	require.NoError(t, err)
	return created
}

func (s testStores) createApplication(t *testing.T, responseID int64, name string) survey.Application {
	t.Helper()
	a, err := survey.NewApplication(responseID, name)
	require.NoError(t, err)
	created, err := s.applications.Create(context.Background(), a)
	require.NoError(t, err)
	return created
}

func (s testStores) count(t *testing.T, table string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, s.db.Session(context.Background()).Table(table).Count(&n).Error)
	return n
}

func testInfo() survey.ObservingSystemInfo {
	return survey.ObservingSystemInfo{
		URL:                 "https://www.goes-r.gov",
		AuthorName:          "Jane Doe",
		AuthorEmail:         "jane@example.org",
		FundingCountry:      "USA",
		FundingAgency:       "NOAA",
		ReferencesCitations: "Schmit et al. 2017",
		Notes:               "geostationary imager",
	}
}

func assessment(t *testing.T, contribution, satisfaction int) survey.Assessment {
	t.Helper()
	a, err := survey.NewAssessment(survey.MustRating(contribution), survey.MustRating(satisfaction), nil, nil)
	require.NoError(t, err)
	return a
}

var epoch = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
