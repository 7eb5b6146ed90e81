package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nsidc/usaon-vta-survey/domain/survey"
	"github.com/nsidc/usaon-vta-survey/infrastructure/persistence"
	"github.com/nsidc/usaon-vta-survey/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmission_Start(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	sv, response, err := f.submissions.Start(ctx, text("pilot"))
	require.NoError(t, err)
	assert.True(t, sv.HasResponse())
	assert.Equal(t, response.ID(), sv.ResponseID())
	assert.Equal(t, "pilot", *sv.Notes())

	stored, err := f.stores.Surveys.Get(ctx, sv.ID())
	require.NoError(t, err)
	assert.Equal(t, response.ID(), stored.ResponseID())
}

func TestSubmission_Respond(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	sv, err := survey.NewSurvey(nil)
	require.NoError(t, err)
	sv, err = f.stores.Surveys.Create(ctx, sv)
	require.NoError(t, err)
	assert.False(t, sv.HasResponse())

	response, err := f.submissions.Respond(ctx, sv.ID())
	require.NoError(t, err)

	again, err := f.submissions.Respond(ctx, sv.ID())
	require.NoError(t, err)
	assert.Equal(t, response.ID(), again.ID())
	assert.Equal(t, int64(1), f.count(t, persistence.TableResponse))
}

func TestSubmission_Pending(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, _, err := f.submissions.Start(ctx, nil)
	require.NoError(t, err)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	older, err := f.stores.Surveys.Create(ctx, survey.ReconstructSurvey(uuid.New(), 0, base, nil))
	require.NoError(t, err)
	newer, err := f.stores.Surveys.Create(ctx, survey.ReconstructSurvey(uuid.New(), 0, base.Add(time.Hour), nil))
	require.NoError(t, err)

	all, err := f.submissions.Pending(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, newer.ID(), all[0].ID())
	assert.Equal(t, older.ID(), all[1].ID())

	page, err := f.submissions.Pending(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, older.ID(), page[0].ID())
}

func TestSubmission_WritesAdvanceUpdatedTimestamp(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, response, err := f.submissions.Start(ctx, nil)
	require.NoError(t, err)

	later := response.UpdatedAt().Add(time.Hour).Truncate(time.Second)
	f.submissions.clock = func() time.Time { return later }

	_, err = f.submissions.AddApplication(ctx, response.ID(), "Shipping routes")
	require.NoError(t, err)

	stored, err := f.stores.Responses.Get(ctx, response.ID())
	require.NoError(t, err)
	assert.True(t, stored.UpdatedAt().Equal(later), "updated %s, want %s", stored.UpdatedAt(), later)

	earlier := later.Add(-30 * time.Minute)
	f.submissions.clock = func() time.Time { return earlier }
	_, err = f.submissions.AddDataProduct(ctx, response.ID(), DataProductParams{Name: "SST", Satisfaction: 50})
	require.NoError(t, err)

	stored, err = f.stores.Responses.Get(ctx, response.ID())
	require.NoError(t, err)
	assert.True(t, stored.UpdatedAt().Equal(later), "timestamp moved backwards to %s", stored.UpdatedAt())
}

func TestSubmission_FullResponse(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, response, err := f.submissions.Start(ctx, nil)
	require.NoError(t, err)

	goes, err := f.submissions.AddObservingSystem(ctx, response.ID(), ObservingSystemParams{
		Name:    "GOES-16",
		Details: survey.Observational{Platform: "GOES", Sensor: "ABI"},
		Info:    survey.ObservingSystemInfo{URL: "https://www.goes-r.gov"},
	})
	require.NoError(t, err)
	buoys, err := f.submissions.AddObservingSystem(ctx, response.ID(), ObservingSystemParams{Name: "Buoys"})
	require.NoError(t, err)
	assert.Equal(t, survey.ObservingSystemTypeOther, buoys.Type())

	sst, err := f.submissions.AddDataProduct(ctx, response.ID(), DataProductParams{Name: "SST", Satisfaction: 85})
	require.NoError(t, err)
	shipping, err := f.submissions.AddApplication(ctx, response.ID(), "Shipping routes")
	require.NoError(t, err)

	_, err = f.submissions.LinkObservingSystemDataProduct(ctx, goes.ID(), sst.ID(), AssessmentParams{
		Contribution: 90,
		Satisfaction: 80,
		Rationale:    text("primary input"),
	})
	require.NoError(t, err)
	_, err = f.submissions.LinkDataProductApplication(ctx, sst.ID(), shipping.ID(), AssessmentParams{Contribution: 70, Satisfaction: 60})
	require.NoError(t, err)
	_, err = f.submissions.LinkApplicationSocietalBenefitArea(ctx, shipping.ID(), "Agriculture")
	require.NoError(t, err)

	contents, err := f.responses.Get(ctx, response.ID())
	require.NoError(t, err)
	assert.Len(t, contents.ObservingSystems, 2)
	assert.Len(t, contents.DataProducts, 1)
	assert.Len(t, contents.Applications, 1)
	assert.Len(t, contents.SystemProducts, 1)
	assert.Len(t, contents.ProductApps, 1)
	require.Len(t, contents.ApplicationAreas, 1)
	assert.Equal(t, "Agriculture", contents.ApplicationAreas[0].AreaID())

	contributing, err := f.responses.ContributingDataProducts(ctx, goes.ID())
	require.NoError(t, err)
	require.Len(t, contributing, 1)
	assert.Equal(t, "SST", contributing[0].DataProduct().Name())
	assert.Equal(t, 90, contributing[0].Assessment().Contribution().Int())
	assert.Equal(t, "primary input", *contributing[0].Assessment().Rationale())
}

func TestSubmission_Rejections(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, r1, err := f.submissions.Start(ctx, nil)
	require.NoError(t, err)
	_, r2, err := f.submissions.Start(ctx, nil)
	require.NoError(t, err)

	o1, err := f.submissions.AddObservingSystem(ctx, r1.ID(), ObservingSystemParams{Name: "Argo", Details: survey.Research{}})
	require.NoError(t, err)
	d2, err := f.submissions.AddDataProduct(ctx, r2.ID(), DataProductParams{Name: "Ice extent", Satisfaction: 10})
	require.NoError(t, err)
	a1, err := f.submissions.AddApplication(ctx, r1.ID(), "Fisheries")
	require.NoError(t, err)

	t.Run("rating out of range", func(t *testing.T) {
		_, err := f.submissions.AddDataProduct(ctx, r1.ID(), DataProductParams{Name: "Chlorophyll", Satisfaction: 101})
		assert.ErrorIs(t, err, survey.ErrRatingOutOfRange)
	})

	t.Run("duplicate name in response", func(t *testing.T) {
		_, err := f.submissions.AddObservingSystem(ctx, r1.ID(), ObservingSystemParams{Name: "Argo"})
		assert.ErrorIs(t, err, database.ErrUniqueViolation)
	})

	t.Run("unknown response", func(t *testing.T) {
		_, err := f.submissions.AddApplication(ctx, 9999, "Navigation")
		assert.ErrorIs(t, err, database.ErrForeignKeyViolation)
	})

	t.Run("cross response link", func(t *testing.T) {
		_, err := f.submissions.LinkObservingSystemDataProduct(ctx, o1.ID(), d2.ID(), AssessmentParams{Contribution: 1, Satisfaction: 1})
		assert.ErrorIs(t, err, survey.ErrCrossResponseLink)
		assert.Zero(t, f.count(t, persistence.TableObservingSystemDataProduct))
	})

	t.Run("unknown area", func(t *testing.T) {
		_, err := f.submissions.LinkApplicationSocietalBenefitArea(ctx, a1.ID(), "Tourism")
		assert.ErrorIs(t, err, ErrUnknownSocietalBenefitArea)
	})

	t.Run("missing data product", func(t *testing.T) {
		_, err := f.submissions.LinkDataProductApplication(ctx, 9999, a1.ID(), AssessmentParams{})
		assert.ErrorIs(t, err, database.ErrNotFound)
	})

	t.Run("rejected write leaves timestamp alone", func(t *testing.T) {
		before, err := f.stores.Responses.Get(ctx, r1.ID())
		require.NoError(t, err)
		f.submissions.clock = func() time.Time { return before.UpdatedAt().Add(time.Hour) }
		_, err = f.submissions.AddApplication(ctx, r1.ID(), "Fisheries")
		require.Error(t, err)

		after, err := f.stores.Responses.Get(ctx, r1.ID())
		require.NoError(t, err)
		assert.True(t, after.UpdatedAt().Equal(before.UpdatedAt()))
	})
}
