package survey

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testInfo() ObservingSystemInfo {
	return ObservingSystemInfo{
		URL:                 "https://www.goes-r.gov",
		AuthorName:          "Jane Doe",
		AuthorEmail:         "jane@example.org",
		FundingCountry:      "USA",
		FundingAgency:       "NOAA",
		ReferencesCitations: "Schmit et al. 2017",
		Notes:               "geostationary",
	}
}

func TestParseObservingSystemType(t *testing.T) {
	tests := []struct {
		in      string
		want    ObservingSystemType
		wantErr bool
	}{
		{in: "observational", want: ObservingSystemTypeObservational},
		{in: "Research", want: ObservingSystemTypeResearch},
		{in: " other ", want: ObservingSystemTypeOther},
		{in: "satellite", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseObservingSystemType(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownObservingSystemType)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewObservingSystem_Variants(t *testing.T) {
	tests := []struct {
		name    string
		details ObservingSystemDetails
		want    ObservingSystemType
	}{
		{name: "observational", details: Observational{Platform: "GOES", Sensor: "ABI"}, want: ObservingSystemTypeObservational},
		{name: "research", details: Research{IntermediateProduct: "Level 2 SST"}, want: ObservingSystemTypeResearch},
		{name: "other", details: Other{}, want: ObservingSystemTypeOther},
		{name: "nil defaults to other", details: nil, want: ObservingSystemTypeOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := NewObservingSystem(1, "GOES-16", tt.details, testInfo())
			require.NoError(t, err)
			assert.Equal(t, tt.want, o.Type())
			assert.Equal(t, int64(1), o.ResponseID())
			assert.Equal(t, "GOES-16", o.Name())
			assert.Equal(t, "NOAA", o.Info().FundingAgency)
		})
	}
}

func TestObservingSystem_VariantAccessors(t *testing.T) {
	o, err := NewObservingSystem(1, "GOES-16", Observational{Platform: "GOES", Sensor: "ABI"}, testInfo())
	require.NoError(t, err)

	obs, ok := o.Observational()
	require.True(t, ok)
	assert.Equal(t, "ABI", obs.Sensor)

	_, ok = o.Research()
	assert.False(t, ok)
}

func TestNewObservingSystem_Validation(t *testing.T) {
	long := strings.Repeat("a", MaxNameLength+1)

	_, err := NewObservingSystem(0, "GOES-16", Other{}, testInfo())
	assert.ErrorIs(t, err, ErrMissingResponse)

	_, err = NewObservingSystem(1, "", Other{}, testInfo())
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = NewObservingSystem(1, long, Other{}, testInfo())
	assert.ErrorIs(t, err, ErrFieldTooLong)

	_, err = NewObservingSystem(1, "GOES-16", Observational{Platform: long}, testInfo())
	assert.ErrorIs(t, err, ErrFieldTooLong)

	info := testInfo()
	info.AuthorEmail = long
	_, err = NewObservingSystem(1, "GOES-16", Other{}, info)
	assert.ErrorIs(t, err, ErrFieldTooLong)

	info = testInfo()
	info.Notes = strings.Repeat("n", MaxNameLength+1)
	_, err = NewObservingSystem(1, "GOES-16", Other{}, info)
	assert.NoError(t, err, "notes use the wider text column")
}

func TestNewDataProductAndApplication(t *testing.T) {
	d, err := NewDataProduct(1, "SST", MustRating(85))
	require.NoError(t, err)
	assert.Equal(t, 85, d.Satisfaction().Int())

	_, err = NewDataProduct(0, "SST", MustRating(85))
	assert.ErrorIs(t, err, ErrMissingResponse)

	a, err := NewApplication(1, "Fisheries forecasting")
	require.NoError(t, err)
	assert.Equal(t, "Fisheries forecasting", a.Name())

	_, err = NewApplication(1, "")
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestNewAssessment(t *testing.T) {
	why := "primary input"
	a, err := NewAssessment(MustRating(90), MustRating(80), &why, nil)
	require.NoError(t, err)
	assert.Equal(t, 90, a.Contribution().Int())
	assert.Equal(t, 80, a.Satisfaction().Int())
	require.NotNil(t, a.Rationale())
	assert.Equal(t, why, *a.Rationale())
	assert.Nil(t, a.NeededImprovements())

	long := strings.Repeat("x", MaxTextLength+1)
	_, err = NewAssessment(MustRating(1), MustRating(1), nil, &long)
	assert.ErrorIs(t, err, ErrFieldTooLong)
}

func TestLinks_RequireIDs(t *testing.T) {
	a, err := NewAssessment(MustRating(1), MustRating(1), nil, nil)
	require.NoError(t, err)

	_, err = NewObservingSystemDataProduct(0, 1, a)
	assert.Error(t, err)
	_, err = NewDataProductApplication(1, 0, a)
	assert.Error(t, err)
	_, err = NewApplicationSocietalBenefitArea(1, "")
	assert.ErrorIs(t, err, ErrMissingSocietalBenefitArea)

	l, err := NewApplicationSocietalBenefitArea(3, "Agriculture")
	require.NoError(t, err)
	assert.Equal(t, int64(3), l.ApplicationID())
	assert.Equal(t, "Agriculture", l.AreaID())
}
