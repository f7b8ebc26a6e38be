package overview_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/uber-go/tally"

	"github.com/bitmark-inc/covid-overview/geo"
	"github.com/bitmark-inc/covid-overview/mocks"
	"github.com/bitmark-inc/covid-overview/overview"
	"github.com/bitmark-inc/covid-overview/schema"
)

func testResolver() geo.CoordinateLookup {
	return geo.NewStaticCoordinateResolver(
		geo.CountryEntry{Name: "US", Latitude: 40, Longitude: -100, Aliases: []string{"United States"}},
		geo.CountryEntry{Name: "Italy", Latitude: 41.87194, Longitude: 12.56738},
		geo.CountryEntry{Name: "Japan", Latitude: 36.204824, Longitude: 138.252924},
	)
}

func TestMergeDuplicateRows(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	lookup := mocks.NewMockCoordinateLookup(ctl)
	lookup.EXPECT().Lookup("US").Return(schema.CountryCoordinates{Name: "US", Latitude: 40, Longitude: -100}, nil).Times(2)

	rows := []schema.RawObservation{
		{CountryRegion: "US", ObservationDate: "2020-01-01", Confirmed: 10, Deaths: 1, Recovered: 0},
		{CountryRegion: "US", ObservationDate: "2020-01-01", Confirmed: 5, Deaths: 0, Recovered: 2},
	}

	countries := overview.Merge(rows, lookup)
	assert.Equal(t, 1, countries.Len())

	us, ok := countries.Get("US")
	if !assert.True(t, ok) {
		return
	}
	assert.Equal(t, 40.0, us.Latitude)
	assert.Equal(t, -100.0, us.Longitude)
	assert.Equal(t, []schema.CaseEntry{
		{Date: "2020-01-01", Confirmed: 15, Deaths: 1, Recovered: 2},
	}, us.Cases.Entries())
	assert.Equal(t, int64(5), us.LatestConfirmed, "latest counts come from the last row processed")
	assert.Equal(t, int64(0), us.LatestDeaths)
	assert.Equal(t, int64(2), us.LatestRecovered)
	assert.Equal(t, int64(15), overview.CumulativeTotal(us))
}

func TestMergeLatestFollowsInputOrder(t *testing.T) {
	rows := []schema.RawObservation{
		{CountryRegion: "Italy", ObservationDate: "03/02/2020", Confirmed: 2000},
		{CountryRegion: "Italy", ObservationDate: "03/01/2020", Confirmed: 1000},
	}

	italy, _ := overview.Merge(rows, testResolver()).Get("Italy")
	assert.Equal(t, int64(1000), italy.LatestConfirmed)
	assert.Equal(t, []string{"03/02/2020", "03/01/2020"}, overview.BuildChart(italy).DateLabels, "dates keep insertion order")
}

func TestMergeCanonicalSpellings(t *testing.T) {
	rows := []schema.RawObservation{
		{CountryRegion: "United States", ObservationDate: "03/01/2020", Confirmed: 1},
		{CountryRegion: "US", ObservationDate: "03/01/2020", Confirmed: 2},
		{CountryRegion: "US", ObservationDate: "03/02/2020", Confirmed: 4},
	}

	o := overview.Build(rows, testResolver())
	assert.Equal(t, []string{"US"}, o.Result.Countries.Names())

	us, _ := o.Result.Countries.Get("US")
	assert.Equal(t, []schema.CaseEntry{
		{Date: "03/01/2020", Confirmed: 3},
		{Date: "03/02/2020", Confirmed: 4},
	}, us.Cases.Entries())
	assert.Equal(t, []string{"United States"}, o.CountryOptions, "only the spelling that introduced the country")
}

func TestMergeOverriddenCountryKeepsOneLocation(t *testing.T) {
	lookup := geo.NewStaticCoordinateResolver(geo.CountryEntry{Name: "United States", Latitude: 40, Longitude: -100})
	rows := []schema.RawObservation{
		{CountryRegion: "US", ObservationDate: "03/01/2020", Confirmed: 1},
		{CountryRegion: "United States", ObservationDate: "03/02/2020", Confirmed: 2},
	}

	countries := overview.Merge(rows, lookup)
	assert.Equal(t, []string{"United States"}, countries.Names())

	us, _ := countries.Get("United States")
	assert.Equal(t, 40.0, us.Latitude)
	assert.Equal(t, -100.0, us.Longitude)
}

func TestCountryOptions(t *testing.T) {
	rows := []schema.RawObservation{
		{CountryRegion: "Italy", ObservationDate: "03/01/2020", Confirmed: 1},
		{CountryRegion: "US", ObservationDate: "03/01/2020", Confirmed: 2},
		{CountryRegion: "United States", ObservationDate: "03/02/2020", Confirmed: 4},
		{CountryRegion: "Italy", ObservationDate: "03/02/2020", Confirmed: 3},
	}

	assert.Equal(t, []string{"Italy", "US"}, overview.CountryOptions(rows, testResolver()))
	assert.Equal(t, []string{}, overview.CountryOptions(nil, testResolver()))
}

func TestBuildEmpty(t *testing.T) {
	o := overview.Build(nil, testResolver())

	assert.Equal(t, int64(0), o.Result.TotalConfirmed)
	assert.Equal(t, int64(0), o.Result.TotalDeaths)
	assert.Equal(t, int64(0), o.Result.TotalRecovered)
	assert.Equal(t, 0, o.Result.Countries.Len())
	assert.Empty(t, o.Charts)
	assert.Empty(t, o.Overlays)
	assert.Empty(t, o.CountryOptions)

	_, globalMax := overview.Summarize(o.Result.Countries)
	assert.Equal(t, overview.NormalizationFloor, globalMax)
}

func TestBuildOverlayRadius(t *testing.T) {
	rows := []schema.RawObservation{
		{CountryRegion: "Italy", ObservationDate: "03/01/2020", Confirmed: 40},
		{CountryRegion: "Japan", ObservationDate: "03/01/2020", Confirmed: 100, Deaths: 3},
		{CountryRegion: "Italy", ObservationDate: "03/02/2020", Confirmed: 60},
		{CountryRegion: "Japan", ObservationDate: "03/02/2020", Confirmed: 200, Deaths: 5},
	}

	o := overview.Build(rows, testResolver())
	if !assert.Len(t, o.Overlays, 2) {
		return
	}

	// cumulative totals 100 and 300, two countries
	assert.Equal(t, "Italy", o.Overlays[0].Name)
	assert.InDelta(t, 3333.333, o.Overlays[0].Radius, 0.001)
	assert.Equal(t, "Italy (60)", o.Overlays[0].Tooltip)
	assert.Equal(t, 41.87194, o.Overlays[0].Latitude)
	assert.Equal(t, 12.56738, o.Overlays[0].Longitude)

	assert.Equal(t, "Japan", o.Overlays[1].Name)
	assert.Equal(t, 10000.0, o.Overlays[1].Radius)
	assert.Equal(t, "Japan (200)", o.Overlays[1].Tooltip)
}

func TestBuildUnresolvedCountry(t *testing.T) {
	rows := []schema.RawObservation{
		{CountryRegion: "Japan", ObservationDate: "03/01/2020", Confirmed: 10, Deaths: 1, Recovered: 1},
		{CountryRegion: "Others", ObservationDate: "03/01/2020", Confirmed: 700, Deaths: 7, Recovered: 70},
	}

	o := overview.Build(rows, testResolver())
	assert.Equal(t, []string{"Japan"}, o.Result.Countries.Names())
	assert.Equal(t, int64(10), o.Result.TotalConfirmed)
	assert.Equal(t, int64(1), o.Result.TotalDeaths)
	assert.Equal(t, int64(1), o.Result.TotalRecovered)
	assert.Len(t, o.Charts, 1)
	assert.Len(t, o.Overlays, 1)
	assert.Equal(t, []string{"Japan"}, o.CountryOptions)

	_, globalMax := overview.Summarize(o.Result.Countries)
	assert.Equal(t, int64(10), globalMax)
}

func TestBuildZeroCases(t *testing.T) {
	rows := []schema.RawObservation{
		{CountryRegion: "Japan", ObservationDate: "03/01/2020", Confirmed: 0, Deaths: 0, Recovered: 3},
		{CountryRegion: "Italy", ObservationDate: "03/01/2020", Confirmed: 0},
	}

	o := overview.Build(rows, testResolver())
	assert.Len(t, o.Charts, 2, "charts are built for every resolved country")
	assert.Empty(t, o.Overlays)

	_, globalMax := overview.Summarize(o.Result.Countries)
	assert.Equal(t, overview.NormalizationFloor, globalMax)
}

func TestSummarizeTotals(t *testing.T) {
	rows := []schema.RawObservation{
		{CountryRegion: "Japan", ObservationDate: "03/01/2020", Confirmed: 10, Deaths: 1, Recovered: 2},
		{CountryRegion: "Italy", ObservationDate: "03/01/2020", Confirmed: 20, Deaths: 3, Recovered: 4},
		{CountryRegion: "Japan", ObservationDate: "03/02/2020", Confirmed: 15, Deaths: 2, Recovered: 5},
		{CountryRegion: "US", ObservationDate: "03/02/2020", Confirmed: 8, Deaths: 0, Recovered: 1},
	}

	countries := overview.Merge(rows, testResolver())
	result, globalMax := overview.Summarize(countries)

	var confirmed, deaths, recovered int64
	for _, c := range countries.Values() {
		confirmed += c.LatestConfirmed
		deaths += c.LatestDeaths
		recovered += c.LatestRecovered
	}
	assert.Equal(t, confirmed, result.TotalConfirmed)
	assert.Equal(t, deaths, result.TotalDeaths)
	assert.Equal(t, recovered, result.TotalRecovered)
	assert.Equal(t, int64(43), result.TotalConfirmed)
	assert.Equal(t, int64(25), globalMax)

	again, againMax := overview.Summarize(countries)
	assert.Equal(t, result, again, "summarize has no hidden state")
	assert.Equal(t, globalMax, againMax)
}

func TestBuildChartAligned(t *testing.T) {
	rows := []schema.RawObservation{
		{CountryRegion: "Japan", ObservationDate: "03/03/2020", Confirmed: 30, Deaths: 3, Recovered: 1},
		{CountryRegion: "Japan", ObservationDate: "03/01/2020", Confirmed: 10, Deaths: 1, Recovered: 0},
		{CountryRegion: "Japan", ObservationDate: "03/03/2020", Confirmed: 5, Deaths: 0, Recovered: 1},
		{CountryRegion: "Japan", ObservationDate: "03/02/2020", Confirmed: 20, Deaths: 2, Recovered: 0},
	}

	japan, _ := overview.Merge(rows, testResolver()).Get("Japan")
	chart := overview.BuildChart(japan)

	assert.Equal(t, schema.ChartSeries{
		CountryLabel:    "Japan",
		DateLabels:      []string{"03/03/2020", "03/01/2020", "03/02/2020"},
		ConfirmedSeries: []int64{35, 10, 20},
		RecoveredSeries: []int64{2, 0, 0},
		DeathsSeries:    []int64{3, 1, 2},
	}, chart)
	assert.Equal(t, chart, overview.BuildChart(japan), "chart is rebuilt identically")
}

func TestBuildOverlayMonotonic(t *testing.T) {
	country := &schema.CountryAggregate{Name: "Japan"}

	assert.Nil(t, overview.BuildOverlay(country, 0, 300, 2))

	previous := 0.0
	for _, total := range []int64{1, 50, 100, 299, 300} {
		overlay := overview.BuildOverlay(country, total, 300, 2)
		if assert.NotNil(t, overlay) {
			assert.True(t, overlay.Radius >= previous, "radius decreased at %d", total)
			previous = overlay.Radius
		}
	}

	overlay := overview.BuildOverlay(country, 5000, 0, 1)
	if assert.NotNil(t, overlay) {
		assert.Equal(t, 2500.0, overlay.Radius, "floor replaces a zero maximum")
	}
}

func counterValue(scope tally.TestScope, name string) int64 {
	for _, c := range scope.Snapshot().Counters() {
		if c.Name() == name {
			return c.Value()
		}
	}
	return 0
}

func TestServiceRun(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	source := mocks.NewMockSource(ctl)
	source.EXPECT().Fetch(gomock.Any(), "ObservationDate=12/06/2020").Return([]schema.RawObservation{
		{CountryRegion: "Japan", ObservationDate: "12/06/2020", Confirmed: 10},
		{CountryRegion: "Others", ObservationDate: "12/06/2020", Confirmed: 1},
		{CountryRegion: "Others", ObservationDate: "12/06/2020", Confirmed: 1},
	}, nil).Times(1)

	scope := tally.NewTestScope("", nil)
	s := overview.NewService(source, testResolver(), scope)

	o, err := s.Run(context.Background(), "ObservationDate=12/06/2020")
	assert.NoError(t, err)
	assert.Equal(t, []string{"Japan"}, o.Result.Countries.Names())

	assert.Equal(t, int64(3), counterValue(scope, "rows"))
	assert.Equal(t, int64(2), counterValue(scope, "rows_dropped"))
	assert.Equal(t, int64(1), counterValue(scope, "countries"))
	assert.Equal(t, int64(1), counterValue(scope, "overlays"))
}

func TestServiceRunFetchError(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	fetchErr := errors.New("connection reset")
	source := mocks.NewMockSource(ctl)
	source.EXPECT().Fetch(gomock.Any(), "").Return(nil, fetchErr).Times(1)

	// the lookup must not be called when the fetch fails
	lookup := mocks.NewMockCoordinateLookup(ctl)

	scope := tally.NewTestScope("", nil)
	_, err := overview.NewService(source, lookup, scope).Run(context.Background(), "")
	assert.Equal(t, fetchErr, err)
	assert.Equal(t, int64(1), counterValue(scope, "fetch_errors"))
}
