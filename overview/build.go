package overview

import (
	"fmt"

	"github.com/bitmark-inc/covid-overview/schema"
)

// RadiusScale is the overlay radius, in meters, of a country holding the
// maximum cumulative total when it is the only country in the result set.
const RadiusScale = 5000

// BuildChart converts the timeline of a country into index-aligned series,
// following the insertion order of the entries.
func BuildChart(country *schema.CountryAggregate) schema.ChartSeries {
	entries := country.Cases.Entries()

	series := schema.ChartSeries{
		CountryLabel:    country.Name,
		DateLabels:      make([]string, 0, len(entries)),
		ConfirmedSeries: make([]int64, 0, len(entries)),
		RecoveredSeries: make([]int64, 0, len(entries)),
		DeathsSeries:    make([]int64, 0, len(entries)),
	}

	for _, e := range entries {
		series.DateLabels = append(series.DateLabels, e.Date)
		series.ConfirmedSeries = append(series.ConfirmedSeries, e.Confirmed)
		series.RecoveredSeries = append(series.RecoveredSeries, e.Recovered)
		series.DeathsSeries = append(series.DeathsSeries, e.Deaths)
	}

	return series
}

// BuildOverlay returns nil for a country without any confirmed case
func BuildOverlay(country *schema.CountryAggregate, cumulativeTotal, globalMax int64, countryCount int) *schema.OverlaySpec {
	if cumulativeTotal == 0 {
		return nil
	}
	if globalMax <= 0 {
		globalMax = NormalizationFloor
	}

	return &schema.OverlaySpec{
		Name:      country.Name,
		Latitude:  country.Latitude,
		Longitude: country.Longitude,
		Radius:    float64(cumulativeTotal) * float64(countryCount) * RadiusScale / float64(globalMax),
		Tooltip:   fmt.Sprintf("%s (%d)", country.Name, country.LatestConfirmed),
	}
}
