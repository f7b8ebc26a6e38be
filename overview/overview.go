// Package overview turns raw case rows into the per-country chart series and map
// overlays of one query. Every call rebuilds its result from scratch.
package overview

import (
	"github.com/bitmark-inc/covid-overview/geo"
	"github.com/bitmark-inc/covid-overview/schema"
)

// Build runs merge, summarize and the chart and overlay builders. Charts and
// overlays follow the order in which countries first appear in rows.
func Build(rows []schema.RawObservation, lookup geo.CoordinateLookup) schema.Overview {
	return build(merge(rows, lookup))
}

func build(m merged) schema.Overview {
	result, globalMax := Summarize(m.countries)

	o := schema.Overview{
		Result:         result,
		CountryOptions: m.options,
		Charts:         make([]schema.ChartSeries, 0, m.countries.Len()),
		Overlays:       make([]schema.OverlaySpec, 0, m.countries.Len()),
	}

	n := m.countries.Len()
	for _, c := range m.countries.Values() {
		o.Charts = append(o.Charts, BuildChart(c))
		if overlay := BuildOverlay(c, CumulativeTotal(c), globalMax, n); overlay != nil {
			o.Overlays = append(o.Overlays, *overlay)
		}
	}

	return o
}
