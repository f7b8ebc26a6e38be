package overview

import "github.com/bitmark-inc/covid-overview/schema"

// NormalizationFloor replaces the global maximum when no country has any case,
// so overlay sizing never divides by zero.
const NormalizationFloor int64 = 10000

// CumulativeTotal sums the confirmed counts over the whole timeline of a country
func CumulativeTotal(country *schema.CountryAggregate) int64 {
	var total int64
	for _, e := range country.Cases.Entries() {
		total += e.Confirmed
	}
	return total
}

// Summarize returns the global totals of the latest counts together with the
// maximum cumulative total over all countries.
func Summarize(countries *schema.CountryMap) (schema.AggregateResult, int64) {
	result := schema.AggregateResult{
		Countries: countries,
	}
	if result.Countries == nil {
		result.Countries = &schema.CountryMap{}
	}

	var globalMax int64
	for _, c := range result.Countries.Values() {
		result.TotalConfirmed += c.LatestConfirmed
		result.TotalDeaths += c.LatestDeaths
		result.TotalRecovered += c.LatestRecovered

		if t := CumulativeTotal(c); t > globalMax {
			globalMax = t
		}
	}

	if globalMax == 0 {
		globalMax = NormalizationFloor
	}

	return result, globalMax
}
