package overview

import (
	"sort"

	"github.com/bitmark-inc/covid-overview/geo"
	"github.com/bitmark-inc/covid-overview/schema"
)

type merged struct {
	countries *schema.CountryMap

	// raw spellings that introduced a canonical country
	options []string

	// rows whose country could not be resolved, by raw spelling
	dropped map[string]int
}

// Merge groups rows by canonical country and sums rows sharing a country and a
// date. Rows whose country cannot be resolved are dropped. The latest counts of
// a country are taken from its last row in input order.
func Merge(rows []schema.RawObservation, lookup geo.CoordinateLookup) *schema.CountryMap {
	return merge(rows, lookup).countries
}

// CountryOptions lists, sorted, the raw spellings that introduced each
// canonical country of rows
func CountryOptions(rows []schema.RawObservation, lookup geo.CoordinateLookup) []string {
	return merge(rows, lookup).options
}

func merge(rows []schema.RawObservation, lookup geo.CoordinateLookup) merged {
	m := merged{
		countries: &schema.CountryMap{},
		options:   []string{},
		dropped:   make(map[string]int),
	}

	for _, row := range rows {
		coordinates, err := lookup.Lookup(row.CountryRegion)
		if err != nil {
			m.dropped[row.CountryRegion]++
			continue
		}

		country, ok := m.countries.Get(coordinates.Name)
		if !ok {
			country = m.countries.Put(schema.NewCountryAggregate(coordinates))
			m.options = append(m.options, row.CountryRegion)
		}

		country.Cases.Add(schema.CaseEntry{
			Date:      row.ObservationDate,
			Confirmed: row.Confirmed,
			Deaths:    row.Deaths,
			Recovered: row.Recovered,
		})

		country.LatestConfirmed = row.Confirmed
		country.LatestDeaths = row.Deaths
		country.LatestRecovered = row.Recovered
	}

	m.options = uniqueSorted(m.options)
	return m
}

func uniqueSorted(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	result := make([]string, 0, len(names))
	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}
