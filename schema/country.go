package schema

import "encoding/json"

const (
	CountryCoordinatesCollection = "country_coordinates"
)

// CountryCoordinates is the result of a coordinate lookup
type CountryCoordinates struct {
	Name      string  `json:"name" bson:"name" yaml:"name"`
	Latitude  float64 `json:"lat" bson:"lat" yaml:"lat"`
	Longitude float64 `json:"lon" bson:"lon" yaml:"lon"`
}

// CountryCoordinatesRecord is the stored form of a country inside
// CountryCoordinatesCollection. Names holds every lower-cased spelling that
// resolves to the country.
type CountryCoordinatesRecord struct {
	Name     string   `bson:"name"`
	Names    []string `bson:"names"`
	Location GeoJSON  `bson:"location"`
}

// Coordinates converts the stored record into lookup result
func (r CountryCoordinatesRecord) Coordinates() CountryCoordinates {
	c := CountryCoordinates{Name: r.Name}
	if len(r.Location.Coordinates) == 2 {
		c.Longitude = r.Location.Coordinates[0]
		c.Latitude = r.Location.Coordinates[1]
	}
	return c
}

// CaseEntry is one merged data point on a country timeline
type CaseEntry struct {
	Date      string `json:"date" yaml:"date"`
	Confirmed int64  `json:"confirmed" yaml:"confirmed"`
	Deaths    int64  `json:"deaths" yaml:"deaths"`
	Recovered int64  `json:"recovered" yaml:"recovered"`
}

// CaseHistory keeps at most one entry per date and iterates in insertion order.
// The zero value is ready to use.
type CaseHistory struct {
	entries []CaseEntry
	index   map[string]int
}

// Add inserts e, or sums its counts into the entry already recorded for e.Date.
// It reports whether an existing entry was merged.
func (h *CaseHistory) Add(e CaseEntry) bool {
	if h.index == nil {
		h.index = make(map[string]int)
	}

	if i, ok := h.index[e.Date]; ok {
		h.entries[i].Confirmed += e.Confirmed
		h.entries[i].Deaths += e.Deaths
		h.entries[i].Recovered += e.Recovered
		return true
	}

	h.index[e.Date] = len(h.entries)
	h.entries = append(h.entries, e)
	return false
}

func (h *CaseHistory) Get(date string) (CaseEntry, bool) {
	i, ok := h.index[date]
	if !ok {
		return CaseEntry{}, false
	}
	return h.entries[i], true
}

func (h *CaseHistory) Len() int {
	return len(h.entries)
}

// Entries returns a copy of the entries in insertion order
func (h CaseHistory) Entries() []CaseEntry {
	entries := make([]CaseEntry, len(h.entries))
	copy(entries, h.entries)
	return entries
}

func (h CaseHistory) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.Entries())
}

func (h CaseHistory) MarshalYAML() (interface{}, error) {
	return h.Entries(), nil
}

// CountryAggregate groups every merged row of one canonical country. The Latest
// fields hold the counts of the last row processed for the country, in input order.
type CountryAggregate struct {
	Name            string      `json:"name" yaml:"name"`
	Latitude        float64     `json:"lat" yaml:"lat"`
	Longitude       float64     `json:"lon" yaml:"lon"`
	LatestConfirmed int64       `json:"confirmed" yaml:"confirmed"`
	LatestDeaths    int64       `json:"deaths" yaml:"deaths"`
	LatestRecovered int64       `json:"recovered" yaml:"recovered"`
	Cases           CaseHistory `json:"cases" yaml:"cases"`
}

// NewCountryAggregate - new aggregate seeded with looked up coordinates
func NewCountryAggregate(c CountryCoordinates) *CountryAggregate {
	return &CountryAggregate{
		Name:      c.Name,
		Latitude:  c.Latitude,
		Longitude: c.Longitude,
	}
}

// CountryMap maps canonical names to aggregates and iterates in insertion order.
// The zero value is ready to use.
type CountryMap struct {
	names     []string
	countries map[string]*CountryAggregate
}

// Put stores c unless a country of the same name exists, and returns the stored one
func (m *CountryMap) Put(c *CountryAggregate) *CountryAggregate {
	if m.countries == nil {
		m.countries = make(map[string]*CountryAggregate)
	}

	if existing, ok := m.countries[c.Name]; ok {
		return existing
	}

	m.names = append(m.names, c.Name)
	m.countries[c.Name] = c
	return c
}

func (m *CountryMap) Get(name string) (*CountryAggregate, bool) {
	if m == nil {
		return nil, false
	}
	c, ok := m.countries[name]
	return c, ok
}

func (m *CountryMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.names)
}

// Names returns the canonical names in insertion order
func (m *CountryMap) Names() []string {
	if m == nil {
		return []string{}
	}
	names := make([]string, len(m.names))
	copy(names, m.names)
	return names
}

// Values returns the aggregates in insertion order
func (m *CountryMap) Values() []*CountryAggregate {
	if m == nil {
		return []*CountryAggregate{}
	}
	values := make([]*CountryAggregate, 0, len(m.names))
	for _, name := range m.names {
		values = append(values, m.countries[name])
	}
	return values
}

func (m *CountryMap) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Values())
}

func (m *CountryMap) MarshalYAML() (interface{}, error) {
	return m.Values(), nil
}
