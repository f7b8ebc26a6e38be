package schema

// AggregateResult is rebuilt from scratch on every query
type AggregateResult struct {
	TotalConfirmed int64       `json:"total_confirmed" yaml:"total_confirmed"`
	TotalDeaths    int64       `json:"total_deaths" yaml:"total_deaths"`
	TotalRecovered int64       `json:"total_recovered" yaml:"total_recovered"`
	Countries      *CountryMap `json:"countries" yaml:"countries"`
}

// ChartSeries is the line chart dataset of one country. Every series is
// index-aligned with DateLabels.
type ChartSeries struct {
	CountryLabel    string   `json:"country" yaml:"country"`
	DateLabels      []string `json:"labels" yaml:"labels"`
	ConfirmedSeries []int64  `json:"confirmed" yaml:"confirmed"`
	RecoveredSeries []int64  `json:"recovered" yaml:"recovered"`
	DeathsSeries    []int64  `json:"deaths" yaml:"deaths"`
}

// OverlaySpec is a map marker sized by the cumulative case volume of a country
type OverlaySpec struct {
	Name      string  `json:"name" yaml:"name"`
	Latitude  float64 `json:"lat" yaml:"lat"`
	Longitude float64 `json:"lon" yaml:"lon"`
	Radius    float64 `json:"radius" yaml:"radius"`
	Tooltip   string  `json:"tooltip" yaml:"tooltip"`
}

// Overview is everything derived from one query
type Overview struct {
	Result AggregateResult `json:"result" yaml:"result"`

	// raw country spellings seen in the result set, sorted
	CountryOptions []string      `json:"country_options" yaml:"country_options"`
	Charts         []ChartSeries `json:"charts" yaml:"charts"`
	Overlays       []OverlaySpec `json:"overlays" yaml:"overlays"`
}
