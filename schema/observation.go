package schema

// RawObservation is one row delivered by the data source. Several rows may share
// the same country and date (sub-regions of one country).
type RawObservation struct {
	CountryRegion   string `json:"Country/Region" bson:"Country/Region" yaml:"country_region"`
	ObservationDate string `json:"ObservationDate" bson:"ObservationDate" yaml:"observation_date"`
	Confirmed       int64  `json:"Confirmed" bson:"Confirmed" yaml:"confirmed"`
	Deaths          int64  `json:"Deaths" bson:"Deaths" yaml:"deaths"`
	Recovered       int64  `json:"Recovered" bson:"Recovered" yaml:"recovered"`
}
