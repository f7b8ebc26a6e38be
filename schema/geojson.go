package schema

// GeoJSON - mongo location format
type GeoJSON struct {
	Type        string    `json:"type" bson:"type"`
	Coordinates []float64 `json:"coordinates" bson:"coordinates"`
}

// NewPoint returns a GeoJSON point. GeoJSON orders coordinates as [lng, lat].
func NewPoint(lat, lng float64) GeoJSON {
	return GeoJSON{Type: "Point", Coordinates: []float64{lng, lat}}
}
