package render

import (
	"sync"

	"github.com/bitmark-inc/covid-overview/schema"
)

const (
	overlayColor       = "red"
	overlayFillColor   = "#f03"
	overlayFillOpacity = 0.5
)

type FeatureProperties struct {
	Name        string  `json:"name"`
	Radius      float64 `json:"radius"`
	Tooltip     string  `json:"tooltip"`
	Color       string  `json:"color"`
	FillColor   string  `json:"fillColor"`
	FillOpacity float64 `json:"fillOpacity"`
}

type Feature struct {
	Type       string            `json:"type"`
	Geometry   schema.GeoJSON    `json:"geometry"`
	Properties FeatureProperties `json:"properties"`
}

type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// MapLayer holds the overlays currently drawn on the map
type MapLayer struct {
	sync.RWMutex
	features []Feature
}

func NewMapLayer() *MapLayer {
	return &MapLayer{features: []Feature{}}
}

// Redraw removes every drawn overlay, then draws overlays
func (l *MapLayer) Redraw(overlays []schema.OverlaySpec) {
	features := make([]Feature, 0, len(overlays))
	for _, o := range overlays {
		features = append(features, Feature{
			Type:     "Feature",
			Geometry: schema.NewPoint(o.Latitude, o.Longitude),
			Properties: FeatureProperties{
				Name:        o.Name,
				Radius:      o.Radius,
				Tooltip:     o.Tooltip,
				Color:       overlayColor,
				FillColor:   overlayFillColor,
				FillOpacity: overlayFillOpacity,
			},
		})
	}

	l.Lock()
	defer l.Unlock()
	l.features = features
}

// Clear removes every drawn overlay
func (l *MapLayer) Clear() {
	l.Redraw(nil)
}

func (l *MapLayer) Len() int {
	l.RLock()
	defer l.RUnlock()
	return len(l.features)
}

// GeoJSON exports a snapshot of the drawn overlays
func (l *MapLayer) GeoJSON() FeatureCollection {
	l.RLock()
	defer l.RUnlock()

	features := make([]Feature, len(l.features))
	copy(features, l.features)
	return FeatureCollection{
		Type:     "FeatureCollection",
		Features: features,
	}
}
