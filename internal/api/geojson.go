package api

import (
	"time"

	"github.com/mr1hm/go-quake-dashboard/internal/pipeline"
)

const geoJSONContentType = "application/geo+json; charset=utf-8"

type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}
type Feature struct {
	Type       string         `json:"type"`
	ID         string         `json:"id,omitempty"`
	Geometry   Geometry       `json:"geometry"`
	Properties map[string]any `json:"properties"`
}
type Geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

func toGeoJSON(points []pipeline.MapPoint) FeatureCollection {
	features := make([]Feature, 0, len(points))

	for _, p := range points {
		f := Feature{
			Type: "Feature",
			ID:   p.ID,
			Geometry: Geometry{
				Type:        "Point",
				Coordinates: []float64{p.Longitude, p.Latitude, p.DepthKm},
			},
			Properties: map[string]any{
				"place":    p.Place,
				"mag":      p.Magnitude,
				"time":     p.Time.UTC().Format(time.RFC3339Nano),
				"depth":    p.DepthKm,
				"url":      p.URL,
				"severity": string(p.Severity),
				"color":    p.Color,
			},
		}
		features = append(features, f)
	}

	return FeatureCollection{
		Type:     "FeatureCollection",
		Features: features,
	}
}
