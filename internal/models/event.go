package models

import "time"

// RawEvent is one feature of the USGS GeoJSON feed, as received.
type RawEvent struct {
	ID         string        `json:"id"`
	Properties RawProperties `json:"properties"`
	Geometry   *RawGeometry  `json:"geometry"`
}

type RawProperties struct {
	Place string   `json:"place"`
	Mag   *float64 `json:"mag"`  // null for some automatic solutions
	Time  int64    `json:"time"` // unix millis
	URL   string   `json:"url"`
}

type RawGeometry struct {
	Coordinates []float64 `json:"coordinates"` // [lon, lat, depth]
}

// Event is a normalized feed row. Magnitude is always present.
type Event struct {
	ID         string
	Place      string
	Magnitude  float64
	OccurredAt time.Time // UTC
	Longitude  float64
	Latitude   float64
	DepthKm    float64
	DetailURL  string
}

// Date returns the UTC calendar day the event occurred on.
func (e Event) Date() Date {
	return DateOf(e.OccurredAt)
}
