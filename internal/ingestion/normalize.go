package ingestion

import (
	"time"

	"github.com/mr1hm/go-quake-dashboard/internal/models"
)

// NormalizeStats counts what Normalize kept and why it dropped the rest.
type NormalizeStats struct {
	Kept              int
	MissingMagnitude  int
	MalformedGeometry int
}

func (s NormalizeStats) Dropped() int {
	return s.MissingMagnitude + s.MalformedGeometry
}

// Normalize flattens raw feed records into events, preserving input order.
// Records without a magnitude or without a full [lon, lat, depth]
// coordinate are dropped silently.
func Normalize(raw []models.RawEvent) []models.Event {
	events, _ := NormalizeWithStats(raw)
	return events
}

func NormalizeWithStats(raw []models.RawEvent) ([]models.Event, NormalizeStats) {
	var stats NormalizeStats
	events := make([]models.Event, 0, len(raw))

	for _, r := range raw {
		if r.Properties.Mag == nil {
			stats.MissingMagnitude++
			continue
		}
		if r.Geometry == nil || len(r.Geometry.Coordinates) < 3 {
			stats.MalformedGeometry++
			continue
		}

		coords := r.Geometry.Coordinates
		events = append(events, models.Event{
			ID:         r.ID,
			Place:      r.Properties.Place,
			Magnitude:  *r.Properties.Mag,
			OccurredAt: time.UnixMilli(r.Properties.Time).UTC(),
			Longitude:  coords[0],
			Latitude:   coords[1],
			DepthKm:    coords[2],
			DetailURL:  r.Properties.URL,
		})
	}

	stats.Kept = len(events)
	return events, stats
}
