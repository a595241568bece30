package pipeline

import (
	"time"

	"github.com/mr1hm/go-quake-dashboard/internal/analysis"
	"github.com/mr1hm/go-quake-dashboard/internal/models"
)

// MapPoint is one marker on the dashboard map.
type MapPoint struct {
	ID        string          `json:"id"`
	Place     string          `json:"place"`
	Magnitude float64         `json:"mag"`
	Time      time.Time       `json:"time"`
	DepthKm   float64         `json:"depth"`
	Longitude float64         `json:"lon"`
	Latitude  float64         `json:"lat"`
	URL       string          `json:"url"`
	Severity  models.Severity `json:"severity"`
	Color     string          `json:"color"`
}

// View is everything a presentation layer needs for one set of criteria.
type View struct {
	Criteria           models.FilterCriteria
	Available          int // events after normalization, before filtering
	Events             []models.Event
	Summary            models.Summary
	Points             []MapPoint
	Heat               [][3]float64 // [lat, lon, mag]
	MagnitudeHistogram []analysis.Bin
	DepthHistogram     []analysis.Bin
}

// Render filters events by c and derives the view. It does not modify events.
func Render(events []models.Event, c models.FilterCriteria) View {
	filtered := analysis.Apply(events, c)

	points := make([]MapPoint, len(filtered))
	heat := make([][3]float64, len(filtered))
	for i, e := range filtered {
		tier := analysis.Tier(e.Magnitude)
		points[i] = MapPoint{
			ID:        e.ID,
			Place:     e.Place,
			Magnitude: e.Magnitude,
			Time:      e.OccurredAt,
			DepthKm:   e.DepthKm,
			Longitude: e.Longitude,
			Latitude:  e.Latitude,
			URL:       e.DetailURL,
			Severity:  tier,
			Color:     tier.Color(),
		}
		heat[i] = [3]float64{e.Latitude, e.Longitude, e.Magnitude}
	}

	return View{
		Criteria:           c,
		Available:          len(events),
		Events:             filtered,
		Summary:            analysis.Summarize(filtered),
		Points:             points,
		Heat:               heat,
		MagnitudeHistogram: analysis.MagnitudeHistogram(filtered),
		DepthHistogram:     analysis.DepthHistogram(filtered),
	}
}
