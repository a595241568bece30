package api

import (
	"time"

	"github.com/mr1hm/go-quake-dashboard/internal/analysis"
	"github.com/mr1hm/go-quake-dashboard/internal/models"
	"github.com/mr1hm/go-quake-dashboard/internal/pipeline"
)

type criteriaResponse struct {
	MinMagnitude float64     `json:"min_magnitude"`
	Start        models.Date `json:"start"`
	End          models.Date `json:"end"`
}

// summaryResponse substitutes 0.0 for max/mean on an empty set.
type summaryResponse struct {
	Criteria      criteriaResponse    `json:"criteria"`
	Available     int                 `json:"available"`
	TotalCount    int                 `json:"total_count"`
	MaxMagnitude  float64             `json:"max_magnitude"`
	MeanMagnitude float64             `json:"mean_magnitude"`
	DailyCounts   []models.DailyCount `json:"daily_counts"`
}

type chartsResponse struct {
	DailyCounts        []models.DailyCount `json:"daily_counts"`
	MagnitudeHistogram []analysis.Bin      `json:"magnitude_histogram"`
	DepthHistogram     []analysis.Bin      `json:"depth_histogram"`
}

type viewResponse struct {
	Summary summaryResponse     `json:"summary"`
	Points  []pipeline.MapPoint `json:"points"`
	Heat    [][3]float64        `json:"heat"`
	Charts  chartsResponse      `json:"charts"`
}

type tableRow struct {
	Time  time.Time `json:"time"`
	Place string    `json:"place"`
	Mag   float64   `json:"mag"`
	Depth float64   `json:"depth"`
	Lon   float64   `json:"lon"`
	Lat   float64   `json:"lat"`
}

type tableResponse struct {
	Sort  string     `json:"sort"`
	Order string     `json:"order"`
	Rows  []tableRow `json:"rows"`
}

func toSummaryResponse(v pipeline.View) summaryResponse {
	return summaryResponse{
		Criteria: criteriaResponse{
			MinMagnitude: v.Criteria.MinMagnitude,
			Start:        v.Criteria.StartDate,
			End:          v.Criteria.EndDate,
		},
		Available:     v.Available,
		TotalCount:    v.Summary.TotalCount,
		MaxMagnitude:  v.Summary.MaxOrZero(),
		MeanMagnitude: v.Summary.MeanOrZero(),
		DailyCounts:   v.Summary.DailyCounts,
	}
}

func toViewResponse(v pipeline.View) viewResponse {
	return viewResponse{
		Summary: toSummaryResponse(v),
		Points:  v.Points,
		Heat:    v.Heat,
		Charts: chartsResponse{
			DailyCounts:        v.Summary.DailyCounts,
			MagnitudeHistogram: v.MagnitudeHistogram,
			DepthHistogram:     v.DepthHistogram,
		},
	}
}

func toTableRows(events []models.Event) []tableRow {
	rows := make([]tableRow, len(events))
	for i, e := range events {
		rows[i] = tableRow{
			Time:  e.OccurredAt,
			Place: e.Place,
			Mag:   e.Magnitude,
			Depth: e.DepthKm,
			Lon:   e.Longitude,
			Lat:   e.Latitude,
		}
	}
	return rows
}
