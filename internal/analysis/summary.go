package analysis

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mr1hm/go-quake-dashboard/internal/models"
)

const meanPlaces = 2

// Summarize derives the summary statistics for an already filtered set.
func Summarize(events []models.Event) models.Summary {
	s := models.Summary{
		TotalCount:  len(events),
		DailyCounts: []models.DailyCount{},
	}
	if len(events) == 0 {
		return s
	}

	maxMag := events[0].Magnitude
	var sum float64
	perDay := make(map[models.Date]int)
	for _, e := range events {
		if e.Magnitude > maxMag {
			maxMag = e.Magnitude
		}
		sum += e.Magnitude
		perDay[e.Date()]++
	}

	mean := roundMean(sum / float64(len(events)))
	s.MaxMagnitude = &maxMag
	s.MeanMagnitude = &mean
	s.DailyCounts = DailyCounts(perDay)
	return s
}

// roundMean rounds half to even on the binary value of m, so 2.675
// (stored as 2.67499...) gives 2.67 and 0.125 gives 0.12.
func roundMean(m float64) float64 {
	return decimal.NewFromFloatWithExponent(m, -20).RoundBank(meanPlaces).InexactFloat64()
}

// DailyCounts flattens per-day counts into ascending date order.
func DailyCounts(perDay map[models.Date]int) []models.DailyCount {
	out := make([]models.DailyCount, 0, len(perDay))
	for d, n := range perDay {
		out = append(out, models.DailyCount{Date: d, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}
