package analysis

import "github.com/mr1hm/go-quake-dashboard/internal/models"

// Bin counts used by the dashboard charts.
const (
	MagnitudeBins = 20
	DepthBins     = 30
)

type Bin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// Histogram splits [min(values), max(values)] into n equal-width bins.
// The last bin is closed on both ends. When every value is equal a single
// bin holds them all.
func Histogram(values []float64, n int) []Bin {
	if len(values) == 0 || n <= 0 {
		return []Bin{}
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if lo == hi {
		return []Bin{{Lower: lo, Upper: hi, Count: len(values)}}
	}

	width := (hi - lo) / float64(n)
	bins := make([]Bin, n)
	for i := range bins {
		bins[i].Lower = lo + float64(i)*width
		bins[i].Upper = lo + float64(i+1)*width
	}
	bins[n-1].Upper = hi

	for _, v := range values {
		idx := int((v - lo) / width)
		if idx >= n {
			idx = n - 1
		}
		bins[idx].Count++
	}
	return bins
}

func MagnitudeHistogram(events []models.Event) []Bin {
	values := make([]float64, len(events))
	for i, e := range events {
		values[i] = e.Magnitude
	}
	return Histogram(values, MagnitudeBins)
}

func DepthHistogram(events []models.Event) []Bin {
	values := make([]float64, len(events))
	for i, e := range events {
		values[i] = e.DepthKm
	}
	return Histogram(values, DepthBins)
}
