package analysis

import "github.com/mr1hm/go-quake-dashboard/internal/models"

const (
	HighThreshold   = 6.0
	MediumThreshold = 4.0
)

// Tier buckets a magnitude for display. Lower bounds are inclusive.
func Tier(magnitude float64) models.Severity {
	switch {
	case magnitude >= HighThreshold:
		return models.SeverityHigh
	case magnitude >= MediumThreshold:
		return models.SeverityMedium
	default:
		return models.SeverityLow
	}
}
