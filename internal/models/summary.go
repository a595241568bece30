package models

type DailyCount struct {
	Date  Date `json:"date"`
	Count int  `json:"count"`
}

// Summary is derived from a filtered event set. MaxMagnitude and
// MeanMagnitude are nil when the set is empty.
type Summary struct {
	TotalCount    int
	MaxMagnitude  *float64
	MeanMagnitude *float64
	DailyCounts   []DailyCount
}

// MaxOrZero returns the placeholder 0.0 for an empty set.
func (s Summary) MaxOrZero() float64 {
	if s.MaxMagnitude == nil {
		return 0
	}
	return *s.MaxMagnitude
}

func (s Summary) MeanOrZero() float64 {
	if s.MeanMagnitude == nil {
		return 0
	}
	return *s.MeanMagnitude
}
