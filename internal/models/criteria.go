package models

// FilterCriteria narrows a set of events. Both date bounds are inclusive;
// an inverted range is legal and matches nothing.
type FilterCriteria struct {
	MinMagnitude float64 `json:"min_magnitude"`
	StartDate    Date    `json:"start_date"`
	EndDate      Date    `json:"end_date"`
}

const (
	MinMagnitudeFloor   = 0.0
	MinMagnitudeCeiling = 10.0
	DefaultMinMagnitude = 4.0
)
