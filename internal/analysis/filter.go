package analysis

import (
	"errors"
	"fmt"
	"math"

	"github.com/jonboulle/clockwork"

	"github.com/mr1hm/go-quake-dashboard/internal/models"
)

var ErrInvalidCriteria = errors.New("invalid filter criteria")

// Apply returns the events matching c, preserving their relative order.
func Apply(events []models.Event, c models.FilterCriteria) []models.Event {
	out := make([]models.Event, 0, len(events))
	for _, e := range events {
		if Matches(e, c) {
			out = append(out, e)
		}
	}
	return out
}

func Matches(e models.Event, c models.FilterCriteria) bool {
	if e.Magnitude < c.MinMagnitude {
		return false
	}
	d := e.Date()
	return !d.Before(c.StartDate) && !d.After(c.EndDate)
}

// Validate checks the magnitude bound. Date order is not checked.
func Validate(c models.FilterCriteria) error {
	m := c.MinMagnitude
	if math.IsNaN(m) || m < models.MinMagnitudeFloor || m > models.MinMagnitudeCeiling {
		return fmt.Errorf("%w: min_magnitude %v outside [%v, %v]",
			ErrInvalidCriteria, m, models.MinMagnitudeFloor, models.MinMagnitudeCeiling)
	}
	return nil
}

// DateRange returns the earliest and latest event dates. ok is false when
// events is empty.
func DateRange(events []models.Event) (first, last models.Date, ok bool) {
	if len(events) == 0 {
		return models.Date{}, models.Date{}, false
	}
	first, last = events[0].Date(), events[0].Date()
	for _, e := range events[1:] {
		d := e.Date()
		if d.Before(first) {
			first = d
		}
		if d.After(last) {
			last = d
		}
	}
	return first, last, true
}

// DefaultCriteria spans every date present in events. With no events both
// bounds fall on today's date according to clock.
func DefaultCriteria(events []models.Event, minMagnitude float64, clock clockwork.Clock) models.FilterCriteria {
	first, last, ok := DateRange(events)
	if !ok {
		today := models.DateOf(clock.Now())
		first, last = today, today
	}
	return models.FilterCriteria{
		MinMagnitude: minMagnitude,
		StartDate:    first,
		EndDate:      last,
	}
}
