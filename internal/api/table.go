package api

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/mr1hm/go-quake-dashboard/internal/models"
)

var columnLess = map[string]func(a, b models.Event) bool{
	"time":  func(a, b models.Event) bool { return a.OccurredAt.Before(b.OccurredAt) },
	"place": func(a, b models.Event) bool { return a.Place < b.Place },
	"mag":   func(a, b models.Event) bool { return a.Magnitude < b.Magnitude },
	"depth": func(a, b models.Event) bool { return a.DepthKm < b.DepthKm },
	"lon":   func(a, b models.Event) bool { return a.Longitude < b.Longitude },
	"lat":   func(a, b models.Event) bool { return a.Latitude < b.Latitude },
}

// sortEvents returns a sorted copy. Equal keys keep their filtered order.
func sortEvents(events []models.Event, column, order string) ([]models.Event, error) {
	less, ok := columnLess[column]
	if !ok {
		return nil, fmt.Errorf("invalid sort column: %s", column)
	}

	var desc bool
	switch strings.ToLower(order) {
	case "asc":
	case "desc":
		desc = true
	default:
		return nil, fmt.Errorf("invalid sort order: %s", order)
	}

	out := slices.Clone(events)
	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out, nil
}
