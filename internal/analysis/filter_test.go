package analysis

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mr1hm/go-quake-dashboard/internal/models"
)

func day(t *testing.T, s string) models.Date {
	t.Helper()
	d, err := models.ParseDate(s)
	require.NoError(t, err)
	return d
}

func ev(id string, mag float64, at time.Time) models.Event {
	return models.Event{ID: id, Place: "place " + id, Magnitude: mag, OccurredAt: at}
}

func ids(events []models.Event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.ID
	}
	return out
}

func criteria(t *testing.T, minMag float64, start, end string) models.FilterCriteria {
	return models.FilterCriteria{MinMagnitude: minMag, StartDate: day(t, start), EndDate: day(t, end)}
}

func sampleEvents() []models.Event {
	return []models.Event{
		ev("a", 6.2, time.Date(2024, 1, 1, 3, 0, 0, 0, time.UTC)),
		ev("b", 3.5, time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC)),
		ev("c", 4.0, time.Date(2024, 1, 2, 23, 59, 59, 0, time.UTC)),
		ev("d", 5.1, time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)),
		ev("e", 7.0, time.Date(2023, 12, 31, 23, 59, 59, 999, time.UTC)),
	}
}

func TestApply(t *testing.T) {
	events := sampleEvents()

	tests := []struct {
		name     string
		criteria models.FilterCriteria
		want     []string
	}{
		{"magnitude bound is inclusive", criteria(t, 4.0, "2024-01-01", "2024-01-02"), []string{"a", "c"}},
		{"end date is inclusive to the last second", criteria(t, 0, "2024-01-02", "2024-01-02"), []string{"b", "c"}},
		{"start date ignores time of day", criteria(t, 0, "2024-01-03", "2024-01-10"), []string{"d"}},
		{"wide range keeps input order", criteria(t, 5.0, "2023-01-01", "2025-01-01"), []string{"a", "d", "e"}},
		{"inverted range is empty", criteria(t, 0, "2024-01-03", "2024-01-01"), []string{}},
		{"max magnitude excludes everything", criteria(t, 10, "2023-01-01", "2025-01-01"), []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(events, tt.criteria)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestApply_ExactBoundaries(t *testing.T) {
	events := []models.Event{ev("x", 4.0, time.Date(2024, 2, 29, 18, 30, 0, 0, time.UTC))}

	got := Apply(events, criteria(t, 4.0, "2024-02-01", "2024-02-29"))
	assert.Equal(t, []string{"x"}, ids(got))
}

func TestApply_EmptyInput(t *testing.T) {
	got := Apply(nil, criteria(t, 4.0, "2024-01-01", "2024-01-02"))
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestApply_Idempotent(t *testing.T) {
	c := criteria(t, 4.0, "2024-01-01", "2024-01-03")
	once := Apply(sampleEvents(), c)
	twice := Apply(once, c)
	assert.Equal(t, once, twice)
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	events := sampleEvents()
	before := append([]models.Event(nil), events...)

	got := Apply(events, criteria(t, 0, "2023-01-01", "2025-01-01"))
	require.Len(t, got, len(events))
	got[0].Magnitude = 9.9

	assert.Equal(t, before, events)
}

func TestApply_SubsetPreservesOrder(t *testing.T) {
	events := sampleEvents()
	got := Apply(events, criteria(t, 4.5, "2023-01-01", "2025-01-01"))

	pos := 0
	for _, g := range got {
		for pos < len(events) && events[pos] != g {
			pos++
		}
		require.Less(t, pos, len(events), "event %s not found in input order", g.ID)
		pos++
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(models.FilterCriteria{MinMagnitude: 0}))
	assert.NoError(t, Validate(models.FilterCriteria{MinMagnitude: 10}))
	assert.NoError(t, Validate(models.FilterCriteria{MinMagnitude: 4.0}))

	err := Validate(models.FilterCriteria{MinMagnitude: -0.1})
	assert.ErrorIs(t, err, ErrInvalidCriteria)

	err = Validate(models.FilterCriteria{MinMagnitude: 10.1})
	assert.ErrorIs(t, err, ErrInvalidCriteria)
	assert.Contains(t, err.Error(), "min_magnitude")
}

func TestDefaultCriteria_SpansData(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC))

	c := DefaultCriteria(sampleEvents(), 4.0, clock)
	assert.Equal(t, 4.0, c.MinMagnitude)
	assert.Equal(t, "2023-12-31", c.StartDate.String())
	assert.Equal(t, "2024-01-03", c.EndDate.String())
}

func TestDefaultCriteria_EmptyUsesToday(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2026, 10, 18, 22, 15, 0, 0, time.UTC))

	c := DefaultCriteria(nil, 2.5, clock)
	assert.Equal(t, "2026-10-18", c.StartDate.String())
	assert.Equal(t, "2026-10-18", c.EndDate.String())
	assert.Equal(t, 2.5, c.MinMagnitude)
}
