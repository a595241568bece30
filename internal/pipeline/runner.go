package pipeline

import (
	"context"
	"log/slog"

	"github.com/jonboulle/clockwork"

	"github.com/mr1hm/go-quake-dashboard/internal/analysis"
	"github.com/mr1hm/go-quake-dashboard/internal/ingestion"
	"github.com/mr1hm/go-quake-dashboard/internal/metrics"
	"github.com/mr1hm/go-quake-dashboard/internal/models"
)

// Fetcher retrieves the raw feed. *ingestion.Client implements it.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]models.RawEvent, error)
}

// HealthReporter is told whether the last feed fetch succeeded.
type HealthReporter interface {
	SetFeedHealthy(healthy bool)
}

// Query holds the user-controlled parameters. Nil dates default to the
// range present in the data.
type Query struct {
	MinMagnitude float64
	Start        *models.Date
	End          *models.Date
}

func DefaultQuery() Query {
	return Query{MinMagnitude: models.DefaultMinMagnitude}
}

// Criteria resolves q against the loaded events.
func (q Query) Criteria(events []models.Event, clock clockwork.Clock) models.FilterCriteria {
	c := analysis.DefaultCriteria(events, q.MinMagnitude, clock)
	if q.Start != nil {
		c.StartDate = *q.Start
	}
	if q.End != nil {
		c.EndDate = *q.End
	}
	return c
}

// Runner executes the whole pipeline once per call. It holds no event data
// between calls.
type Runner struct {
	fetcher Fetcher
	feedURL string
	metrics *metrics.Metrics
	health  HealthReporter
	clock   clockwork.Clock
}

// NewRunner wires the pipeline. m, health and clock may be nil.
func NewRunner(fetcher Fetcher, feedURL string, m *metrics.Metrics, health HealthReporter, clock clockwork.Clock) *Runner {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Runner{
		fetcher: fetcher,
		feedURL: feedURL,
		metrics: m,
		health:  health,
		clock:   clock,
	}
}

// Load fetches and normalizes the feed.
func (r *Runner) Load(ctx context.Context) ([]models.Event, error) {
	raw, err := r.fetcher.Fetch(ctx, r.feedURL)
	if r.health != nil {
		r.health.SetFeedHealthy(err == nil)
	}
	if err != nil {
		return nil, err
	}

	events, stats := ingestion.NormalizeWithStats(raw)
	if r.metrics != nil {
		r.metrics.EventsNormalized.Add(float64(stats.Kept))
		r.metrics.EventsDropped.WithLabelValues(metrics.ReasonMissingMagnitude).Add(float64(stats.MissingMagnitude))
		r.metrics.EventsDropped.WithLabelValues(metrics.ReasonMalformedGeometry).Add(float64(stats.MalformedGeometry))
	}
	if stats.Dropped() > 0 {
		slog.Debug("dropped feed records", "missing_magnitude", stats.MissingMagnitude, "malformed_geometry", stats.MalformedGeometry)
	}
	return events, nil
}

// Run validates q, loads the feed and renders the view. A fetch failure
// aborts the run with no view.
func (r *Runner) Run(ctx context.Context, q Query) (View, error) {
	if err := analysis.Validate(models.FilterCriteria{MinMagnitude: q.MinMagnitude}); err != nil {
		return View{}, err
	}

	events, err := r.Load(ctx)
	if err != nil {
		return View{}, err
	}

	c := q.Criteria(events, r.clock)
	v := Render(events, c)
	slog.Debug("pipeline run complete",
		"available", v.Available,
		"matched", v.Summary.TotalCount,
		"min_magnitude", c.MinMagnitude,
		"start", c.StartDate.String(),
		"end", c.EndDate.String(),
	)
	return v, nil
}
