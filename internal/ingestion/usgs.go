package ingestion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/mr1hm/go-quake-dashboard/internal/metrics"
	"github.com/mr1hm/go-quake-dashboard/internal/models"
)

const DefaultTimeout = 15 * time.Second

type usgsResponse struct {
	Type     string            `json:"type"`
	Features []models.RawEvent `json:"features"`
}

// FetchError is returned for any failure to retrieve or decode the feed.
// It is fatal for the run: callers must not render partial results.
type FetchError struct {
	URL        string
	StatusCode int // 0 unless the server answered with a non-200 status
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: unexpected status code %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// IsFetchError reports whether err is, or wraps, a *FetchError.
func IsFetchError(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}

// Client retrieves the USGS GeoJSON summary feed.
type Client struct {
	httpClient *http.Client
	metrics    *metrics.Metrics
	clock      clockwork.Clock
}

// NewClient returns a Client whose requests give up after timeout.
// m and clock may be nil.
func NewClient(timeout time.Duration, m *metrics.Metrics, clock clockwork.Clock) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		metrics: m,
		clock:   clock,
	}
}

// Fetch issues a single GET against url and returns the feed's features
// unchanged. There is no retry.
func (c *Client) Fetch(ctx context.Context, url string) ([]models.RawEvent, error) {
	start := c.clock.Now()
	features, err := c.fetch(ctx, url)

	if c.metrics != nil {
		c.metrics.FeedFetchDuration.Observe(c.clock.Since(start).Seconds())
		outcome := metrics.OutcomeSuccess
		if err != nil {
			outcome = metrics.OutcomeError
		}
		c.metrics.FeedFetches.WithLabelValues(outcome).Inc()
	}
	if err != nil {
		slog.Error("feed fetch failed", "url", url, "error", err)
		return nil, err
	}

	slog.Debug("feed fetched", "url", url, "count", len(features))
	return features, nil
}

func (c *Client) fetch(ctx context.Context, url string) ([]models.RawEvent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("error creating request: %w", err)}
	}
	req.Header.Set("Accept", "application/geo+json, application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("error while doing request: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{URL: url, StatusCode: resp.StatusCode, Err: errors.New(resp.Status)}
	}

	var data usgsResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("error decoding resp.Body: %w", err)}
	}

	return data.Features, nil
}
