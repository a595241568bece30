package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"sort"
	"strconv"
	"time"

	"github.com/mr1hm/go-quake-dashboard/internal/models"
)

const (
	FileName    = "filtered_earthquakes.csv"
	ContentType = "text/csv; charset=utf-8"

	// TimeLayout trims trailing fractional zeros, so whole seconds print
	// as "2024-01-01 00:00:00".
	TimeLayout = "2006-01-02 15:04:05.999999"
)

// Header is the column order consumers of the export depend on.
var Header = []string{"time", "place", "mag", "depth", "lon", "lat"}

var ErrBadHeader = errors.New("unexpected csv header")

// SortByTimeDesc returns a copy of events, newest first. Ties keep input order.
func SortByTimeDesc(events []models.Event) []models.Event {
	out := slices.Clone(events)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OccurredAt.After(out[j].OccurredAt)
	})
	return out
}

// WriteCSV writes events newest first under Header.
func WriteCSV(w io.Writer, events []models.Event) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("error writing header: %w", err)
	}

	for _, e := range SortByTimeDesc(events) {
		if err := cw.Write(record(e)); err != nil {
			return fmt.Errorf("error writing row %s: %w", e.ID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("error flushing csv: %w", err)
	}
	return nil
}

func record(e models.Event) []string {
	return []string{
		e.OccurredAt.UTC().Format(TimeLayout),
		e.Place,
		formatFloat(e.Magnitude),
		formatFloat(e.DepthKm),
		formatFloat(e.Longitude),
		formatFloat(e.Latitude),
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ReadCSV parses a file produced by WriteCSV. Only the exported columns are
// populated on the returned events.
func ReadCSV(r io.Reader) ([]models.Event, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Header)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("error reading header: %w", err)
	}
	if !slices.Equal(header, Header) {
		return nil, fmt.Errorf("%w: %v", ErrBadHeader, header)
	}

	events := []models.Event{}
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading line %d: %w", line, err)
		}

		e, err := parseRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		events = append(events, e)
	}
	return events, nil
}

func parseRecord(rec []string) (models.Event, error) {
	at, err := time.ParseInLocation(TimeLayout, rec[0], time.UTC)
	if err != nil {
		return models.Event{}, fmt.Errorf("invalid time %q: %w", rec[0], err)
	}

	var floats [4]float64
	for i, s := range rec[2:] {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return models.Event{}, fmt.Errorf("invalid %s %q: %w", Header[i+2], s, err)
		}
		floats[i] = f
	}

	return models.Event{
		OccurredAt: at,
		Place:      rec[1],
		Magnitude:  floats[0],
		DepthKm:    floats[1],
		Longitude:  floats[2],
		Latitude:   floats[3],
	}, nil
}
