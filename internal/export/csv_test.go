package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mr1hm/go-quake-dashboard/internal/models"
)

func TestWriteCSV_HeaderOnlyWhenEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t, "time,place,mag,depth,lon,lat\n", buf.String())
}

func TestWriteCSV_SortsNewestFirst(t *testing.T) {
	events := []models.Event{
		{ID: "old", Place: "Old", Magnitude: 4.1, OccurredAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "new", Place: "New", Magnitude: 5.3, OccurredAt: time.Date(2024, 1, 3, 6, 30, 0, 0, time.UTC)},
		{ID: "mid", Place: "Mid", Magnitude: 4.8, OccurredAt: time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC)},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, events))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[1], "2024-01-03 06:30:00,New,5.3"))
	assert.True(t, strings.HasPrefix(lines[2], "2024-01-02 12:00:00,Mid,4.8"))
	assert.True(t, strings.HasPrefix(lines[3], "2024-01-01 00:00:00,Old,4.1"))

	// input untouched
	assert.Equal(t, "old", events[0].ID)
}

func TestWriteCSV_QuotesPlacesWithCommas(t *testing.T) {
	events := []models.Event{{
		Place:      "12 km NNE of Ridgecrest, CA",
		Magnitude:  4.4,
		OccurredAt: time.Date(2024, 7, 4, 17, 33, 49, 0, time.UTC),
		DepthKm:    10.7,
		Longitude:  -117.5,
		Latitude:   35.7,
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, events))
	assert.Contains(t, buf.String(), `"12 km NNE of Ridgecrest, CA"`)
}

func TestCSV_RoundTrip(t *testing.T) {
	original := models.Event{
		ID:         "us7000a",
		Place:      "10 km S of Hualien City, Taiwan",
		Magnitude:  6.2,
		OccurredAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Longitude:  121.6,
		Latitude:   23.9,
		DepthKm:    12.5,
		DetailURL:  "https://earthquake.usgs.gov/earthquakes/eventpage/us7000a",
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, []models.Event{original}))

	got, err := ReadCSV(&buf)
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, original.Place, got[0].Place)
	assert.Equal(t, original.Magnitude, got[0].Magnitude)
	assert.Equal(t, original.DepthKm, got[0].DepthKm)
	assert.Equal(t, original.Longitude, got[0].Longitude)
	assert.Equal(t, original.Latitude, got[0].Latitude)
	assert.True(t, original.OccurredAt.Equal(got[0].OccurredAt))
}

func TestCSV_RoundTripMilliseconds(t *testing.T) {
	original := models.Event{
		Place:      "Unicodé – Ōita, Japan",
		Magnitude:  3.14159,
		OccurredAt: time.UnixMilli(1704067200123).UTC(),
		DepthKm:    -1.25,
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, []models.Event{original}))
	assert.Contains(t, buf.String(), "2024-01-01 00:00:00.123,")

	got, err := ReadCSV(&buf)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, original.OccurredAt.Equal(got[0].OccurredAt))
	assert.Equal(t, original.Place, got[0].Place)
	assert.Equal(t, original.Magnitude, got[0].Magnitude)
	assert.Equal(t, original.DepthKm, got[0].DepthKm)
}

func TestReadCSV_RejectsWrongHeader(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("place,mag,time,lon,lat,depth\n"))
	assert.ErrorIs(t, err, ErrBadHeader)
}

func TestReadCSV_RejectsBadNumber(t *testing.T) {
	in := "time,place,mag,depth,lon,lat\n2024-01-01 00:00:00,Somewhere,big,1,2,3\n"
	_, err := ReadCSV(strings.NewReader(in))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid mag")
}
