// Package analysis holds the pure stages of the quake pipeline: filtering a
// normalized event set by magnitude and date, and summarizing the result.
//
// # Filtering
//
// An event matches a [models.FilterCriteria] when
//
//	magnitude >= MinMagnitude && StartDate <= date(OccurredAt) <= EndDate
//
// Dates compare at calendar-day granularity in UTC, so the time of day is
// ignored and both bounds are inclusive. An inverted range matches nothing.
// [Apply] always returns a fresh slice in input order and is idempotent.
//
// # Summaries
//
// [Summarize] reports the count, maximum and mean magnitude, and per-day
// counts in ascending date order. Days without events are omitted. Max and
// mean are nil for an empty set; presentation code substitutes 0.0.
// The mean is rounded to two decimal places, half away from zero.
//
// # Severity tiers
//
//	magnitude >= 6  high    (red)
//	magnitude >= 4  medium  (orange)
//	otherwise       low     (green)
package analysis
