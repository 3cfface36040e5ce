package history

import (
	"sort"
	"time"

	"portfolio-engine/internal/marketdata"
)

// seriesIndex provides forward-filled lookups over one daily series.
// Markets publish no value on non-trading days, so the value "on" a date is
// the last observation at or before it.
type seriesIndex struct {
	dates  []time.Time
	values []float64
}

// newSeriesIndex builds an index over a series ordered by date ascending.
func newSeriesIndex(points []marketdata.PricePoint) *seriesIndex {
	ix := &seriesIndex{
		dates:  make([]time.Time, len(points)),
		values: make([]float64, len(points)),
	}
	for i, p := range points {
		ix.dates[i] = dateOnly(p.Date)
		ix.values[i] = p.Close
	}
	return ix
}

// valueOn returns the forward-filled value at d, or false when the series
// has no observation at or before d.
func (ix *seriesIndex) valueOn(d time.Time) (float64, bool) {
	d = dateOnly(d)
	// First index strictly after d; the observation before it is the fill.
	i := sort.Search(len(ix.dates), func(i int) bool {
		return ix.dates[i].After(d)
	})
	if i == 0 {
		return 0, false
	}
	return ix.values[i-1], true
}

// unionDates merges the date sets of several series into one sorted grid.
func unionDates(series ...[]marketdata.PricePoint) []time.Time {
	seen := make(map[time.Time]bool)
	for _, s := range series {
		for _, p := range s {
			seen[dateOnly(p.Date)] = true
		}
	}
	dates := make([]time.Time, 0, len(seen))
	for d := range seen {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// calendarDates returns every calendar day from 'from' through 'to'.
// Used for scopes holding only cash and GICs, which accrue on every day
// rather than only on trading days.
func calendarDates(from, to time.Time) []time.Time {
	from, to = dateOnly(from), dateOnly(to)
	var dates []time.Time
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
