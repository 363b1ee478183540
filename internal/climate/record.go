// Package climate implements the analytics engine that turns a station's raw
// daily temperature series into derived climate indicators: baselines,
// anomalies, decadal summaries, trend forecasts, outlier flags, and seasonal
// decomposition. Every function is pure and deterministic: it reads only its
// arguments, returns fresh values, and never touches the wall clock or does
// I/O, so concurrent analysis of different stations needs no locking.
package climate

import (
	"fmt"
	"sort"
	"time"
)

// DailyRecord is one day of validated observations for a single station.
// Callers must filter out rows with missing temperatures before handing a
// series to the engine; the engine assumes every field is present and real.
type DailyRecord struct {
	Date    time.Time
	AvgTemp float64
	MinTemp float64
	MaxTemp float64
}

// MonthDay keys a calendar day independent of year (Feb-29 included).
type MonthDay struct {
	Month time.Month
	Day   int
}

func (md MonthDay) String() string {
	return fmt.Sprintf("%02d-%02d", int(md.Month), md.Day)
}

// MarshalText lets MonthDay-keyed maps serialize as JSON objects with
// "MM-DD" keys.
func (md MonthDay) MarshalText() ([]byte, error) {
	return []byte(md.String()), nil
}

// dayOfYear is computed as a date difference from Jan 1 so it stays correct
// across leap years (366 possible values).
func dayOfYear(d time.Time) int {
	jan1 := time.Date(d.Year(), time.January, 1, 0, 0, 0, 0, d.Location())
	return int(d.Sub(jan1).Hours()/24) + 1
}

// sortedByDate returns a copy of recs ordered by date ascending. Engine
// outputs are defined to be reorder-invariant, so every entry point sorts
// its own copy rather than trusting caller ordering.
func sortedByDate(recs []DailyRecord) []DailyRecord {
	out := make([]DailyRecord, len(recs))
	copy(out, recs)
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}
