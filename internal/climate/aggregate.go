package climate

import (
	"fmt"
	"sort"
	"time"
)

// YearStats summarizes one calendar year with sufficient coverage.
type YearStats struct {
	Year           int     `json:"year"`
	AvgTemp        float64 `json:"avgTemp"`
	MinTemp        float64 `json:"minTemp"`
	MaxTemp        float64 `json:"maxTemp"`
	Days           int     `json:"days"`
	TropicalNights int     `json:"tropicalNights"`
	HeatwaveDays   int     `json:"heatwaveDays"`
	SummerDays     int     `json:"summerDays"`
}

// MonthStats summarizes one (year, month) bucket with sufficient coverage.
type MonthStats struct {
	Year    int        `json:"year"`
	Month   time.Month `json:"month"`
	AvgTemp float64    `json:"avgTemp"`
	Days    int        `json:"days"`
}

// DecadeStats summarizes one decade as the mean of its qualifying yearly
// means, so each year contributes equally regardless of coverage variance.
type DecadeStats struct {
	Label         string  `json:"label"`
	StartYear     int     `json:"startYear"`
	EndYear       int     `json:"endYear"`
	AvgTemp       float64 `json:"avgTemp"`
	DiffFromFirst float64 `json:"diffFromFirst"`
	Years         int     `json:"years"`
}

// Extremes tracks the all-time temperature records and exceedance-day totals
// for a series.
type Extremes struct {
	MaxTemp        float64   `json:"maxTemp"`
	MaxTempDate    time.Time `json:"maxTempDate"`
	MinTemp        float64   `json:"minTemp"`
	MinTempDate    time.Time `json:"minTempDate"`
	TropicalNights int       `json:"tropicalNights"`
	HeatwaveDays   int       `json:"heatwaveDays"`
	SummerDays     int       `json:"summerDays"`
}

// Decade boundaries are fixed: 1960s through 2020s. Partial decades are
// included as long as they have at least one qualifying year.
const (
	firstDecade = 1960
	lastDecade  = 2020
)

// GroupByYear partitions records by calendar year, each partition sorted by
// day-of-year ascending.
func GroupByYear(recs []DailyRecord) map[int][]DailyRecord {
	byYear := make(map[int][]DailyRecord)
	for _, r := range recs {
		y := r.Date.Year()
		byYear[y] = append(byYear[y], r)
	}
	for y := range byYear {
		part := byYear[y]
		sort.Slice(part, func(i, j int) bool {
			return dayOfYear(part[i].Date) < dayOfYear(part[j].Date)
		})
	}
	return byYear
}

// AnnualStats aggregates the series into yearly summaries, dropping any year
// with fewer than cfg.MinDaysPerYear observed days. The drop is systemic:
// excluded years are absent from every year-keyed series downstream
// (anomalies, decades, forecasts). Output is sorted ascending by year.
func AnnualStats(recs []DailyRecord, cfg Config) []YearStats {
	var out []YearStats
	for year, days := range GroupByYear(recs) {
		if len(days) < cfg.MinDaysPerYear {
			continue
		}
		ys := YearStats{Year: year, Days: len(days)}
		var sum float64
		for i, d := range days {
			sum += d.AvgTemp
			if i == 0 || d.MaxTemp > ys.MaxTemp {
				ys.MaxTemp = d.MaxTemp
			}
			if i == 0 || d.MinTemp < ys.MinTemp {
				ys.MinTemp = d.MinTemp
			}
			if d.MinTemp >= cfg.TropicalNightMin {
				ys.TropicalNights++
			}
			if d.MaxTemp >= cfg.HeatwaveMax {
				ys.HeatwaveDays++
			}
			if d.MaxTemp >= cfg.SummerDayMax {
				ys.SummerDays++
			}
		}
		ys.AvgTemp = sum / float64(len(days))
		out = append(out, ys)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// MonthlyStats aggregates into (year, month) buckets, dropping buckets with
// fewer than cfg.MinDaysPerMonth observed days. Output is sorted ascending by
// year, then month.
func MonthlyStats(recs []DailyRecord, cfg Config) []MonthStats {
	type key struct {
		year  int
		month time.Month
	}
	sums := make(map[key]float64)
	counts := make(map[key]int)
	for _, r := range recs {
		k := key{year: r.Date.Year(), month: r.Date.Month()}
		sums[k] += r.AvgTemp
		counts[k]++
	}
	var out []MonthStats
	for k, n := range counts {
		if n < cfg.MinDaysPerMonth {
			continue
		}
		out = append(out, MonthStats{Year: k.year, Month: k.month, AvgTemp: sums[k] / float64(n), Days: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Month < out[j].Month
	})
	return out
}

// DecadeSummary groups qualifying yearly means into fixed decades. A decade's
// value is the mean of its yearly means. DiffFromFirst is computed against
// the earliest decade present in the data, not a fixed anchor, so the first
// decade always reads 0.
func DecadeSummary(annual []YearStats) []DecadeStats {
	var out []DecadeStats
	for start := firstDecade; start <= lastDecade; start += 10 {
		end := start + 9
		var sum float64
		var n int
		for _, ys := range annual {
			if ys.Year >= start && ys.Year <= end {
				sum += ys.AvgTemp
				n++
			}
		}
		if n == 0 {
			continue
		}
		out = append(out, DecadeStats{
			Label:     fmt.Sprintf("%ds", start),
			StartYear: start,
			EndYear:   end,
			AvgTemp:   sum / float64(n),
			Years:     n,
		})
	}
	for i := range out {
		out[i].DiffFromFirst = out[i].AvgTemp - out[0].AvgTemp
	}
	return out
}

// ExtremeStats scans the full series for all-time records and exceedance-day
// totals. Record comparisons are strict, so the first occurrence wins ties.
func ExtremeStats(recs []DailyRecord, cfg Config) Extremes {
	var ex Extremes
	for i, r := range sortedByDate(recs) {
		if i == 0 || r.MaxTemp > ex.MaxTemp {
			ex.MaxTemp = r.MaxTemp
			ex.MaxTempDate = r.Date
		}
		if i == 0 || r.MinTemp < ex.MinTemp {
			ex.MinTemp = r.MinTemp
			ex.MinTempDate = r.Date
		}
		if r.MinTemp >= cfg.TropicalNightMin {
			ex.TropicalNights++
		}
		if r.MaxTemp >= cfg.HeatwaveMax {
			ex.HeatwaveDays++
		}
		if r.MaxTemp >= cfg.SummerDayMax {
			ex.SummerDays++
		}
	}
	return ex
}
