package climate

import (
	"sort"
	"time"
)

// DecompositionPoint is one month of the classical additive decomposition
// observed = trend + seasonal + residual. Trend and Residual are nil for the
// first and last six points and wherever a gap in the month sequence prevents
// the moving average from centering.
type DecompositionPoint struct {
	Year     int        `json:"year"`
	Month    time.Month `json:"month"`
	Observed float64    `json:"observed"`
	Trend    *float64   `json:"trend"`
	Seasonal float64    `json:"seasonal"`
	Residual *float64   `json:"residual"`
}

// Decompose performs a single-pass classical additive decomposition of the
// monthly-mean series (observed values, not anomalies):
//
//   - trend: centered 2x12 moving average,
//     (0.5*x[i-6] + x[i-5] + ... + x[i+5] + 0.5*x[i+6]) / 12
//   - seasonal: per calendar month, the mean of observed-trend across all
//     points where trend is defined; one fixed index applied to every year
//   - residual: observed - trend - seasonal, nil where trend is nil
//
// There is no re-estimation loop; for a series of a few hundred monthly
// points the one-pass estimate is adequate.
func Decompose(monthly []MonthStats) []DecompositionPoint {
	series := make([]MonthStats, len(monthly))
	copy(series, monthly)
	sort.Slice(series, func(i, j int) bool {
		if series[i].Year != series[j].Year {
			return series[i].Year < series[j].Year
		}
		return series[i].Month < series[j].Month
	})

	n := len(series)
	out := make([]DecompositionPoint, n)
	for i, ms := range series {
		out[i] = DecompositionPoint{Year: ms.Year, Month: ms.Month, Observed: ms.AvgTemp}
	}

	// Absolute month index, used to detect gaps: the 2x12 window at i is only
	// valid when the 13 surrounding points are consecutive calendar months.
	idx := make([]int, n)
	for i, ms := range series {
		idx[i] = ms.Year*12 + int(ms.Month) - 1
	}

	for i := 6; i < n-6; i++ {
		if idx[i+6]-idx[i-6] != 12 {
			continue
		}
		sum := 0.5*series[i-6].AvgTemp + 0.5*series[i+6].AvgTemp
		for j := i - 5; j <= i+5; j++ {
			sum += series[j].AvgTemp
		}
		trend := sum / 12
		out[i].Trend = &trend
	}

	seasonalSums := make(map[time.Month]float64)
	seasonalCounts := make(map[time.Month]int)
	for i := range out {
		if out[i].Trend == nil {
			continue
		}
		m := series[i].Month
		seasonalSums[m] += out[i].Observed - *out[i].Trend
		seasonalCounts[m]++
	}
	seasonal := make(map[time.Month]float64, len(seasonalSums))
	for m, sum := range seasonalSums {
		seasonal[m] = sum / float64(seasonalCounts[m])
	}

	for i := range out {
		out[i].Seasonal = seasonal[series[i].Month]
		if out[i].Trend == nil {
			continue
		}
		residual := out[i].Observed - *out[i].Trend - out[i].Seasonal
		out[i].Residual = &residual
	}
	return out
}
