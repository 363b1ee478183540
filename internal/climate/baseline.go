package climate

import "time"

// AnnualBaseline returns the mean of AvgTemp over all records whose year
// falls in [startYear, endYear]. Returns 0 when no records qualify; an empty
// reference period is a degenerate case, not an error.
func AnnualBaseline(recs []DailyRecord, startYear, endYear int) float64 {
	var sum float64
	var n int
	for _, r := range recs {
		y := r.Date.Year()
		if y < startYear || y > endYear {
			continue
		}
		sum += r.AvgTemp
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// MonthlyBaselines returns the per-calendar-month mean of AvgTemp over the
// reference period. Months with no qualifying records are absent from the
// map. Callers may pass a different window than the anomaly baseline, e.g.
// 1991-2020 when recomputing climate normals.
func MonthlyBaselines(recs []DailyRecord, startYear, endYear int) map[time.Month]float64 {
	sums := make(map[time.Month]float64)
	counts := make(map[time.Month]int)
	for _, r := range recs {
		y := r.Date.Year()
		if y < startYear || y > endYear {
			continue
		}
		m := r.Date.Month()
		sums[m] += r.AvgTemp
		counts[m]++
	}
	means := make(map[time.Month]float64, len(sums))
	for m, sum := range sums {
		means[m] = sum / float64(counts[m])
	}
	return means
}

// DailyBaselines returns the mean of AvgTemp for each calendar day across all
// qualifying years of the reference period. Feb-29 is keyed like any other
// day and so is averaged only over the leap years present in the window.
func DailyBaselines(recs []DailyRecord, startYear, endYear int) map[MonthDay]float64 {
	sums := make(map[MonthDay]float64)
	counts := make(map[MonthDay]int)
	for _, r := range recs {
		y := r.Date.Year()
		if y < startYear || y > endYear {
			continue
		}
		key := MonthDay{Month: r.Date.Month(), Day: r.Date.Day()}
		sums[key] += r.AvgTemp
		counts[key]++
	}
	means := make(map[MonthDay]float64, len(sums))
	for key, sum := range sums {
		means[key] = sum / float64(counts[key])
	}
	return means
}
