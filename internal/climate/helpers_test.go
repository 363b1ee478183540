package climate

import (
	"math"
	"time"
)

// constantYear returns n days of records for a year at a fixed temperature,
// starting Jan 1.
func constantYear(year int, temp float64, n int) []DailyRecord {
	recs := make([]DailyRecord, 0, n)
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		d := start.AddDate(0, 0, i)
		recs = append(recs, DailyRecord{Date: d, AvgTemp: temp, MinTemp: temp - 5, MaxTemp: temp + 5})
	}
	return recs
}

// fullYear returns a complete calendar year at a fixed temperature.
func fullYear(year int, temp float64) []DailyRecord {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year+1, time.January, 1, 0, 0, 0, 0, time.UTC)
	return constantYear(year, temp, int(end.Sub(start).Hours()/24))
}

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}
