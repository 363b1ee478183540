package climate

import (
	"testing"
	"time"
)

func TestAnnualBaseline(t *testing.T) {
	var recs []DailyRecord
	for year := 1973; year <= 2000; year++ {
		recs = append(recs, fullYear(year, 10.0)...)
	}
	// Out-of-range years must not shift the baseline.
	recs = append(recs, fullYear(1960, 50.0)...)
	recs = append(recs, fullYear(2020, 50.0)...)

	if got := AnnualBaseline(recs, 1973, 2000); !almostEqual(got, 10.0, 1e-9) {
		t.Errorf("AnnualBaseline = %v, want 10.0", got)
	}
}

func TestAnnualBaselineEmpty(t *testing.T) {
	if got := AnnualBaseline(nil, 1973, 2000); got != 0 {
		t.Errorf("AnnualBaseline(nil) = %v, want 0", got)
	}
	// Records entirely outside the window count as empty too.
	recs := fullYear(1950, 12.0)
	if got := AnnualBaseline(recs, 1973, 2000); got != 0 {
		t.Errorf("AnnualBaseline(out of range) = %v, want 0", got)
	}
}

func TestMonthlyBaselines(t *testing.T) {
	recs := []DailyRecord{
		{Date: time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC), AvgTemp: 0},
		{Date: time.Date(1980, time.January, 2, 0, 0, 0, 0, time.UTC), AvgTemp: 2},
		{Date: time.Date(1981, time.January, 5, 0, 0, 0, 0, time.UTC), AvgTemp: 4},
		{Date: time.Date(1980, time.July, 1, 0, 0, 0, 0, time.UTC), AvgTemp: 25},
		{Date: time.Date(1950, time.July, 1, 0, 0, 0, 0, time.UTC), AvgTemp: 100},
	}

	means := MonthlyBaselines(recs, 1973, 2000)
	if got := means[time.January]; !almostEqual(got, 2.0, 1e-9) {
		t.Errorf("January mean = %v, want 2.0", got)
	}
	if got := means[time.July]; !almostEqual(got, 25.0, 1e-9) {
		t.Errorf("July mean = %v, want 25.0", got)
	}
	if _, ok := means[time.March]; ok {
		t.Error("March should be absent with no qualifying records")
	}
}

func TestDailyBaselinesLeapDay(t *testing.T) {
	recs := []DailyRecord{
		{Date: time.Date(1996, time.February, 29, 0, 0, 0, 0, time.UTC), AvgTemp: 4},
		{Date: time.Date(2000, time.February, 29, 0, 0, 0, 0, time.UTC), AvgTemp: 6},
		{Date: time.Date(1996, time.February, 28, 0, 0, 0, 0, time.UTC), AvgTemp: 1},
		{Date: time.Date(1997, time.February, 28, 0, 0, 0, 0, time.UTC), AvgTemp: 3},
	}

	means := DailyBaselines(recs, 1973, 2000)
	// Feb-29 averaged only over the leap years present.
	if got := means[MonthDay{time.February, 29}]; !almostEqual(got, 5.0, 1e-9) {
		t.Errorf("Feb-29 mean = %v, want 5.0", got)
	}
	if got := means[MonthDay{time.February, 28}]; !almostEqual(got, 2.0, 1e-9) {
		t.Errorf("Feb-28 mean = %v, want 2.0", got)
	}
}
