package climate

import (
	"testing"
	"time"
)

func TestAnnualStatsCoverageThreshold(t *testing.T) {
	cfg := DefaultConfig()

	recs := constantYear(2019, 10.0, 299)
	recs = append(recs, constantYear(2020, 12.0, 300)...)

	annual := AnnualStats(recs, cfg)
	if len(annual) != 1 {
		t.Fatalf("got %d years, want 1 (299-day year excluded)", len(annual))
	}
	if annual[0].Year != 2020 {
		t.Errorf("included year = %d, want 2020", annual[0].Year)
	}
	if annual[0].Days != 300 {
		t.Errorf("days = %d, want 300", annual[0].Days)
	}
	if !almostEqual(annual[0].AvgTemp, 12.0, 1e-9) {
		t.Errorf("avg = %v, want 12.0", annual[0].AvgTemp)
	}
}

func TestAnnualStatsExceedanceDays(t *testing.T) {
	cfg := DefaultConfig()
	recs := constantYear(2020, 10.0, 330)

	// One heatwave day (also a summer day), one tropical night, one plain
	// summer day. Thresholds are inclusive.
	recs[10].MaxTemp = 33.0
	recs[20].MinTemp = 25.0
	recs[30].MaxTemp = 25.0

	annual := AnnualStats(recs, cfg)
	if len(annual) != 1 {
		t.Fatalf("got %d years, want 1", len(annual))
	}
	ys := annual[0]
	if ys.HeatwaveDays != 1 {
		t.Errorf("heatwave days = %d, want 1", ys.HeatwaveDays)
	}
	if ys.TropicalNights != 1 {
		t.Errorf("tropical nights = %d, want 1", ys.TropicalNights)
	}
	if ys.SummerDays != 2 {
		t.Errorf("summer days = %d, want 2 (heatwave day counts too)", ys.SummerDays)
	}
}

func TestMonthlyStatsCoverageThreshold(t *testing.T) {
	cfg := DefaultConfig()

	var recs []DailyRecord
	for day := 1; day <= 19; day++ {
		recs = append(recs, DailyRecord{Date: time.Date(2020, time.March, day, 0, 0, 0, 0, time.UTC), AvgTemp: 5})
	}
	for day := 1; day <= 20; day++ {
		recs = append(recs, DailyRecord{Date: time.Date(2020, time.April, day, 0, 0, 0, 0, time.UTC), AvgTemp: 10})
	}

	monthly := MonthlyStats(recs, cfg)
	if len(monthly) != 1 {
		t.Fatalf("got %d months, want 1 (19-day month excluded)", len(monthly))
	}
	if monthly[0].Month != time.April || monthly[0].Days != 20 {
		t.Errorf("included month = %v with %d days, want April with 20", monthly[0].Month, monthly[0].Days)
	}
}

func TestGroupByYearSortsByDayOfYear(t *testing.T) {
	recs := []DailyRecord{
		{Date: time.Date(2020, time.December, 31, 0, 0, 0, 0, time.UTC)},
		{Date: time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)},
		{Date: time.Date(2020, time.February, 29, 0, 0, 0, 0, time.UTC)},
	}

	byYear := GroupByYear(recs)
	days := byYear[2020]
	if len(days) != 3 {
		t.Fatalf("got %d records, want 3", len(days))
	}
	if dayOfYear(days[0].Date) != 1 || dayOfYear(days[1].Date) != 60 || dayOfYear(days[2].Date) != 366 {
		t.Errorf("day-of-year order = %d,%d,%d, want 1,60,366",
			dayOfYear(days[0].Date), dayOfYear(days[1].Date), dayOfYear(days[2].Date))
	}
}

func TestDecadeSummaryPartialFirstDecade(t *testing.T) {
	annual := []YearStats{
		{Year: 1965, AvgTemp: 10.0},
		{Year: 1966, AvgTemp: 10.2},
		{Year: 1967, AvgTemp: 10.4},
		{Year: 1968, AvgTemp: 10.6},
	}

	decades := DecadeSummary(annual)
	if len(decades) != 1 {
		t.Fatalf("got %d decades, want 1", len(decades))
	}
	d := decades[0]
	if d.Label != "1960s" || d.StartYear != 1960 || d.EndYear != 1969 {
		t.Errorf("decade = %s [%d,%d], want 1960s [1960,1969]", d.Label, d.StartYear, d.EndYear)
	}
	if d.DiffFromFirst != 0 {
		t.Errorf("first decade DiffFromFirst = %v, want 0", d.DiffFromFirst)
	}
	if !almostEqual(d.AvgTemp, 10.3, 1e-9) {
		t.Errorf("avg = %v, want 10.3", d.AvgTemp)
	}
}

func TestDecadeSummaryDiffFromFirst(t *testing.T) {
	annual := []YearStats{
		{Year: 1971, AvgTemp: 10.0},
		{Year: 1972, AvgTemp: 10.0},
		{Year: 2021, AvgTemp: 12.5},
	}

	decades := DecadeSummary(annual)
	if len(decades) != 2 {
		t.Fatalf("got %d decades, want 2", len(decades))
	}
	// Diff is relative to the earliest decade present (1970s), not 1960s.
	if !almostEqual(decades[1].DiffFromFirst, 2.5, 1e-9) {
		t.Errorf("2020s DiffFromFirst = %v, want 2.5", decades[1].DiffFromFirst)
	}
}

func TestExtremeStatsFirstSeenWins(t *testing.T) {
	cfg := DefaultConfig()
	recs := []DailyRecord{
		{Date: time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC), MaxTemp: 38, MinTemp: -2},
		{Date: time.Date(2020, time.June, 1, 0, 0, 0, 0, time.UTC), MaxTemp: 38, MinTemp: -2},
		{Date: time.Date(2020, time.March, 1, 0, 0, 0, 0, time.UTC), MaxTemp: 30, MinTemp: 5},
	}

	ex := ExtremeStats(recs, cfg)
	want := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	if !ex.MaxTempDate.Equal(want) {
		t.Errorf("max temp date = %v, want first occurrence %v", ex.MaxTempDate, want)
	}
	if !ex.MinTempDate.Equal(want) {
		t.Errorf("min temp date = %v, want first occurrence %v", ex.MinTempDate, want)
	}
	if ex.MaxTemp != 38 || ex.MinTemp != -2 {
		t.Errorf("extremes = %v/%v, want 38/-2", ex.MaxTemp, ex.MinTemp)
	}
}
