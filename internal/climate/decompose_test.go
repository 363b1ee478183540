package climate

import (
	"testing"
	"time"
)

// zero-sum seasonal pattern used by the synthetic series below.
var seasonalPattern = [12]float64{-5, -4, -2, 0, 2, 4, 5, 4, 2, 0, -2, -4}

func syntheticMonthly(startYear, endYear int, base float64) []MonthStats {
	var out []MonthStats
	for year := startYear; year <= endYear; year++ {
		for m := time.January; m <= time.December; m++ {
			out = append(out, MonthStats{
				Year:    year,
				Month:   m,
				AvgTemp: base + seasonalPattern[int(m)-1],
				Days:    28,
			})
		}
	}
	return out
}

func TestDecomposeRecoversSeasonalSignal(t *testing.T) {
	monthly := syntheticMonthly(1990, 1999, 10.0)
	points := Decompose(monthly)

	if len(points) != len(monthly) {
		t.Fatalf("got %d points, want %d", len(points), len(monthly))
	}

	for i, p := range points {
		if i < 6 || i >= len(points)-6 {
			if p.Trend != nil {
				t.Errorf("point %d: trend defined at series edge", i)
			}
			if p.Residual != nil {
				t.Errorf("point %d: residual defined where trend is absent", i)
			}
			continue
		}
		if p.Trend == nil {
			t.Fatalf("point %d: trend missing in interior", i)
		}
		// A constant level plus zero-sum seasonality decomposes exactly.
		if !almostEqual(*p.Trend, 10.0, 1e-9) {
			t.Errorf("point %d: trend = %v, want 10.0", i, *p.Trend)
		}
		if !almostEqual(p.Seasonal, seasonalPattern[int(p.Month)-1], 1e-9) {
			t.Errorf("point %d (%v): seasonal = %v, want %v", i, p.Month, p.Seasonal, seasonalPattern[int(p.Month)-1])
		}
	}
}

func TestDecomposeRoundTrip(t *testing.T) {
	// A trending series with seasonality: observed must equal
	// trend + seasonal + residual wherever trend is defined.
	var monthly []MonthStats
	for year := 1990; year <= 1999; year++ {
		for m := time.January; m <= time.December; m++ {
			drift := 0.01 * float64((year-1990)*12+int(m)-1)
			monthly = append(monthly, MonthStats{
				Year:    year,
				Month:   m,
				AvgTemp: 10 + drift + seasonalPattern[int(m)-1],
			})
		}
	}

	for _, p := range Decompose(monthly) {
		if p.Trend == nil {
			continue
		}
		if p.Residual == nil {
			t.Fatalf("%d-%v: residual missing where trend defined", p.Year, p.Month)
		}
		sum := *p.Trend + p.Seasonal + *p.Residual
		if !almostEqual(sum, p.Observed, 1e-9) {
			t.Errorf("%d-%v: trend+seasonal+residual = %v, observed = %v", p.Year, p.Month, sum, p.Observed)
		}
	}
}

func TestDecomposeGapLeavesTrendAbsent(t *testing.T) {
	monthly := syntheticMonthly(1990, 1999, 10.0)

	// Remove June 1995: the window cannot center within 6 months of the gap.
	var gapped []MonthStats
	for _, ms := range monthly {
		if ms.Year == 1995 && ms.Month == time.June {
			continue
		}
		gapped = append(gapped, ms)
	}

	for _, p := range Decompose(gapped) {
		monthsFromGap := (p.Year-1995)*12 + int(p.Month) - int(time.June)
		if monthsFromGap < 0 {
			monthsFromGap = -monthsFromGap
		}
		if monthsFromGap <= 6 && p.Trend != nil {
			t.Errorf("%d-%v: trend defined %d months from gap", p.Year, p.Month, monthsFromGap)
		}
	}
}

func TestDecomposeShortSeries(t *testing.T) {
	monthly := syntheticMonthly(1990, 1990, 10.0) // 12 points, no centered window fits
	for i, p := range Decompose(monthly) {
		if p.Trend != nil {
			t.Errorf("point %d: trend defined on 12-point series", i)
		}
	}
}
