package climate

import (
	"math"
	"testing"
)

func TestDetectOutliersFlagsExtremeYear(t *testing.T) {
	anoms := []AnnualAnomaly{
		{Year: 2000, Anomaly: 0.1},
		{Year: 2001, Anomaly: -0.1},
		{Year: 2002, Anomaly: 0.0},
		{Year: 2003, Anomaly: 0.2},
		{Year: 2004, Anomaly: -0.2},
		{Year: 2005, Anomaly: 3.0},
	}

	result := DetectOutliers(anoms, 2.0)
	if len(result.Flags) != 6 {
		t.Fatalf("got %d flags, want 6", len(result.Flags))
	}

	flagged := 0
	for _, f := range result.Flags {
		if f.IsAnomaly {
			flagged++
			if f.Year != 2005 {
				t.Errorf("unexpected anomaly year %d", f.Year)
			}
		}
	}
	if flagged != 1 {
		t.Errorf("flagged %d years, want 1", flagged)
	}

	// Residuals around the mean must cancel.
	var sum float64
	for _, f := range result.Flags {
		sum += f.Anomaly - result.Mean
	}
	if !almostEqual(sum, 0, 1e-9) {
		t.Errorf("sum of deviations = %v, want ~0", sum)
	}
}

func TestDetectOutliersBoundaryNotAnomalous(t *testing.T) {
	// Four zeros and a ten: mean=2, population std=4, so the last point sits
	// exactly at z=2.0. The comparison is strict, so it must not be flagged.
	anoms := []AnnualAnomaly{
		{Year: 2000, Anomaly: 0},
		{Year: 2001, Anomaly: 0},
		{Year: 2002, Anomaly: 0},
		{Year: 2003, Anomaly: 0},
		{Year: 2004, Anomaly: 10},
	}

	result := DetectOutliers(anoms, 2.0)
	if !almostEqual(result.Std, 4.0, 1e-9) {
		t.Fatalf("population std = %v, want 4.0 (divide by n)", result.Std)
	}
	last := result.Flags[4]
	if !almostEqual(last.ZScore, 2.0, 1e-9) {
		t.Fatalf("z = %v, want exactly 2.0", last.ZScore)
	}
	if last.IsAnomaly {
		t.Error("z exactly at threshold must not be anomalous")
	}
}

func TestDetectOutliersZeroStd(t *testing.T) {
	anoms := []AnnualAnomaly{
		{Year: 2000, Anomaly: 1.5},
		{Year: 2001, Anomaly: 1.5},
		{Year: 2002, Anomaly: 1.5},
	}

	result := DetectOutliers(anoms, 2.0)
	if result.Std != 0 {
		t.Fatalf("std = %v, want 0", result.Std)
	}
	for _, f := range result.Flags {
		if f.ZScore != 0 || f.IsAnomaly {
			t.Errorf("year %d: z=%v anomaly=%v, want z=0 and no flag", f.Year, f.ZScore, f.IsAnomaly)
		}
		if math.IsNaN(f.ZScore) {
			t.Errorf("year %d: z is NaN", f.Year)
		}
	}
}

func TestDetectOutliersEmpty(t *testing.T) {
	result := DetectOutliers(nil, 2.0)
	if len(result.Flags) != 0 || result.Mean != 0 || result.Std != 0 {
		t.Errorf("empty input should yield empty result, got %+v", result)
	}
}
