package climate

// Config holds every tunable the engine recognizes. Thresholds are parameters
// rather than constants so tests and other regions can recalibrate them.
type Config struct {
	// BaselineStart/BaselineEnd bound the reference period whose mean is the
	// zero point for anomalies.
	BaselineStart int
	BaselineEnd   int

	// NormalStart/NormalEnd bound the independent window used when monthly
	// normals are recomputed against a newer period (e.g. 1991-2020). They do
	// not affect anomaly baselines.
	NormalStart int
	NormalEnd   int

	// Coverage thresholds: years and months with fewer observed days are
	// dropped from every derived series.
	MinDaysPerYear  int
	MinDaysPerMonth int

	// ZScoreThreshold flags annual anomalies whose |z| strictly exceeds it.
	ZScoreThreshold float64

	// Exceedance-day thresholds in °C.
	TropicalNightMin float64
	HeatwaveMax      float64
	SummerDayMax     float64

	// RecentYears is the observation window for the flat-carry exceedance
	// projection in multi-horizon outlooks.
	RecentYears int
}

// DefaultConfig returns the standard parameter set: 1973-2000 baseline,
// 1991-2020 normals, KMA-style exceedance thresholds.
func DefaultConfig() Config {
	return Config{
		BaselineStart:    1973,
		BaselineEnd:      2000,
		NormalStart:      1991,
		NormalEnd:        2020,
		MinDaysPerYear:   300,
		MinDaysPerMonth:  20,
		ZScoreThreshold:  2.0,
		TropicalNightMin: 25,
		HeatwaveMax:      33,
		SummerDayMax:     25,
		RecentYears:      5,
	}
}
