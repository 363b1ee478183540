package climate

import "time"

// AnnualAnomaly is one year's mean temperature and its deviation from the
// annual baseline.
type AnnualAnomaly struct {
	Year    int     `json:"year"`
	AvgTemp float64 `json:"avgTemp"`
	Anomaly float64 `json:"anomaly"`
}

// MonthlyAnomaly is one month's mean temperature and its deviation from the
// matching calendar-month baseline.
type MonthlyAnomaly struct {
	Year    int        `json:"year"`
	Month   time.Month `json:"month"`
	AvgTemp float64    `json:"avgTemp"`
	Anomaly float64    `json:"anomaly"`
}

// AnnualAnomalies subtracts the single annual baseline scalar from each
// qualifying year's mean. Values are invariant under input reordering; output
// is sorted ascending by year.
func AnnualAnomalies(recs []DailyRecord, cfg Config) []AnnualAnomaly {
	baseline := AnnualBaseline(recs, cfg.BaselineStart, cfg.BaselineEnd)
	annual := AnnualStats(recs, cfg)
	out := make([]AnnualAnomaly, 0, len(annual))
	for _, ys := range annual {
		out = append(out, AnnualAnomaly{
			Year:    ys.Year,
			AvgTemp: ys.AvgTemp,
			Anomaly: ys.AvgTemp - baseline,
		})
	}
	return out
}

// MonthlyAnomalies subtracts each month's matching calendar-month baseline,
// not the annual scalar. Months whose calendar month has no baseline (no
// reference-period data) are skipped rather than compared against zero.
// Output is sorted ascending by year, then month.
func MonthlyAnomalies(recs []DailyRecord, cfg Config) []MonthlyAnomaly {
	baselines := MonthlyBaselines(recs, cfg.BaselineStart, cfg.BaselineEnd)
	monthly := MonthlyStats(recs, cfg)
	out := make([]MonthlyAnomaly, 0, len(monthly))
	for _, ms := range monthly {
		base, ok := baselines[ms.Month]
		if !ok {
			continue
		}
		out = append(out, MonthlyAnomaly{
			Year:    ms.Year,
			Month:   ms.Month,
			AvgTemp: ms.AvgTemp,
			Anomaly: ms.AvgTemp - base,
		})
	}
	return out
}
