package climate

import "math"

// AnomalyFlag is one year's z-score classification against the anomaly
// series' own distribution.
type AnomalyFlag struct {
	Year      int     `json:"year"`
	Anomaly   float64 `json:"anomaly"`
	AvgTemp   float64 `json:"avgTemp"`
	ZScore    float64 `json:"zScore"`
	IsAnomaly bool    `json:"isAnomaly"`
}

// OutlierResult carries the flags plus the distribution parameters they were
// computed against, for downstream display and testing.
type OutlierResult struct {
	Flags     []AnomalyFlag `json:"flags"`
	Mean      float64       `json:"mean"`
	Std       float64       `json:"std"`
	Threshold float64       `json:"threshold"`
}

// DetectOutliers flags years whose anomaly lies strictly more than threshold
// population standard deviations from the series mean. Std divides by n, not
// n-1. A zero std yields z=0 for every year, so nothing is flagged. A z-score
// exactly at the threshold is not anomalous.
func DetectOutliers(anoms []AnnualAnomaly, threshold float64) OutlierResult {
	result := OutlierResult{Threshold: threshold}
	if len(anoms) == 0 {
		return result
	}

	var sum float64
	for _, a := range anoms {
		sum += a.Anomaly
	}
	result.Mean = sum / float64(len(anoms))

	var sq float64
	for _, a := range anoms {
		d := a.Anomaly - result.Mean
		sq += d * d
	}
	result.Std = math.Sqrt(sq / float64(len(anoms)))

	for _, a := range anoms {
		var z float64
		if result.Std != 0 {
			z = (a.Anomaly - result.Mean) / result.Std
		}
		result.Flags = append(result.Flags, AnomalyFlag{
			Year:      a.Year,
			Anomaly:   a.Anomaly,
			AvgTemp:   a.AvgTemp,
			ZScore:    z,
			IsAnomaly: math.Abs(z) > threshold,
		})
	}
	return result
}
