package climate

import (
	"fmt"
	"math"
)

// TrendFit is a closed-form OLS fit of anomaly = Slope*year + Intercept.
type TrendFit struct {
	Slope          float64 `json:"slope"`
	Intercept      float64 `json:"intercept"`
	RSquared       float64 `json:"rSquared"`
	SlopePerDecade float64 `json:"slopePerDecade"`
}

// ForecastPoint is one projected year with its 95% prediction interval.
type ForecastPoint struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// ForecastResult bundles the fitted trend, the historical series it was
// fitted on, and the projected points.
type ForecastResult struct {
	Historical     []AnnualAnomaly `json:"historical"`
	Forecast       []ForecastPoint `json:"forecast"`
	Slope          float64         `json:"slope"`
	Intercept      float64         `json:"intercept"`
	RSquared       float64         `json:"rSquared"`
	SlopePerDecade float64         `json:"slopePerDecade"`
}

// HorizonOutlook is a multi-horizon point forecast converted back to absolute
// temperature, with projected exceedance-day counts.
type HorizonOutlook struct {
	YearsAhead     int     `json:"yearsAhead"`
	Year           int     `json:"year"`
	AvgTemp        float64 `json:"avgTemp"`
	Anomaly        float64 `json:"anomaly"`
	TropicalNights float64 `json:"tropicalNights"`
	HeatwaveDays   float64 `json:"heatwaveDays"`
	SummerDays     float64 `json:"summerDays"`
}

// olsFit holds the regression internals shared by the public entry points.
type olsFit struct {
	slope, intercept float64
	rSquared         float64
	se               float64 // residual standard error, sqrt(SSres/(n-2))
	xMean            float64
	sxx              float64
	n                int
}

func fitOLS(anoms []AnnualAnomaly) (olsFit, error) {
	n := len(anoms)
	if n < 3 {
		return olsFit{}, fmt.Errorf("%w: %d annual points, need at least 3", ErrInsufficientData, n)
	}

	var sumX, sumY, sumXY, sumXX float64
	for _, a := range anoms {
		x := float64(a.Year)
		sumX += x
		sumY += a.Anomaly
		sumXY += x * a.Anomaly
		sumXX += x * x
	}

	fn := float64(n)
	denom := fn*sumXX - sumX*sumX
	if denom == 0 {
		return olsFit{}, fmt.Errorf("%w: degenerate year spread", ErrInsufficientData)
	}

	fit := olsFit{n: n}
	fit.slope = (fn*sumXY - sumX*sumY) / denom
	fit.intercept = (sumY - fit.slope*sumX) / fn
	fit.xMean = sumX / fn

	var ssRes, ssTot float64
	yMean := sumY / fn
	for _, a := range anoms {
		pred := fit.slope*float64(a.Year) + fit.intercept
		ssRes += (a.Anomaly - pred) * (a.Anomaly - pred)
		ssTot += (a.Anomaly - yMean) * (a.Anomaly - yMean)
		dx := float64(a.Year) - fit.xMean
		fit.sxx += dx * dx
	}
	if ssTot == 0 {
		fit.rSquared = 0
	} else {
		fit.rSquared = 1 - ssRes/ssTot
	}
	fit.se = math.Sqrt(ssRes / float64(n-2))
	return fit, nil
}

// FitTrend fits the annual anomaly series via the normal equations. Returns
// ErrInsufficientData for fewer than three points.
func FitTrend(anoms []AnnualAnomaly) (TrendFit, error) {
	fit, err := fitOLS(anoms)
	if err != nil {
		return TrendFit{}, err
	}
	return TrendFit{
		Slope:          fit.slope,
		Intercept:      fit.intercept,
		RSquared:       fit.rSquared,
		SlopePerDecade: fit.slope * 10,
	}, nil
}

// ForecastAnomalies projects the fitted trend forward one point per year from
// lastObservedYear+1 through lastObservedYear+yearsAhead. The prediction
// interval half-width is 1.96*se*sqrt(1 + 1/n + (x-xMean)^2/Sxx), using the
// fixed normal-approximation critical value rather than a t-quantile; for
// series shorter than ~30 years this understates the interval slightly.
func ForecastAnomalies(anoms []AnnualAnomaly, yearsAhead int) (*ForecastResult, error) {
	fit, err := fitOLS(anoms)
	if err != nil {
		return nil, err
	}

	lastYear := anoms[0].Year
	for _, a := range anoms {
		if a.Year > lastYear {
			lastYear = a.Year
		}
	}

	result := &ForecastResult{
		Historical:     anoms,
		Slope:          fit.slope,
		Intercept:      fit.intercept,
		RSquared:       fit.rSquared,
		SlopePerDecade: fit.slope * 10,
	}

	for i := 1; i <= yearsAhead; i++ {
		year := lastYear + i
		x := float64(year)
		value := fit.slope*x + fit.intercept
		dx := x - fit.xMean
		half := 1.96 * fit.se * math.Sqrt(1+1/float64(fit.n)+dx*dx/fit.sxx)
		result.Forecast = append(result.Forecast, ForecastPoint{
			Year:  year,
			Value: value,
			Lower: value - half,
			Upper: value + half,
		})
	}
	return result, nil
}

// ProjectOutlook produces point forecasts at the given horizons (years ahead
// of the last observed year). Temperature is the trend-projected anomaly
// converted back to absolute via the annual baseline. Exceedance-day counts
// use a deliberately simpler model: the observed average over the most recent
// cfg.RecentYears qualifying years, carried forward flat. The two models are
// never blended.
func ProjectOutlook(annual []YearStats, anoms []AnnualAnomaly, baselineAnnual float64, horizons []int, cfg Config) ([]HorizonOutlook, error) {
	fit, err := fitOLS(anoms)
	if err != nil {
		return nil, err
	}

	lastYear := anoms[0].Year
	for _, a := range anoms {
		if a.Year > lastYear {
			lastYear = a.Year
		}
	}

	recent := cfg.RecentYears
	if recent < 1 {
		recent = 1
	}
	if recent > len(annual) {
		recent = len(annual)
	}
	var tropical, heatwave, summer float64
	for _, ys := range annual[len(annual)-recent:] {
		tropical += float64(ys.TropicalNights)
		heatwave += float64(ys.HeatwaveDays)
		summer += float64(ys.SummerDays)
	}
	tropical /= float64(recent)
	heatwave /= float64(recent)
	summer /= float64(recent)

	out := make([]HorizonOutlook, 0, len(horizons))
	for _, h := range horizons {
		year := lastYear + h
		anomaly := fit.slope*float64(year) + fit.intercept
		out = append(out, HorizonOutlook{
			YearsAhead:     h,
			Year:           year,
			AvgTemp:        baselineAnnual + anomaly,
			Anomaly:        anomaly,
			TropicalNights: tropical,
			HeatwaveDays:   heatwave,
			SummerDays:     summer,
		})
	}
	return out, nil
}
