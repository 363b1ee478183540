package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/climatrend/climatrend/internal/climate"
	"github.com/climatrend/climatrend/internal/metrics"
)

const (
	defaultForecastYears = 30
	defaultSmoothWindow  = 5
)

var defaultHorizons = []int{10, 20, 30, 50}

func (s *Server) handleStations(w http.ResponseWriter, r *http.Request) {
	stations, err := s.store.GetActiveStations()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, stations)
}

func (s *Server) handleCoverage(w http.ResponseWriter, r *http.Request) {
	stationID := r.URL.Query().Get("station")
	if stationID == "" {
		http.Error(w, "station parameter required", http.StatusBadRequest)
		return
	}
	cov, err := s.store.GetCoverage(stationID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, cov)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.engineConfig(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	series, ok := s.loadSeries(w, r)
	if !ok {
		return
	}
	metrics.AnalysisRuns.WithLabelValues("summary").Inc()

	writeJSON(w, map[string]any{
		"annual":   climate.AnnualStats(series, cfg),
		"extremes": climate.ExtremeStats(series, cfg),
	})
}

func (s *Server) handleBaseline(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.engineConfig(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	series, ok := s.loadSeries(w, r)
	if !ok {
		return
	}
	metrics.AnalysisRuns.WithLabelValues("baseline").Inc()

	writeJSON(w, map[string]any{
		"referencePeriod": [2]int{cfg.BaselineStart, cfg.BaselineEnd},
		"normalPeriod":    [2]int{cfg.NormalStart, cfg.NormalEnd},
		"annualMean":      climate.AnnualBaseline(series, cfg.BaselineStart, cfg.BaselineEnd),
		"monthlyMeans":    climate.MonthlyBaselines(series, cfg.BaselineStart, cfg.BaselineEnd),
		"monthlyNormals":  climate.MonthlyBaselines(series, cfg.NormalStart, cfg.NormalEnd),
		"dailyMeans":      climate.DailyBaselines(series, cfg.BaselineStart, cfg.BaselineEnd),
	})
}

func (s *Server) handleAnnualAnomalies(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.engineConfig(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	series, ok := s.loadSeries(w, r)
	if !ok {
		return
	}
	metrics.AnalysisRuns.WithLabelValues("anomalies_annual").Inc()
	writeJSON(w, climate.AnnualAnomalies(series, cfg))
}

func (s *Server) handleMonthlyAnomalies(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.engineConfig(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	series, ok := s.loadSeries(w, r)
	if !ok {
		return
	}
	metrics.AnalysisRuns.WithLabelValues("anomalies_monthly").Inc()
	writeJSON(w, climate.MonthlyAnomalies(series, cfg))
}

func (s *Server) handleDecades(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.engineConfig(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	series, ok := s.loadSeries(w, r)
	if !ok {
		return
	}
	metrics.AnalysisRuns.WithLabelValues("decades").Inc()
	writeJSON(w, climate.DecadeSummary(climate.AnnualStats(series, cfg)))
}

func (s *Server) handleForecast(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.engineConfig(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	years := defaultForecastYears
	if v := r.URL.Query().Get("years"); v != "" {
		years, err = strconv.Atoi(v)
		if err != nil || years < 1 {
			http.Error(w, "invalid years: "+v, http.StatusBadRequest)
			return
		}
	}

	series, ok := s.loadSeries(w, r)
	if !ok {
		return
	}
	metrics.AnalysisRuns.WithLabelValues("forecast").Inc()

	result, err := climate.ForecastAnomalies(climate.AnnualAnomalies(series, cfg), years)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, result)
}

func (s *Server) handleOutlook(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.engineConfig(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	horizons := defaultHorizons
	if v := r.URL.Query().Get("horizons"); v != "" {
		horizons = nil
		for _, part := range strings.Split(v, ",") {
			h, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil || h < 1 {
				http.Error(w, "invalid horizons: "+v, http.StatusBadRequest)
				return
			}
			horizons = append(horizons, h)
		}
	}

	series, ok := s.loadSeries(w, r)
	if !ok {
		return
	}
	metrics.AnalysisRuns.WithLabelValues("outlook").Inc()

	annual := climate.AnnualStats(series, cfg)
	anoms := climate.AnnualAnomalies(series, cfg)
	baseline := climate.AnnualBaseline(series, cfg.BaselineStart, cfg.BaselineEnd)

	outlook, err := climate.ProjectOutlook(annual, anoms, baseline, horizons, cfg)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, outlook)
}

func (s *Server) handleOutliers(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.engineConfig(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	series, ok := s.loadSeries(w, r)
	if !ok {
		return
	}
	metrics.AnalysisRuns.WithLabelValues("outliers").Inc()
	writeJSON(w, climate.DetectOutliers(climate.AnnualAnomalies(series, cfg), cfg.ZScoreThreshold))
}

func (s *Server) handleDecomposition(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.engineConfig(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	series, ok := s.loadSeries(w, r)
	if !ok {
		return
	}
	metrics.AnalysisRuns.WithLabelValues("decomposition").Inc()
	writeJSON(w, climate.Decompose(climate.MonthlyStats(series, cfg)))
}

// handleSmoothed returns the annual mean series alongside its moving average,
// for chart consumers that want a smoothed trend line.
func (s *Server) handleSmoothed(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.engineConfig(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	window := defaultSmoothWindow
	if v := r.URL.Query().Get("window"); v != "" {
		window, err = strconv.Atoi(v)
		if err != nil || window < 1 {
			http.Error(w, "invalid window: "+v, http.StatusBadRequest)
			return
		}
	}

	series, ok := s.loadSeries(w, r)
	if !ok {
		return
	}
	metrics.AnalysisRuns.WithLabelValues("smoothed").Inc()

	annual := climate.AnnualStats(series, cfg)
	years := make([]int, len(annual))
	values := make([]float64, len(annual))
	for i, ys := range annual {
		years[i] = ys.Year
		values[i] = ys.AvgTemp
	}

	writeJSON(w, map[string]any{
		"window":   window,
		"years":    years,
		"values":   values,
		"smoothed": climate.MovingAverage(values, window),
	})
}
