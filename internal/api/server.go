package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/climatrend/climatrend/internal/climate"
	"github.com/climatrend/climatrend/internal/store"
)

type Server struct {
	store *store.Store
	cfg   climate.Config
	port  string
}

func NewServer(store *store.Store, cfg climate.Config, port string) *Server {
	return &Server{store: store, cfg: cfg, port: port}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/api/stations", s.handleStations)
	mux.HandleFunc("/api/stations/coverage", s.handleCoverage)
	mux.HandleFunc("/api/summary", s.handleSummary)
	mux.HandleFunc("/api/baseline", s.handleBaseline)
	mux.HandleFunc("/api/anomalies/annual", s.handleAnnualAnomalies)
	mux.HandleFunc("/api/anomalies/monthly", s.handleMonthlyAnomalies)
	mux.HandleFunc("/api/decades", s.handleDecades)
	mux.HandleFunc("/api/forecast", s.handleForecast)
	mux.HandleFunc("/api/outlook", s.handleOutlook)
	mux.HandleFunc("/api/outliers", s.handleOutliers)
	mux.HandleFunc("/api/decomposition", s.handleDecomposition)
	mux.HandleFunc("/api/smoothed", s.handleSmoothed)
	return mux
}

func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:    ":" + s.port,
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("api: encode response: %v", err)
	}
}

// writeError maps engine failures onto status codes: insufficient data is the
// caller's problem (422), everything else is ours (500).
func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, climate.ErrInsufficientData) {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

// engineConfig builds a per-request engine config: the server defaults with
// any recognized query-parameter overrides applied.
func (s *Server) engineConfig(r *http.Request) (climate.Config, error) {
	cfg := s.cfg
	q := r.URL.Query()

	intParams := map[string]*int{
		"baselineStart":   &cfg.BaselineStart,
		"baselineEnd":     &cfg.BaselineEnd,
		"normalStart":     &cfg.NormalStart,
		"normalEnd":       &cfg.NormalEnd,
		"minDaysPerYear":  &cfg.MinDaysPerYear,
		"minDaysPerMonth": &cfg.MinDaysPerMonth,
		"recentYears":     &cfg.RecentYears,
	}
	for name, dst := range intParams {
		if v := q.Get(name); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return cfg, errBadParam(name, v)
			}
			*dst = n
		}
	}

	floatParams := map[string]*float64{
		"threshold":        &cfg.ZScoreThreshold,
		"tropicalNightMin": &cfg.TropicalNightMin,
		"heatwaveMax":      &cfg.HeatwaveMax,
		"summerDayMax":     &cfg.SummerDayMax,
	}
	for name, dst := range floatParams {
		if v := q.Get(name); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return cfg, errBadParam(name, v)
			}
			*dst = f
		}
	}

	return cfg, nil
}

type paramError struct{ name, value string }

func (e paramError) Error() string { return "invalid " + e.name + ": " + e.value }

func errBadParam(name, value string) error { return paramError{name: name, value: value} }

// loadSeries resolves the station query parameter and loads its validated
// daily series.
func (s *Server) loadSeries(w http.ResponseWriter, r *http.Request) ([]climate.DailyRecord, bool) {
	stationID := r.URL.Query().Get("station")
	if stationID == "" {
		http.Error(w, "station parameter required", http.StatusBadRequest)
		return nil, false
	}

	station, err := s.store.GetStation(stationID)
	if err != nil {
		writeError(w, err)
		return nil, false
	}
	if station == nil {
		http.Error(w, "unknown station "+stationID, http.StatusBadRequest)
		return nil, false
	}

	series, err := s.store.DailySeries(stationID)
	if err != nil {
		writeError(w, err)
		return nil, false
	}
	return series, true
}
