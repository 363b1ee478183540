package ingest

import (
	"context"
	"log"
	"time"

	"github.com/climatrend/climatrend/internal/metrics"
	"github.com/climatrend/climatrend/internal/store"
)

// Refresher keeps every active station's archive current by pulling the days
// since the last stored record from the Open-Meteo archive once per day.
type Refresher struct {
	store    *store.Store
	client   *OpenMeteoClient
	interval time.Duration
}

func NewRefresher(st *store.Store, client *OpenMeteoClient) *Refresher {
	return &Refresher{
		store:    st,
		client:   client,
		interval: 24 * time.Hour,
	}
}

func (r *Refresher) Run(ctx context.Context) {
	r.RefreshAll()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("ingest: refresher stopped")
			return
		case <-ticker.C:
			r.RefreshAll()
		}
	}
}

// RefreshAll extends each active station through yesterday. The archive
// publishes with a short delay, so today is never requested.
func (r *Refresher) RefreshAll() {
	stations, err := r.store.GetActiveStations()
	if err != nil {
		log.Printf("ingest: list stations: %v", err)
		return
	}

	yesterday := time.Now().UTC().AddDate(0, 0, -1).Truncate(24 * time.Hour)

	for _, station := range stations {
		latest, err := r.store.LatestRecordDate(station.StationID)
		if err != nil {
			log.Printf("ingest: latest date %s: %v", station.StationID, err)
			continue
		}
		if latest.IsZero() {
			log.Printf("ingest: %s has no records, skipping refresh (run a backfill first)", station.StationID)
			continue
		}

		start := latest.AddDate(0, 0, 1)
		if !start.Before(yesterday) {
			continue
		}

		recs, err := r.client.FetchDaily(station, start, yesterday)
		if err != nil {
			log.Printf("ingest: fetch %s: %v", station.StationID, err)
			continue
		}

		inserted, err := r.store.InsertDailyRecords(recs)
		if err != nil {
			log.Printf("ingest: insert %s: %v", station.StationID, err)
			continue
		}
		if inserted > 0 {
			metrics.RecordsIngested.WithLabelValues(station.StationID, "openmeteo").Add(float64(inserted))
			log.Printf("ingest: %s extended by %d days", station.StationID, inserted)
		}
	}
}
