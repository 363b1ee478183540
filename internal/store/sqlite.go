package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/climatrend/climatrend/internal/climate"
	"github.com/climatrend/climatrend/internal/models"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) UpsertStation(st models.Station) error {
	_, err := s.db.Exec(`
		INSERT INTO stations (station_id, name, country, latitude, longitude, elevation, active)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(station_id) DO UPDATE SET
			name = excluded.name,
			country = excluded.country,
			latitude = excluded.latitude,
			longitude = excluded.longitude,
			elevation = excluded.elevation,
			active = excluded.active
	`, st.StationID, st.Name, st.Country, st.Latitude, st.Longitude, st.Elevation, st.Active)
	return err
}

func (s *Store) GetStation(stationID string) (*models.Station, error) {
	row := s.db.QueryRow(`
		SELECT station_id, name, country, latitude, longitude, elevation, active
		FROM stations WHERE station_id = ?
	`, stationID)

	var st models.Station
	err := row.Scan(&st.StationID, &st.Name, &st.Country, &st.Latitude, &st.Longitude, &st.Elevation, &st.Active)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *Store) GetActiveStations() ([]models.Station, error) {
	rows, err := s.db.Query(`
		SELECT station_id, name, country, latitude, longitude, elevation, active
		FROM stations WHERE active = TRUE ORDER BY station_id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stations []models.Station
	for rows.Next() {
		var st models.Station
		if err := rows.Scan(&st.StationID, &st.Name, &st.Country, &st.Latitude, &st.Longitude, &st.Elevation, &st.Active); err != nil {
			return nil, err
		}
		stations = append(stations, st)
	}
	return stations, rows.Err()
}

// InsertDailyRecords bulk-inserts a batch inside one transaction. Existing
// (station, date) rows are left untouched, so re-importing an archive is
// idempotent. Returns the number of newly inserted rows.
func (s *Store) InsertDailyRecords(recs []models.DailyRecord) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO daily_records (station_id, date, temp_avg, temp_min, temp_max, source)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(station_id, date) DO NOTHING
	`)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, r := range recs {
		res, err := stmt.Exec(r.StationID, r.Date.Format("2006-01-02"), r.TempAvg, r.TempMin, r.TempMax, r.Source)
		if err != nil {
			return 0, fmt.Errorf("insert record %s/%s: %w", r.StationID, r.Date.Format("2006-01-02"), err)
		}
		if n, err := res.RowsAffected(); err == nil {
			inserted += int(n)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return inserted, nil
}

// DailySeries returns the station's validated engine feed: rows with all
// three temperatures present, ordered by date ascending. Incomplete rows stay
// in the table for provenance but never reach the engine.
func (s *Store) DailySeries(stationID string) ([]climate.DailyRecord, error) {
	rows, err := s.db.Query(`
		SELECT date, temp_avg, temp_min, temp_max
		FROM daily_records
		WHERE station_id = ?
		  AND temp_avg IS NOT NULL AND temp_min IS NOT NULL AND temp_max IS NOT NULL
		ORDER BY date ASC
	`, stationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var series []climate.DailyRecord
	for rows.Next() {
		var dateStr string
		var rec climate.DailyRecord
		if err := rows.Scan(&dateStr, &rec.AvgTemp, &rec.MinTemp, &rec.MaxTemp); err != nil {
			return nil, err
		}
		date, err := time.Parse("2006-01-02", dateStr[:10])
		if err != nil {
			return nil, fmt.Errorf("parse date %q: %w", dateStr, err)
		}
		rec.Date = date
		series = append(series, rec)
	}
	return series, rows.Err()
}

// GetCoverage reports record counts and the date span held for a station.
func (s *Store) GetCoverage(stationID string) (*models.Coverage, error) {
	row := s.db.QueryRow(`
		SELECT COUNT(*),
		       COUNT(CASE WHEN temp_avg IS NOT NULL AND temp_min IS NOT NULL AND temp_max IS NOT NULL THEN 1 END),
		       MIN(date), MAX(date)
		FROM daily_records
		WHERE station_id = ?
	`, stationID)

	var cov models.Coverage
	var first, last sql.NullString
	if err := row.Scan(&cov.Records, &cov.CompleteDays, &first, &last); err != nil {
		return nil, err
	}
	cov.StationID = stationID
	if cov.Records == 0 {
		return &cov, nil
	}
	var err error
	if cov.FirstDate, err = time.Parse("2006-01-02", first.String[:10]); err != nil {
		return nil, fmt.Errorf("parse first date %q: %w", first.String, err)
	}
	if cov.LastDate, err = time.Parse("2006-01-02", last.String[:10]); err != nil {
		return nil, fmt.Errorf("parse last date %q: %w", last.String, err)
	}
	return &cov, nil
}

// LatestRecordDate returns the most recent stored date for a station, or the
// zero time when the station has no records.
func (s *Store) LatestRecordDate(stationID string) (time.Time, error) {
	row := s.db.QueryRow(`SELECT MAX(date) FROM daily_records WHERE station_id = ?`, stationID)
	var latest sql.NullString
	if err := row.Scan(&latest); err != nil {
		return time.Time{}, err
	}
	if !latest.Valid {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", latest.String[:10])
}
