package ingest

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/climatrend/climatrend/internal/models"
)

// ImportStats reports what a CSV import kept and dropped.
type ImportStats struct {
	Parsed  int
	Dropped int
}

// LoadCSV reads a daily archive in date,tavg,tmin,tmax order. A header row is
// detected and skipped. Rows that fail to parse or fail validation are
// dropped and counted; temperatures may be empty, producing rows the store
// keeps but the engine never sees.
func LoadCSV(path, stationID string) ([]models.DailyRecord, ImportStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ImportStats{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	recs, stats := parseCSV(f, stationID)
	return recs, stats, nil
}

func parseCSV(r io.Reader, stationID string) ([]models.DailyRecord, ImportStats) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var recs []models.DailyRecord
	var stats ImportStats
	line := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			stats.Dropped++
			continue
		}
		if len(row) < 4 {
			stats.Dropped++
			continue
		}

		date, err := time.Parse("2006-01-02", strings.TrimSpace(row[0]))
		if err != nil {
			// First unparseable date is almost always the header.
			if line > 1 {
				stats.Dropped++
			}
			continue
		}

		rec := models.DailyRecord{
			StationID: stationID,
			Date:      date,
			TempAvg:   parseNullTemp(row[1]),
			TempMin:   parseNullTemp(row[2]),
			TempMax:   parseNullTemp(row[3]),
			Source:    "csv",
		}

		if flags := ValidateDailyRecord(&rec); len(flags) > 0 && flags[0] != FlagTempMissing {
			log.Printf("ingest: dropping %s row %s: %s", stationID, row[0], strings.Join(flags, ","))
			stats.Dropped++
			continue
		}

		recs = append(recs, rec)
		stats.Parsed++
	}
	return recs, stats
}

func parseNullTemp(s string) sql.NullFloat64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return sql.NullFloat64{}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v, Valid: true}
}
