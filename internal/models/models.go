package models

import (
	"database/sql"
	"time"
)

type Station struct {
	StationID string  `json:"stationId"`
	Name      string  `json:"name"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Elevation float64 `json:"elevation"`
	Active    bool    `json:"active"`
}

// DailyRecord is the raw persisted row: one day of observations for one
// station. Temperatures are nullable here; only rows with all three fields
// present are handed to the analytics engine.
type DailyRecord struct {
	ID        int64
	StationID string
	Date      time.Time
	TempAvg   sql.NullFloat64
	TempMin   sql.NullFloat64
	TempMax   sql.NullFloat64
	Source    string // "csv", "openmeteo" or "gsod"
	CreatedAt time.Time
}

// Coverage summarizes how much of a station's history is on disk.
type Coverage struct {
	StationID    string    `json:"stationId"`
	Records      int       `json:"records"`
	CompleteDays int       `json:"completeDays"`
	FirstDate    time.Time `json:"firstDate"`
	LastDate     time.Time `json:"lastDate"`
}
