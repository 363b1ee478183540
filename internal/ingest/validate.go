package ingest

import "github.com/climatrend/climatrend/internal/models"

const (
	FlagTempMissing    = "temp_missing"
	FlagTempOutOfRange = "temp_out_of_range"
	FlagTempOrdering   = "temp_ordering"
)

// Plausible surface temperature bounds in °C. Anything outside is treated as
// a sensor or encoding artifact, not climate.
const (
	minPlausibleTemp = -70.0
	maxPlausibleTemp = 60.0
)

// ValidateDailyRecord returns quality flags for a raw row. Callers keep
// missing-temperature rows as gaps and drop rows with any other flag.
func ValidateDailyRecord(rec *models.DailyRecord) []string {
	var flags []string

	if !rec.TempAvg.Valid || !rec.TempMin.Valid || !rec.TempMax.Valid {
		flags = append(flags, FlagTempMissing)
		return flags
	}

	for _, v := range []float64{rec.TempAvg.Float64, rec.TempMin.Float64, rec.TempMax.Float64} {
		if v < minPlausibleTemp || v > maxPlausibleTemp {
			flags = append(flags, FlagTempOutOfRange)
			break
		}
	}

	if rec.TempMin.Float64 > rec.TempAvg.Float64 || rec.TempAvg.Float64 > rec.TempMax.Float64 {
		flags = append(flags, FlagTempOrdering)
	}

	return flags
}
