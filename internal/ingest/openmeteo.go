package ingest

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/climatrend/climatrend/internal/httputil"
	"github.com/climatrend/climatrend/internal/metrics"
	"github.com/climatrend/climatrend/internal/models"
)

const openMeteoArchiveURL = "https://archive-api.open-meteo.com/v1/archive"

// OpenMeteoClient fetches historical daily temperatures from the Open-Meteo
// ERA5 archive API.
type OpenMeteoClient struct {
	baseURL string
	client  *http.Client
}

func NewOpenMeteoClient() *OpenMeteoClient {
	return &OpenMeteoClient{
		baseURL: openMeteoArchiveURL,
		client:  httputil.NewClient(),
	}
}

type archiveResponse struct {
	Daily struct {
		Time     []string   `json:"time"`
		TempMean []*float64 `json:"temperature_2m_mean"`
		TempMin  []*float64 `json:"temperature_2m_min"`
		TempMax  []*float64 `json:"temperature_2m_max"`
	} `json:"daily"`
}

// FetchDaily retrieves the daily series for a station's coordinates over
// [start, end]. Transient failures are retried with exponential backoff for
// up to a minute. Days with any missing temperature come back with null
// fields and are stored but excluded from the engine feed.
func (c *OpenMeteoClient) FetchDaily(station models.Station, start, end time.Time) ([]models.DailyRecord, error) {
	q := url.Values{}
	q.Set("latitude", fmt.Sprintf("%.4f", station.Latitude))
	q.Set("longitude", fmt.Sprintf("%.4f", station.Longitude))
	q.Set("start_date", start.Format("2006-01-02"))
	q.Set("end_date", end.Format("2006-01-02"))
	q.Set("daily", "temperature_2m_mean,temperature_2m_min,temperature_2m_max")
	q.Set("timezone", "UTC")
	reqURL := c.baseURL + "?" + q.Encode()

	var body []byte
	operation := func() error {
		started := time.Now()
		resp, err := c.client.Get(reqURL)
		metrics.ArchiveAPILatency.WithLabelValues("openmeteo").Observe(time.Since(started).Seconds())
		if err != nil {
			metrics.ArchiveAPICalls.WithLabelValues("openmeteo", "error").Inc()
			return err
		}
		defer resp.Body.Close()

		metrics.ArchiveAPICalls.WithLabelValues("openmeteo", fmt.Sprintf("%d", resp.StatusCode)).Inc()

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return fmt.Errorf("archive api status %d", resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			return backoff.Permanent(fmt.Errorf("archive api status %d", resp.StatusCode))
		}

		body, err = io.ReadAll(resp.Body)
		return err
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 1 * time.Minute
	if err := backoff.Retry(operation, bo); err != nil {
		return nil, fmt.Errorf("fetch archive for %s: %w", station.StationID, err)
	}

	var archive archiveResponse
	if err := json.Unmarshal(body, &archive); err != nil {
		return nil, fmt.Errorf("unmarshal archive response: %w", err)
	}

	recs := make([]models.DailyRecord, 0, len(archive.Daily.Time))
	for i, dateStr := range archive.Daily.Time {
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return nil, fmt.Errorf("parse archive date %q: %w", dateStr, err)
		}
		rec := models.DailyRecord{
			StationID: station.StationID,
			Date:      date,
			TempAvg:   nullAt(archive.Daily.TempMean, i),
			TempMin:   nullAt(archive.Daily.TempMin, i),
			TempMax:   nullAt(archive.Daily.TempMax, i),
			Source:    "openmeteo",
		}
		if flags := ValidateDailyRecord(&rec); containsHardFlag(flags) {
			continue
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func nullAt(vals []*float64, i int) sql.NullFloat64 {
	if i >= len(vals) || vals[i] == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *vals[i], Valid: true}
}

// containsHardFlag reports whether validation found anything beyond a missing
// temperature. Missing days are stored as gaps; implausible values are not
// stored at all.
func containsHardFlag(flags []string) bool {
	for _, f := range flags {
		if f != FlagTempMissing {
			return true
		}
	}
	return false
}
