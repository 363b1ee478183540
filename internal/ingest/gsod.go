package ingest

import (
	"bufio"
	"compress/gzip"
	"database/sql"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/jlaffaye/ftp"

	"github.com/climatrend/climatrend/internal/models"
)

const (
	gsodFTPHost = "ftp.ncei.noaa.gov:21"
	gsodPath    = "/pub/data/gsod"
	gsodMissing = 9999.9
)

// GSODClient downloads yearly Global Summary of the Day archives from the
// NOAA FTP server. Station identity is the USAF-WBAN pair used in GSOD file
// names, e.g. "471080-99999" for Seoul.
type GSODClient struct {
	host string
}

func NewGSODClient() *GSODClient {
	return &GSODClient{host: gsodFTPHost}
}

// FetchYear retrieves and parses one station-year file. Temperatures arrive
// in °F and are converted to °C.
func (g *GSODClient) FetchYear(stationID, gsodID string, year int) ([]models.DailyRecord, error) {
	conn, err := ftp.Dial(g.host, ftp.DialWithTimeout(30*time.Second))
	if err != nil {
		return nil, fmt.Errorf("ftp dial: %w", err)
	}
	defer conn.Quit()

	if err := conn.Login("anonymous", "anonymous"); err != nil {
		return nil, fmt.Errorf("ftp login: %w", err)
	}

	path := fmt.Sprintf("%s/%d/%s-%d.op.gz", gsodPath, year, gsodID, year)
	resp, err := conn.Retr(path)
	if err != nil {
		return nil, fmt.Errorf("ftp retr %s: %w", path, err)
	}
	defer resp.Close()

	gz, err := gzip.NewReader(resp)
	if err != nil {
		return nil, fmt.Errorf("gzip open: %w", err)
	}
	defer gz.Close()

	return parseGSOD(gz, stationID)
}

// parseGSOD reads the whitespace-delimited GSOD .op layout. Field order:
// STN WBAN YEARMODA TEMP cnt DEWP cnt SLP cnt STP cnt VISIB cnt WDSP cnt
// MXSPD GUST MAX MIN PRCP SNDP FRSHTT. MAX/MIN may carry a trailing '*'
// (derived from hourly data); 9999.9 marks a missing value.
func parseGSOD(r io.Reader, stationID string) ([]models.DailyRecord, error) {
	var recs []models.DailyRecord
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "STN") || strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 19 {
			continue
		}

		date, err := time.Parse("20060102", fields[2])
		if err != nil {
			continue
		}

		rec := models.DailyRecord{
			StationID: stationID,
			Date:      date,
			TempAvg:   gsodTemp(fields[3]),
			TempMax:   gsodTemp(fields[17]),
			TempMin:   gsodTemp(fields[18]),
			Source:    "gsod",
		}
		if flags := ValidateDailyRecord(&rec); containsHardFlag(flags) {
			continue
		}
		recs = append(recs, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read gsod: %w", err)
	}
	return recs, nil
}

func gsodTemp(s string) sql.NullFloat64 {
	s = strings.TrimSuffix(s, "*")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f == gsodMissing {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: (f - 32) * 5 / 9, Valid: true}
}
