package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	kongdotenv "github.com/titusjaka/kong-dotenv-go"
	_ "modernc.org/sqlite"

	"github.com/climatrend/climatrend/internal/api"
	"github.com/climatrend/climatrend/internal/climate"
	"github.com/climatrend/climatrend/internal/ingest"
	"github.com/climatrend/climatrend/internal/metrics"
	"github.com/climatrend/climatrend/internal/models"
	"github.com/climatrend/climatrend/internal/report"
	"github.com/climatrend/climatrend/internal/store"
)

// Major KMA synoptic stations, seeded on every start so a fresh database is
// immediately usable.
var defaultStations = []models.Station{
	{StationID: "108", Name: "Seoul", Country: "KR", Latitude: 37.5714, Longitude: 126.9658, Elevation: 85.8, Active: true},
	{StationID: "112", Name: "Incheon", Country: "KR", Latitude: 37.4776, Longitude: 126.6244, Elevation: 71.4, Active: true},
	{StationID: "143", Name: "Daegu", Country: "KR", Latitude: 35.8779, Longitude: 128.6531, Elevation: 53.5, Active: true},
	{StationID: "159", Name: "Busan", Country: "KR", Latitude: 35.1047, Longitude: 129.0320, Elevation: 69.6, Active: true},
	{StationID: "184", Name: "Jeju", Country: "KR", Latitude: 33.5141, Longitude: 126.5297, Elevation: 20.5, Active: true},
}

var cli struct {
	DB string `name:"db" default:"data/climatrend.db" help:"Path to the SQLite database."`

	Serve     serveCmd     `cmd:"" help:"Run the HTTP API server with a daily archive refresher."`
	Import    importCmd    `cmd:"" help:"Import a daily CSV archive for a station."`
	Fetch     fetchCmd     `cmd:"" help:"Backfill a station from the Open-Meteo ERA5 archive."`
	FetchGSOD fetchGSODCmd `cmd:"" name:"fetch-gsod" help:"Backfill a station from the NOAA GSOD FTP archive."`
	Analyze   analyzeCmd   `cmd:"" help:"Print a trend analysis for a station."`
	Report    reportCmd    `cmd:"" help:"Generate a narrative climate report for a station."`
}

type appContext struct {
	store *store.Store
	cfg   climate.Config
}

type serveCmd struct {
	Port      string `default:"8080" help:"HTTP server port."`
	NoRefresh bool   `help:"Disable the daily archive refresher (server only, for local dev)."`
}

func (c *serveCmd) Run(app *appContext) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if !c.NoRefresh {
		refresher := ingest.NewRefresher(app.store, ingest.NewOpenMeteoClient())
		go refresher.Run(ctx)
	} else {
		log.Println("archive refresher disabled (--no-refresh)")
	}

	log.Printf("starting server on :%s", c.Port)
	return api.NewServer(app.store, app.cfg, c.Port).Run(ctx)
}

type importCmd struct {
	Station string `arg:"" help:"Station ID the file belongs to."`
	Path    string `arg:"" type:"existingfile" help:"CSV file in date,tavg,tmin,tmax order."`
}

func (c *importCmd) Run(app *appContext) error {
	recs, stats, err := ingest.LoadCSV(c.Path, c.Station)
	if err != nil {
		return err
	}

	inserted, err := app.store.InsertDailyRecords(recs)
	if err != nil {
		return err
	}
	if inserted > 0 {
		metrics.RecordsIngested.WithLabelValues(c.Station, "csv").Add(float64(inserted))
	}

	log.Printf("import: %s: %d rows parsed, %d dropped, %d new", c.Station, stats.Parsed, stats.Dropped, inserted)
	return nil
}

type fetchCmd struct {
	Station string `arg:"" help:"Station ID to backfill."`
	From    string `default:"1961-01-01" help:"First date to fetch (YYYY-MM-DD)."`
	To      string `help:"Last date to fetch (YYYY-MM-DD, default yesterday)."`
}

func (c *fetchCmd) Run(app *appContext) error {
	station, err := app.store.GetStation(c.Station)
	if err != nil {
		return err
	}
	if station == nil {
		return fmt.Errorf("unknown station %s", c.Station)
	}

	from, err := time.Parse("2006-01-02", c.From)
	if err != nil {
		return fmt.Errorf("parse --from: %w", err)
	}
	to := time.Now().UTC().AddDate(0, 0, -1).Truncate(24 * time.Hour)
	if c.To != "" {
		to, err = time.Parse("2006-01-02", c.To)
		if err != nil {
			return fmt.Errorf("parse --to: %w", err)
		}
	}

	recs, err := ingest.NewOpenMeteoClient().FetchDaily(*station, from, to)
	if err != nil {
		return err
	}

	inserted, err := app.store.InsertDailyRecords(recs)
	if err != nil {
		return err
	}
	if inserted > 0 {
		metrics.RecordsIngested.WithLabelValues(c.Station, "openmeteo").Add(float64(inserted))
	}

	log.Printf("fetch: %s: %d days fetched, %d new", c.Station, len(recs), inserted)
	return nil
}

type fetchGSODCmd struct {
	Station  string `arg:"" help:"Station ID to backfill."`
	GSODID   string `name:"gsod-id" required:"" help:"USAF-WBAN pair in GSOD file names, e.g. 471080-99999 for Seoul."`
	FromYear int    `default:"1961" help:"First year to fetch."`
	ToYear   int    `help:"Last year to fetch (default last year)."`
}

func (c *fetchGSODCmd) Run(app *appContext) error {
	toYear := c.ToYear
	if toYear == 0 {
		toYear = time.Now().Year() - 1
	}

	client := ingest.NewGSODClient()
	for year := c.FromYear; year <= toYear; year++ {
		recs, err := client.FetchYear(c.Station, c.GSODID, year)
		if err != nil {
			// Individual years are missing from the archive for many
			// stations; keep going.
			log.Printf("fetch-gsod: %s %d: %v", c.Station, year, err)
			continue
		}

		inserted, err := app.store.InsertDailyRecords(recs)
		if err != nil {
			return err
		}
		if inserted > 0 {
			metrics.RecordsIngested.WithLabelValues(c.Station, "gsod").Add(float64(inserted))
		}
		log.Printf("fetch-gsod: %s %d: %d days, %d new", c.Station, year, len(recs), inserted)
	}
	return nil
}

type analyzeCmd struct {
	Station string `arg:"" help:"Station ID to analyze."`
	Years   int    `default:"30" help:"Forecast horizon in years."`
}

func (c *analyzeCmd) Run(app *appContext) error {
	station, series, err := loadSeries(app, c.Station)
	if err != nil {
		return err
	}

	cfg := app.cfg
	annual := climate.AnnualStats(series, cfg)
	anoms := climate.AnnualAnomalies(series, cfg)
	extremes := climate.ExtremeStats(series, cfg)

	fmt.Printf("Station %s (%s): %d complete days, %d qualifying years\n",
		station.StationID, station.Name, len(series), len(annual))
	if len(annual) > 0 {
		fmt.Printf("Record: %d-%d\n", annual[0].Year, annual[len(annual)-1].Year)
	}
	fmt.Printf("All-time max %.1f°C on %s, min %.1f°C on %s\n",
		extremes.MaxTemp, extremes.MaxTempDate.Format("2006-01-02"),
		extremes.MinTemp, extremes.MinTempDate.Format("2006-01-02"))

	for _, d := range climate.DecadeSummary(annual) {
		fmt.Printf("  %s  %6.2f°C  %+.2f°C  (%d years)\n", d.Label, d.AvgTemp, d.DiffFromFirst, d.Years)
	}

	result, err := climate.ForecastAnomalies(anoms, c.Years)
	if err != nil {
		return err
	}
	fmt.Printf("Trend: %+.3f°C/decade (R²=%.2f)\n", result.SlopePerDecade, result.RSquared)
	last := result.Forecast[len(result.Forecast)-1]
	fmt.Printf("Projected anomaly %d: %+.2f°C [%+.2f, %+.2f]\n", last.Year, last.Value, last.Lower, last.Upper)

	outliers := climate.DetectOutliers(anoms, cfg.ZScoreThreshold)
	for _, f := range outliers.Flags {
		if f.IsAnomaly {
			fmt.Printf("Outlier year %d: anomaly %+.2f°C (z=%.2f)\n", f.Year, f.Anomaly, f.ZScore)
		}
	}
	return nil
}

type reportCmd struct {
	Station string `arg:"" help:"Station ID to report on."`
}

func (c *reportCmd) Run(app *appContext) error {
	station, series, err := loadSeries(app, c.Station)
	if err != nil {
		return err
	}

	cfg := app.cfg
	annual := climate.AnnualStats(series, cfg)
	anoms := climate.AnnualAnomalies(series, cfg)
	baseline := climate.AnnualBaseline(series, cfg.BaselineStart, cfg.BaselineEnd)

	facts := report.Facts{
		StationName: station.Name,
		Annual:      anoms,
		Decades:     climate.DecadeSummary(annual),
	}
	if trend, err := climate.ForecastAnomalies(anoms, 30); err == nil {
		facts.Trend = trend
	}
	if outlook, err := climate.ProjectOutlook(annual, anoms, baseline, []int{10, 30}, cfg); err == nil {
		facts.Outlook = outlook
	}

	gen, err := report.NewGenerator()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	text, err := gen.Generate(ctx, facts)
	if err != nil {
		return err
	}
	fmt.Println(text)
	return nil
}

func loadSeries(app *appContext, stationID string) (*models.Station, []climate.DailyRecord, error) {
	station, err := app.store.GetStation(stationID)
	if err != nil {
		return nil, nil, err
	}
	if station == nil {
		return nil, nil, fmt.Errorf("unknown station %s", stationID)
	}
	series, err := app.store.DailySeries(stationID)
	if err != nil {
		return nil, nil, err
	}
	return station, series, nil
}

func main() {
	ktx := kong.Parse(&cli,
		kong.Name("climatrend"),
		kong.Description("Long-term temperature trend analysis over daily station archives."),
		kong.Configuration(kongdotenv.ENVFileReader, ".env"),
	)

	db, err := sql.Open("sqlite", cli.DB)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA busy_timeout=5000")

	st := store.New(db)
	if err := st.Migrate(); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	for _, station := range defaultStations {
		if err := st.UpsertStation(station); err != nil {
			log.Fatalf("upsert station %s: %v", station.StationID, err)
		}
	}

	app := &appContext{store: st, cfg: climate.DefaultConfig()}
	ktx.FatalIfErrorf(ktx.Run(app))
}
