package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	kongdotenv "github.com/titusjaka/kong-dotenv-go"
	_ "modernc.org/sqlite"

	"github.com/tanmay-bhatgare/nasa-spaceapp/internal/api"
	"github.com/tanmay-bhatgare/nasa-spaceapp/internal/openmeteo"
	"github.com/tanmay-bhatgare/nasa-spaceapp/internal/probability"
	"github.com/tanmay-bhatgare/nasa-spaceapp/internal/store"
)

type ServeCmd struct {
	Port        string        `help:"HTTP server port." default:"8080" env:"PORT"`
	DB          string        `help:"Path to the SQLite snapshot database." default:"data/paradecast.db" env:"PARADECAST_DB"`
	Timeout     time.Duration `help:"Per-analysis timeout." default:"45s" env:"ANALYZE_TIMEOUT"`
	AlignByDate bool          `help:"Evaluate adverse-day thresholds against the same calendar day instead of the positional walk." env:"ALIGN_BY_DATE"`
}

func (c *ServeCmd) Run() error {
	db, err := sql.Open("sqlite", c.DB)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA busy_timeout=5000")

	st := store.New(db)
	if err := st.Migrate(); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	analyzer := probability.NewAnalyzer(openmeteo.NewArchiveClient(), openmeteo.NewForecastClient())
	analyzer.Timeout = c.Timeout
	analyzer.AlignByDate = c.AlignByDate

	server := api.NewServer(analyzer, openmeteo.NewGeocodeClient(), st, c.Port)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Printf("starting server on :%s", c.Port)
	return server.Run(ctx)
}

type AnalyzeCmd struct {
	Lat         float64  `help:"Latitude of the location."`
	Lon         float64  `help:"Longitude of the location."`
	Place       string   `help:"Free-text place name, resolved via geocoding (alternative to --lat/--lon)."`
	Date        string   `help:"Target date, YYYY-MM-DD. Defaults to today."`
	Variables   []string `help:"Weather variables to request (temperature, precipitation, wind, humidity, cloud cover)." sep:","`
	AlignByDate bool     `help:"Evaluate adverse-day thresholds against the same calendar day instead of the positional walk."`
}

func (c *AnalyzeCmd) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	req := probability.Request{
		Latitude:  c.Lat,
		Longitude: c.Lon,
		Variables: c.Variables,
		Date:      time.Now().UTC(),
	}

	if c.Place != "" {
		candidates, err := openmeteo.NewGeocodeClient().Search(ctx, c.Place, 1)
		if err != nil {
			return fmt.Errorf("geocode %q: %w", c.Place, err)
		}
		if len(candidates) == 0 {
			return fmt.Errorf("no location found for %q", c.Place)
		}
		req.Latitude, req.Longitude = candidates[0].Latitude, candidates[0].Longitude
		log.Printf("resolved %q to %s (%.4f, %.4f)", c.Place, candidates[0].Name, req.Latitude, req.Longitude)
	} else if c.Lat == 0 && c.Lon == 0 {
		return fmt.Errorf("either --place or --lat/--lon required")
	}

	if c.Date != "" {
		d, err := time.Parse("2006-01-02", c.Date)
		if err != nil {
			return fmt.Errorf("invalid date %q, want YYYY-MM-DD", c.Date)
		}
		req.Date = d
	}

	analyzer := probability.NewAnalyzer(openmeteo.NewArchiveClient(), openmeteo.NewForecastClient())
	analyzer.AlignByDate = c.AlignByDate

	result, err := analyzer.Analyze(ctx, req)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

var cli struct {
	Serve   ServeCmd   `cmd:"" default:"withargs" help:"Run the HTTP API server."`
	Analyze AnalyzeCmd `cmd:"" help:"Run one analysis and print the result as JSON."`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("paradecast"),
		kong.Description("Adverse-weather probability estimates from Open-Meteo history and forecasts."),
		kong.Configuration(kongdotenv.ENVFileReader, ".env"),
	)
	ctx.FatalIfErrorf(ctx.Run())
}
