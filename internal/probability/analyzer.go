package probability

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/tanmay-bhatgare/nasa-spaceapp/internal/metrics"
	"github.com/tanmay-bhatgare/nasa-spaceapp/internal/openmeteo"
)

// Fetch windows. The archive trails real time by a few days, so the
// historical window ends ArchiveLagDays before the injected clock.
const (
	HistoricalYears     = 5
	ArchiveLagDays      = 7
	ForecastHorizonDays = openmeteo.MaxForecastDays

	DefaultTimeout = 45 * time.Second
)

// HistoricalSource fetches a multi-year daily archive series.
type HistoricalSource interface {
	FetchDaily(ctx context.Context, lat, lon float64, start, end time.Time, fields []string) (*openmeteo.DailySeries, []byte, error)
}

// ForecastSource fetches the short-range daily forecast series.
type ForecastSource interface {
	FetchDaily(ctx context.Context, lat, lon float64, fields []string, days int) (*openmeteo.DailySeries, []byte, error)
}

// DataSource tags which inputs contributed to a result.
type DataSource string

const (
	SourceCombined   DataSource = "combined"
	SourceHistorical DataSource = "historical"
	SourceDefault    DataSource = "default"
)

// Request is one analysis invocation. Now is the injected clock for window
// computation; the zero value falls back to wall-clock time.
type Request struct {
	Latitude  float64
	Longitude float64
	Date      time.Time
	Variables []string
	Now       time.Time
}

// Result is the output contract to the presentation layer. The raw payload
// references are kept for the snapshot store but excluded from the JSON
// contract.
type Result struct {
	Probability   int         `json:"probability"`
	MonthlyData   []MonthStat `json:"monthlyData"`
	DataSource    DataSource  `json:"dataSource"`
	HistoricalRaw []byte      `json:"-"`
	ForecastRaw   []byte      `json:"-"`
}

// Analyzer orchestrates the two fetches, aggregation, blending and month
// selection. Every invocation builds fresh local state and returns a value;
// nothing is shared across concurrent analyses.
type Analyzer struct {
	historical HistoricalSource
	forecast   ForecastSource

	// Timeout bounds one analysis end to end. Zero disables it.
	Timeout time.Duration
	// AlignByDate switches adverse counting from the positional walk to
	// date-aligned threshold checks.
	AlignByDate bool
}

func NewAnalyzer(historical HistoricalSource, forecast ForecastSource) *Analyzer {
	return &Analyzer{
		historical: historical,
		forecast:   forecast,
		Timeout:    DefaultTimeout,
	}
}

// Analyze runs one fetch-and-aggregate cycle. The historical and forecast
// fetches are issued concurrently and both settle before anything is
// consumed; neither cancels the other on failure. A failed or empty
// historical fetch degrades to the canned default series rather than an
// error; only caller cancellation surfaces as an error.
func (a *Analyzer) Analyze(ctx context.Context, req Request) (*Result, error) {
	now := req.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	parent := ctx
	if a.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.Timeout)
		defer cancel()
	}

	end := now.AddDate(0, 0, -ArchiveLagDays)
	start := end.AddDate(-HistoricalYears, 0, 0)

	histFields := openmeteo.FieldsFor(req.Variables)
	fcFields := openmeteo.ForecastFieldsFor(req.Variables)

	var (
		wg         sync.WaitGroup
		histSeries *openmeteo.DailySeries
		histRaw    []byte
		histErr    error
		fcSeries   *openmeteo.DailySeries
		fcRaw      []byte
		fcErr      error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		histSeries, histRaw, histErr = a.historical.FetchDaily(ctx, req.Latitude, req.Longitude, start, end, histFields)
	}()
	go func() {
		defer wg.Done()
		fcSeries, fcRaw, fcErr = a.forecast.FetchDaily(ctx, req.Latitude, req.Longitude, fcFields, ForecastHorizonDays)
	}()
	wg.Wait()

	// A superseded or abandoned invocation should not masquerade as a
	// default estimate.
	if err := parent.Err(); err != nil {
		return nil, err
	}

	if histErr != nil {
		log.Printf("analyzer: historical fetch failed, using defaults: %v", histErr)
		return a.defaultResult(req.Date), nil
	}
	if histSeries.Empty() {
		log.Printf("analyzer: historical series empty, using defaults")
		return a.defaultResult(req.Date), nil
	}

	stats := Aggregate(fromSeries(histSeries), a.AlignByDate)
	source := SourceHistorical

	if fcErr != nil {
		log.Printf("analyzer: forecast fetch failed, skipping blend: %v", fcErr)
	} else if !fcSeries.Empty() {
		stats = BlendForecast(stats, fromSeries(fcSeries), a.AlignByDate)
		source = SourceCombined
	}

	metrics.AnalysesTotal.WithLabelValues(string(source)).Inc()
	return &Result{
		Probability:   stats[int(req.Date.Month())-1].Probability,
		MonthlyData:   stats,
		DataSource:    source,
		HistoricalRaw: histRaw,
		ForecastRaw:   fcRaw,
	}, nil
}

func (a *Analyzer) defaultResult(date time.Time) *Result {
	metrics.AnalysesTotal.WithLabelValues(string(SourceDefault)).Inc()
	stats := DefaultStats()
	return &Result{
		Probability: stats[int(date.Month())-1].Probability,
		MonthlyData: stats,
		DataSource:  SourceDefault,
	}
}

// fromSeries reduces a provider daily block to the aggregator's input. The
// temperature reading for a day prefers the daily mean, falling back to the
// max and then the min when the provider omitted it.
func fromSeries(s *openmeteo.DailySeries) Daily {
	d := Daily{
		Dates:             s.Time,
		Precipitation:     s.PrecipitationSum,
		WindSpeed:         s.WindSpeedMax,
		PrecipProbability: s.PrecipProbabilityMax,
	}

	d.Temperature = make([]*float64, len(s.Time))
	for i := range s.Time {
		switch {
		case valueAt(s.TemperatureMean, i) != nil:
			d.Temperature[i] = valueAt(s.TemperatureMean, i)
		case valueAt(s.TemperatureMax, i) != nil:
			d.Temperature[i] = valueAt(s.TemperatureMax, i)
		default:
			d.Temperature[i] = valueAt(s.TemperatureMin, i)
		}
	}
	return d
}
