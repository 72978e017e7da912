package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/tanmay-bhatgare/nasa-spaceapp/internal/httputil"
)

const forecastBaseURL = "https://api.open-meteo.com/v1/forecast"

// MaxForecastDays is the provider's forecast horizon limit.
const MaxForecastDays = 16

// ForecastClient fetches the short-range daily forecast.
type ForecastClient struct {
	// BaseURL may be overridden in tests.
	BaseURL string
	client  *http.Client
}

func NewForecastClient() *ForecastClient {
	return &ForecastClient{
		BaseURL: forecastBaseURL,
		client:  httputil.NewClient(),
	}
}

// FetchDaily retrieves the daily forecast series for the coordinate. The
// horizon is clamped to the provider limit. Unlike the archive, the forecast
// additionally offers precipitation_probability_max.
func (c *ForecastClient) FetchDaily(ctx context.Context, lat, lon float64, fields []string, days int) (*DailySeries, []byte, error) {
	if days <= 0 || days > MaxForecastDays {
		days = MaxForecastDays
	}

	q := url.Values{}
	q.Set("latitude", fmt.Sprintf("%.4f", lat))
	q.Set("longitude", fmt.Sprintf("%.4f", lon))
	q.Set("daily", strings.Join(fields, ","))
	q.Set("timezone", "auto")
	q.Set("forecast_days", strconv.Itoa(days))

	body, err := fetchJSON(ctx, c.client, "forecast", c.BaseURL+"?"+q.Encode())
	if err != nil {
		return nil, nil, err
	}

	var data dailyResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, body, fmt.Errorf("unmarshal forecast response: %w", err)
	}
	if data.Daily == nil {
		return nil, body, fmt.Errorf("forecast response has no daily block")
	}

	return data.Daily, body, nil
}
