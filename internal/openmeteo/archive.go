package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tanmay-bhatgare/nasa-spaceapp/internal/httputil"
)

const archiveBaseURL = "https://archive-api.open-meteo.com/v1/archive"

// ArchiveClient fetches multi-year daily history from the Open-Meteo archive.
type ArchiveClient struct {
	// BaseURL may be overridden in tests.
	BaseURL string
	client  *http.Client
}

func NewArchiveClient() *ArchiveClient {
	return &ArchiveClient{
		BaseURL: archiveBaseURL,
		client:  httputil.NewClient(),
	}
}

// FetchDaily retrieves the daily series for the coordinate over [start, end].
// Dates use the provider's local calendar (timezone=auto), matching how the
// aggregation groups by calendar month. The raw payload is returned alongside
// the parsed series.
func (c *ArchiveClient) FetchDaily(ctx context.Context, lat, lon float64, start, end time.Time, fields []string) (*DailySeries, []byte, error) {
	q := url.Values{}
	q.Set("latitude", fmt.Sprintf("%.4f", lat))
	q.Set("longitude", fmt.Sprintf("%.4f", lon))
	q.Set("start_date", start.Format("2006-01-02"))
	q.Set("end_date", end.Format("2006-01-02"))
	q.Set("daily", strings.Join(fields, ","))
	q.Set("timezone", "auto")

	body, err := fetchJSON(ctx, c.client, "archive", c.BaseURL+"?"+q.Encode())
	if err != nil {
		return nil, nil, err
	}

	var data dailyResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, body, fmt.Errorf("unmarshal archive response: %w", err)
	}
	if data.Daily == nil {
		return nil, body, fmt.Errorf("archive response has no daily block")
	}

	return data.Daily, body, nil
}
