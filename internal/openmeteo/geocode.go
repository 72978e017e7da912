package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/tanmay-bhatgare/nasa-spaceapp/internal/httputil"
)

const geocodeBaseURL = "https://geocoding-api.open-meteo.com/v1/search"

// GeocodeClient resolves free-text place names to candidate coordinates.
type GeocodeClient struct {
	// BaseURL may be overridden in tests.
	BaseURL string
	client  *http.Client
}

func NewGeocodeClient() *GeocodeClient {
	return &GeocodeClient{
		BaseURL: geocodeBaseURL,
		client:  httputil.NewClient(),
	}
}

// Search returns up to limit candidates for the query. An unknown place is
// not an error; it yields an empty slice.
func (c *GeocodeClient) Search(ctx context.Context, query string, limit int) ([]Location, error) {
	if limit <= 0 {
		limit = 5
	}

	q := url.Values{}
	q.Set("name", query)
	q.Set("count", strconv.Itoa(limit))
	q.Set("language", "en")
	q.Set("format", "json")

	body, err := fetchJSON(ctx, c.client, "geocode", c.BaseURL+"?"+q.Encode())
	if err != nil {
		return nil, err
	}

	var data geocodeResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("unmarshal geocode response: %w", err)
	}

	return data.Results, nil
}
