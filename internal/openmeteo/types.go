package openmeteo

// DailySeries is the provider's `daily` block: parallel arrays keyed by the
// `time` array of ISO calendar dates. Arrays for fields that were not
// requested are absent; individual entries may be null when the provider has
// no reading for that date, so value arrays use pointer elements.
type DailySeries struct {
	Time                 []string   `json:"time"`
	TemperatureMax       []*float64 `json:"temperature_2m_max"`
	TemperatureMin       []*float64 `json:"temperature_2m_min"`
	TemperatureMean      []*float64 `json:"temperature_2m_mean"`
	PrecipitationSum     []*float64 `json:"precipitation_sum"`
	WindSpeedMax         []*float64 `json:"wind_speed_10m_max"`
	PrecipProbabilityMax []*float64 `json:"precipitation_probability_max"`
	HumidityMean         []*float64 `json:"relative_humidity_2m_mean"`
	CloudCoverMean       []*float64 `json:"cloud_cover_mean"`
}

// Empty reports whether the series contains no dated records at all.
func (s *DailySeries) Empty() bool {
	return s == nil || len(s.Time) == 0
}

type dailyResponse struct {
	Latitude  float64      `json:"latitude"`
	Longitude float64      `json:"longitude"`
	Timezone  string       `json:"timezone"`
	Daily     *DailySeries `json:"daily"`
}

// Location is a geocoding candidate for a free-text place search.
type Location struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Country   string  `json:"country"`
	Admin1    string  `json:"admin1"`
	Timezone  string  `json:"timezone"`
}

type geocodeResponse struct {
	Results []Location `json:"results"`
}
