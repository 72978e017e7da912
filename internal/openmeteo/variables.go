package openmeteo

// Provider daily field names.
const (
	FieldTemperatureMax       = "temperature_2m_max"
	FieldTemperatureMin       = "temperature_2m_min"
	FieldTemperatureMean      = "temperature_2m_mean"
	FieldPrecipitationSum     = "precipitation_sum"
	FieldWindSpeedMax         = "wind_speed_10m_max"
	FieldPrecipProbabilityMax = "precipitation_probability_max"
	FieldHumidityMean         = "relative_humidity_2m_mean"
	FieldCloudCoverMean       = "cloud_cover_mean"
)

// variableFields maps user-facing variable labels to provider daily fields.
// Labels with no daily-field equivalent map to nothing: air quality lives on
// a separate provider API and visibility is hourly-only.
var variableFields = map[string][]string{
	"temperature":   {FieldTemperatureMax, FieldTemperatureMin, FieldTemperatureMean},
	"precipitation": {FieldPrecipitationSum},
	"wind":          {FieldWindSpeedMax},
	"humidity":      {FieldHumidityMean},
	"cloud cover":   {FieldCloudCoverMean},
	"air quality":   {},
	"visibility":    {},
}

// CoreFields are always requested: the adverse-day thresholds need
// temperature, precipitation and wind regardless of the user's selection.
var CoreFields = []string{
	FieldTemperatureMax,
	FieldTemperatureMin,
	FieldTemperatureMean,
	FieldPrecipitationSum,
	FieldWindSpeedMax,
}

// FieldsFor resolves user-facing labels to a deduplicated provider field
// list, always including the core fields. Unrecognized labels drop silently.
func FieldsFor(labels []string) []string {
	seen := make(map[string]bool)
	var fields []string

	add := func(fs []string) {
		for _, f := range fs {
			if !seen[f] {
				seen[f] = true
				fields = append(fields, f)
			}
		}
	}

	add(CoreFields)
	for _, label := range labels {
		add(variableFields[label])
	}
	return fields
}

// ForecastFieldsFor is FieldsFor plus the forecast-only precipitation
// probability field used by the blending rules.
func ForecastFieldsFor(labels []string) []string {
	return append(FieldsFor(labels), FieldPrecipProbabilityMax)
}
