package probability

import "math"

// Blend weights for combining the historical ratio with the forecast-derived
// ratio for months inside the forecast window.
const (
	historicalWeight = 0.7
	forecastWeight   = 0.3
)

// BlendForecast returns a copy of the historical series where every month
// covered by the forecast window has its probability replaced by the weighted
// blend. The forecast's adverse ratio is computed with the same grouping and
// thresholds as the historical one, plus the precipitation-probability rule.
// Months with no usable forecast days keep their historical probability, as
// do the day counts and averages, which always describe the historical data.
func BlendForecast(stats []MonthStat, forecast Daily, alignByDate bool) []MonthStat {
	out := make([]MonthStat, len(stats))
	copy(out, stats)

	buckets := groupByMonth(forecast)
	for m := range out {
		if m >= len(buckets) {
			break
		}
		b := &buckets[m]
		if b.empty() {
			continue
		}
		adverse, total := b.countAdverse(alignByDate)
		if total == 0 {
			continue
		}
		fcRatio := adverseRatio(adverse, total)
		blended := math.Round(float64(out[m].Probability)*historicalWeight + float64(fcRatio)*forecastWeight)
		out[m].Probability = clampRatio(int(blended))
	}
	return out
}
