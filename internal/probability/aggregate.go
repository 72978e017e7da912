package probability

import (
	"math"
	"time"
)

// Threshold rules for flagging a day as adverse.
const (
	PrecipAdverseMM      = 5.0  // precipitation sum above this is a wet day
	TempColdAdverseC     = 5.0  // below this is too cold
	TempHotAdverseC      = 32.0 // above this is too hot
	WindAdverseKMH       = 25.0 // max wind speed above this is too windy
	PrecipProbAdversePct = 60.0 // forecast-only precipitation probability rule
)

// Reported ratios are clamped so the estimate never claims certainty either
// way. A month with no usable days reports RatioUnknown.
const (
	RatioMin     = 5
	RatioMax     = 95
	RatioUnknown = 50
)

// Daily is the field-parallel daily input consumed by the aggregator. The
// value slices may each be shorter than Dates, and individual entries may be
// nil; absence of a reading is a normal state, not an error.
type Daily struct {
	Dates             []string // ISO calendar dates, YYYY-MM-DD
	Temperature       []*float64
	Precipitation     []*float64
	WindSpeed         []*float64
	PrecipProbability []*float64 // forecast series only
}

// MonthStat is the derived per-calendar-month statistic. The series produced
// by Aggregate always has exactly 12 entries, January through December.
type MonthStat struct {
	Month            string  `json:"month"`
	Probability      int     `json:"probability"`
	AvgTemperature   float64 `json:"avgTemperature"`
	AvgPrecipitation float64 `json:"avgPrecipitation"`
	AvgWindSpeed     float64 `json:"avgWindSpeed"`
	AdverseDays      int     `json:"adverseDays"`
	TotalDays        int     `json:"totalDays"`
}

// dayValues is one source day's readings, kept together for date-aligned
// adverse counting.
type dayValues struct {
	temp       *float64
	precip     *float64
	wind       *float64
	precipProb *float64
}

// monthBucket merges records from every year that falls in the same calendar
// month. The dense per-field slices drop absent readings independently, so
// they may differ in length.
type monthBucket struct {
	temps       []float64
	precips     []float64
	winds       []float64
	precipProbs []float64
	records     []dayValues
}

func (b *monthBucket) empty() bool {
	return len(b.records) == 0
}

func valueAt(vals []*float64, i int) *float64 {
	if i < len(vals) {
		return vals[i]
	}
	return nil
}

func groupByMonth(d Daily) [12]monthBucket {
	var buckets [12]monthBucket
	for i, date := range d.Dates {
		t, err := time.Parse("2006-01-02", date)
		if err != nil {
			// An unparseable date carries no usable readings.
			continue
		}
		b := &buckets[int(t.Month())-1]

		rec := dayValues{
			temp:       valueAt(d.Temperature, i),
			precip:     valueAt(d.Precipitation, i),
			wind:       valueAt(d.WindSpeed, i),
			precipProb: valueAt(d.PrecipProbability, i),
		}
		b.records = append(b.records, rec)

		if rec.temp != nil {
			b.temps = append(b.temps, *rec.temp)
		}
		if rec.precip != nil {
			b.precips = append(b.precips, *rec.precip)
		}
		if rec.wind != nil {
			b.winds = append(b.winds, *rec.wind)
		}
		if rec.precipProb != nil {
			b.precipProbs = append(b.precipProbs, *rec.precipProb)
		}
	}
	return buckets
}

// countAdverse walks the month's readings and returns the adverse and total
// day counts. A position counts toward the total only when at least one field
// has a reading there.
//
// In positional mode the dense field sequences are walked in parallel by
// index, not by calendar date: once any field has gaps, a temperature and a
// precipitation value at the same index may come from different days. That is
// the historical behavior of this estimator. Date-aligned mode evaluates the
// thresholds against the per-day records instead.
func (b *monthBucket) countAdverse(alignByDate bool) (adverse, total int) {
	if alignByDate {
		for _, r := range b.records {
			any, bad := checkThresholds(r.temp, r.precip, r.wind, r.precipProb)
			if any {
				total++
				if bad {
					adverse++
				}
			}
		}
		return adverse, total
	}

	n := len(b.temps)
	for _, l := range []int{len(b.precips), len(b.winds), len(b.precipProbs)} {
		if l > n {
			n = l
		}
	}
	for i := 0; i < n; i++ {
		var temp, precip, wind, prob *float64
		if i < len(b.temps) {
			temp = &b.temps[i]
		}
		if i < len(b.precips) {
			precip = &b.precips[i]
		}
		if i < len(b.winds) {
			wind = &b.winds[i]
		}
		if i < len(b.precipProbs) {
			prob = &b.precipProbs[i]
		}
		any, bad := checkThresholds(temp, precip, wind, prob)
		if any {
			total++
			if bad {
				adverse++
			}
		}
	}
	return adverse, total
}

func checkThresholds(temp, precip, wind, precipProb *float64) (any, bad bool) {
	if precip != nil {
		any = true
		if *precip > PrecipAdverseMM {
			bad = true
		}
	}
	if temp != nil {
		any = true
		if *temp < TempColdAdverseC || *temp > TempHotAdverseC {
			bad = true
		}
	}
	if wind != nil {
		any = true
		if *wind > WindAdverseKMH {
			bad = true
		}
	}
	if precipProb != nil {
		any = true
		if *precipProb > PrecipProbAdversePct {
			bad = true
		}
	}
	return any, bad
}

// Aggregate groups a daily series by calendar month and derives the 12-entry
// MonthStat series, ordered January through December. Months with no records
// get RatioUnknown and zero averages.
func Aggregate(d Daily, alignByDate bool) []MonthStat {
	buckets := groupByMonth(d)

	stats := make([]MonthStat, 12)
	for m := 0; m < 12; m++ {
		b := &buckets[m]
		adverse, total := b.countAdverse(alignByDate)
		stats[m] = MonthStat{
			Month:            time.Month(m + 1).String(),
			Probability:      adverseRatio(adverse, total),
			AvgTemperature:   mean(b.temps),
			AvgPrecipitation: mean(b.precips),
			AvgWindSpeed:     mean(b.winds),
			AdverseDays:      adverse,
			TotalDays:        total,
		}
	}
	return stats
}

// adverseRatio converts day counts to a clamped percentage.
func adverseRatio(adverse, total int) int {
	if total == 0 {
		return RatioUnknown
	}
	return clampRatio(int(math.Round(float64(adverse) / float64(total) * 100)))
}

func clampRatio(r int) int {
	if r < RatioMin {
		return RatioMin
	}
	if r > RatioMax {
		return RatioMax
	}
	return r
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}
