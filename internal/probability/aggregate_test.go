package probability

import (
	"reflect"
	"testing"
	"time"
)

func f(v float64) *float64 {
	return &v
}

// days returns consecutive ISO dates starting at the given date.
func days(start string, n int) []string {
	t, err := time.Parse("2006-01-02", start)
	if err != nil {
		panic(err)
	}
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = t.AddDate(0, 0, i).Format("2006-01-02")
	}
	return out
}

func repeat(v float64, n int) []*float64 {
	out := make([]*float64, n)
	for i := range out {
		out[i] = f(v)
	}
	return out
}

func TestAggregate_AlwaysTwelveOrderedMonths(t *testing.T) {
	inputs := []Daily{
		{},
		{Dates: days("2023-07-01", 10), Precipitation: repeat(0, 10)},
		{Dates: days("2022-01-01", 365), Temperature: repeat(15, 365)},
	}

	for _, d := range inputs {
		stats := Aggregate(d, false)
		if len(stats) != 12 {
			t.Fatalf("expected 12 entries, got %d", len(stats))
		}
		for m := 0; m < 12; m++ {
			want := time.Month(m + 1).String()
			if stats[m].Month != want {
				t.Errorf("entry %d: month = %q, want %q", m, stats[m].Month, want)
			}
		}
	}
}

func TestAggregate_JulyRainScenario(t *testing.T) {
	// 10 July days, 3 of them wet, nothing else breaches a threshold.
	precip := repeat(0, 10)
	precip[1] = f(12.5)
	precip[4] = f(8)
	precip[8] = f(6.1)

	d := Daily{
		Dates:         days("2023-07-01", 10),
		Temperature:   repeat(20, 10),
		Precipitation: precip,
		WindSpeed:     repeat(10, 10),
	}

	stats := Aggregate(d, false)
	jul := stats[6]
	if jul.AdverseDays != 3 || jul.TotalDays != 10 {
		t.Errorf("counts = %d/%d, want 3/10", jul.AdverseDays, jul.TotalDays)
	}
	if jul.Probability != 30 {
		t.Errorf("probability = %d, want 30", jul.Probability)
	}
}

func TestAggregate_EmptyMonthDefaults(t *testing.T) {
	d := Daily{
		Dates:         days("2023-07-01", 5),
		Temperature:   repeat(20, 5),
		Precipitation: repeat(0, 5),
		WindSpeed:     repeat(5, 5),
	}

	stats := Aggregate(d, false)
	feb := stats[1]
	if feb.Probability != RatioUnknown {
		t.Errorf("empty month probability = %d, want %d", feb.Probability, RatioUnknown)
	}
	if feb.AvgTemperature != 0 || feb.AvgPrecipitation != 0 || feb.AvgWindSpeed != 0 {
		t.Errorf("empty month averages = %v/%v/%v, want zeros", feb.AvgTemperature, feb.AvgPrecipitation, feb.AvgWindSpeed)
	}
	if feb.AdverseDays != 0 || feb.TotalDays != 0 {
		t.Errorf("empty month counts = %d/%d, want 0/0", feb.AdverseDays, feb.TotalDays)
	}
}

func TestAggregate_ClampsExtremes(t *testing.T) {
	// 5 calm days: raw ratio 0 clamps up to 5.
	calm := Daily{
		Dates:         days("2023-04-01", 5),
		Temperature:   repeat(20, 5),
		Precipitation: repeat(0, 5),
		WindSpeed:     repeat(5, 5),
	}
	if got := Aggregate(calm, false)[3].Probability; got != RatioMin {
		t.Errorf("all-calm probability = %d, want %d", got, RatioMin)
	}

	// 5 wet days: raw ratio 100 clamps down to 95.
	wet := Daily{
		Dates:         days("2023-04-01", 5),
		Precipitation: repeat(20, 5),
	}
	if got := Aggregate(wet, false)[3].Probability; got != RatioMax {
		t.Errorf("all-wet probability = %d, want %d", got, RatioMax)
	}
}

func TestAggregate_ThresholdRules(t *testing.T) {
	tests := []struct {
		name    string
		d       Daily
		adverse int
	}{
		{
			name: "cold day",
			d: Daily{
				Dates:       days("2023-06-01", 1),
				Temperature: []*float64{f(2)},
			},
			adverse: 1,
		},
		{
			name: "hot day",
			d: Daily{
				Dates:       days("2023-06-01", 1),
				Temperature: []*float64{f(35)},
			},
			adverse: 1,
		},
		{
			name: "boundary temperature is not adverse",
			d: Daily{
				Dates:       days("2023-06-01", 2),
				Temperature: []*float64{f(5), f(32)},
			},
			adverse: 0,
		},
		{
			name: "windy day",
			d: Daily{
				Dates:     days("2023-06-01", 1),
				WindSpeed: []*float64{f(40)},
			},
			adverse: 1,
		},
		{
			name: "boundary precipitation is not adverse",
			d: Daily{
				Dates:         days("2023-06-01", 1),
				Precipitation: []*float64{f(5)},
			},
			adverse: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jun := Aggregate(tt.d, false)[5]
			if jun.AdverseDays != tt.adverse {
				t.Errorf("adverse = %d, want %d", jun.AdverseDays, tt.adverse)
			}
		})
	}
}

func TestAggregate_DaysWithNoReadingsExcluded(t *testing.T) {
	// Three dates, only the first has any reading at all.
	d := Daily{
		Dates:       days("2023-03-01", 3),
		Temperature: []*float64{f(20), nil, nil},
	}

	for _, align := range []bool{false, true} {
		mar := Aggregate(d, align)[2]
		if mar.TotalDays != 1 {
			t.Errorf("align=%v: total = %d, want 1", align, mar.TotalDays)
		}
	}
}

func TestAggregate_PositionalWalkVersusDateAligned(t *testing.T) {
	// Day 1 has only a wet precipitation reading, day 2 only a mild
	// temperature. The positional walk collapses both dense sequences onto
	// index 0 and sees a single compound day; date alignment keeps them
	// apart.
	d := Daily{
		Dates:         days("2023-09-01", 2),
		Temperature:   []*float64{nil, f(20)},
		Precipitation: []*float64{f(10), nil},
	}

	positional := Aggregate(d, false)[8]
	if positional.AdverseDays != 1 || positional.TotalDays != 1 {
		t.Errorf("positional counts = %d/%d, want 1/1", positional.AdverseDays, positional.TotalDays)
	}
	if positional.Probability != RatioMax {
		t.Errorf("positional probability = %d, want %d", positional.Probability, RatioMax)
	}

	aligned := Aggregate(d, true)[8]
	if aligned.AdverseDays != 1 || aligned.TotalDays != 2 {
		t.Errorf("aligned counts = %d/%d, want 1/2", aligned.AdverseDays, aligned.TotalDays)
	}
	if aligned.Probability != 50 {
		t.Errorf("aligned probability = %d, want 50", aligned.Probability)
	}
}

func TestAggregate_AveragesUseOwnSequences(t *testing.T) {
	d := Daily{
		Dates:         days("2023-05-01", 4),
		Temperature:   []*float64{f(10), nil, f(20), nil},
		Precipitation: []*float64{f(2), f(4), nil, nil},
		WindSpeed:     []*float64{nil, nil, nil, f(8)},
	}

	may := Aggregate(d, false)[4]
	if may.AvgTemperature != 15 {
		t.Errorf("avg temperature = %v, want 15", may.AvgTemperature)
	}
	if may.AvgPrecipitation != 3 {
		t.Errorf("avg precipitation = %v, want 3", may.AvgPrecipitation)
	}
	if may.AvgWindSpeed != 8 {
		t.Errorf("avg wind = %v, want 8", may.AvgWindSpeed)
	}
}

func TestAggregate_MergesYearsIntoSameMonth(t *testing.T) {
	d := Daily{
		Dates:         append(days("2021-07-01", 2), days("2022-07-01", 2)...),
		Precipitation: []*float64{f(10), f(0), f(0), f(0)},
	}

	jul := Aggregate(d, false)[6]
	if jul.TotalDays != 4 {
		t.Errorf("total = %d, want 4", jul.TotalDays)
	}
	if jul.Probability != 25 {
		t.Errorf("probability = %d, want 25", jul.Probability)
	}
}

func TestAggregate_SkipsUnparseableDates(t *testing.T) {
	d := Daily{
		Dates:         []string{"not-a-date", "2023-08-01"},
		Precipitation: []*float64{f(10), f(0)},
	}

	aug := Aggregate(d, false)[7]
	if aug.TotalDays != 1 {
		t.Errorf("total = %d, want 1", aug.TotalDays)
	}
}

func TestAggregate_Idempotent(t *testing.T) {
	d := Daily{
		Dates:         days("2022-01-01", 90),
		Temperature:   repeat(10, 90),
		Precipitation: repeat(3, 90),
		WindSpeed:     repeat(15, 90),
	}

	first := Aggregate(d, false)
	second := Aggregate(d, false)
	if !reflect.DeepEqual(first, second) {
		t.Error("expected identical output for identical input")
	}
}

func TestAdverseRatio(t *testing.T) {
	tests := []struct {
		adverse, total, want int
	}{
		{0, 0, 50},
		{0, 5, 5},
		{5, 5, 95},
		{3, 10, 30},
		{1, 3, 33},
		{2, 3, 67},
		{1, 100, 5},
		{99, 100, 95},
	}

	for _, tt := range tests {
		if got := adverseRatio(tt.adverse, tt.total); got != tt.want {
			t.Errorf("adverseRatio(%d, %d) = %d, want %d", tt.adverse, tt.total, got, tt.want)
		}
	}
}
