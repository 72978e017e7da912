package probability

// defaultMonthlyStats is the canned fallback series used when no historical
// data can be fetched: a flat-ish pattern around 50% with a mild seasonal
// shape, so the UI can still render a full year. Averages stay zero because
// no readings back them.
var defaultMonthlyStats = []MonthStat{
	{Month: "January", Probability: 55},
	{Month: "February", Probability: 53},
	{Month: "March", Probability: 50},
	{Month: "April", Probability: 48},
	{Month: "May", Probability: 45},
	{Month: "June", Probability: 43},
	{Month: "July", Probability: 42},
	{Month: "August", Probability: 43},
	{Month: "September", Probability: 46},
	{Month: "October", Probability: 49},
	{Month: "November", Probability: 52},
	{Month: "December", Probability: 54},
}

// DefaultStats returns a fresh copy of the canned fallback series.
func DefaultStats() []MonthStat {
	stats := make([]MonthStat, len(defaultMonthlyStats))
	copy(stats, defaultMonthlyStats)
	return stats
}
