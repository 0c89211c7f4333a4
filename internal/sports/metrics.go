package sports

// metricsBySport is the canonical metric catalog per sport. Keys are
// dotted paths into the normalized statistics shape; labels are what
// the chart selectors display.
var metricsBySport = map[Sport][]Metric{
	SportBaseball: {
		{Key: "batting.ops", Label: "OPS"},
		{Key: "batting.avg", Label: "AVG"},
		{Key: "batting.hr", Label: "HR"},
		{Key: "batting.runs", Label: "Runs"},
		{Key: "pitching.era", Label: "ERA"},
		{Key: "pitching.wins", Label: "Wins"},
		{Key: "batting.rbi", Label: "RBI"},
	},
	SportF1: {
		{Key: "points", Label: "Points"},
		{Key: "wins", Label: "Wins"},
		{Key: "lap_times_avg", Label: "Lap Time (avg)"},
		{Key: "top_speed", Label: "Top Speed"},
	},
	SportBasketball: {
		{Key: "ppg", Label: "Points Per Game (PPG)"},
		{Key: "rpg", Label: "Rebounds Per Game (RPG)"},
		{Key: "apg", Label: "Assists Per Game (APG)"},
		{Key: "pie", Label: "PIE"},
	},
	SportFootball: {
		{Key: "goals.for", Label: "Goals For"},
		{Key: "goals.against", Label: "Goals Against"},
		{Key: "assists", Label: "Assists"},
		{Key: "xg", Label: "Expected Goals (xG)"},
	},
	SportNFL: {
		{Key: "passing_yards", Label: "Passing Yards"},
		{Key: "rushing_yards", Label: "Rushing Yards"},
		{Key: "receptions", Label: "Receptions"},
		{Key: "sacks", Label: "Sacks"},
	},
}

// MetricsFor returns the canonical metric list for a sport.
// Unknown sports get an empty list, not an error.
func MetricsFor(sport Sport) []Metric {
	return metricsBySport[sport]
}

// AvailableMetrics filters the sport's canonical metrics down to the
// paths actually present in the sample record, so the UI only offers
// selectors that exist in the current payload. A nil sample means no
// metrics are available.
func AvailableMetrics(sport Sport, sample map[string]any) []Metric {
	if sample == nil {
		return nil
	}

	available := make([]Metric, 0)
	for _, m := range MetricsFor(sport) {
		if _, ok := lookupPath(sample, m.Key); ok {
			available = append(available, m)
			continue
		}
		// Providers nest team stats under a "statistics" object
		if stats, ok := sample["statistics"]; ok {
			if statsMap, ok := stats.(map[string]any); ok {
				if _, ok := lookupPath(statsMap, m.Key); ok {
					available = append(available, m)
				}
			}
		}
	}
	return available
}
