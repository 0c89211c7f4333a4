package sports

// mockDatasets are the fixed fallback payloads served when every
// upstream source fails, so the chart always has something to render.
// Values are plausible season-level figures, not live data.
var mockDatasets = map[Sport][]EntityRecord{
	SportBaseball: {
		{Label: "New York Yankees", Stats: map[string]float64{"batting.ops": 0.768, "batting.avg": 0.254, "batting.hr": 237, "batting.runs": 815, "pitching.era": 3.74, "pitching.wins": 94, "batting.rbi": 783}},
		{Label: "Los Angeles Dodgers", Stats: map[string]float64{"batting.ops": 0.781, "batting.avg": 0.258, "batting.hr": 233, "batting.runs": 842, "pitching.era": 3.90, "pitching.wins": 98, "batting.rbi": 809}},
		{Label: "Houston Astros", Stats: map[string]float64{"batting.ops": 0.745, "batting.avg": 0.255, "batting.hr": 190, "batting.runs": 739, "pitching.era": 4.02, "pitching.wins": 88, "batting.rbi": 701}},
		{Label: "Atlanta Braves", Stats: map[string]float64{"batting.ops": 0.772, "batting.avg": 0.248, "batting.hr": 225, "batting.runs": 795, "pitching.era": 3.59, "pitching.wins": 89, "batting.rbi": 764}},
	},
	SportBasketball: {
		{Label: "Boston Celtics", Stats: map[string]float64{"ppg": 120.6, "rpg": 46.3, "apg": 26.9, "pie": 0.56}},
		{Label: "Denver Nuggets", Stats: map[string]float64{"ppg": 114.9, "rpg": 44.1, "apg": 29.5, "pie": 0.53}},
		{Label: "Milwaukee Bucks", Stats: map[string]float64{"ppg": 119.0, "rpg": 45.0, "apg": 26.6, "pie": 0.51}},
		{Label: "Oklahoma City Thunder", Stats: map[string]float64{"ppg": 120.1, "rpg": 42.0, "apg": 27.0, "pie": 0.54}},
	},
	SportFootball: {
		{Label: "Manchester City", Stats: map[string]float64{"goals.for": 96, "goals.against": 34, "assists": 71, "xg": 88.4}},
		{Label: "Arsenal", Stats: map[string]float64{"goals.for": 91, "goals.against": 29, "assists": 66, "xg": 79.2}},
		{Label: "Liverpool", Stats: map[string]float64{"goals.for": 86, "goals.against": 41, "assists": 63, "xg": 84.1}},
		{Label: "Aston Villa", Stats: map[string]float64{"goals.for": 76, "goals.against": 61, "assists": 54, "xg": 65.7}},
	},
	SportNFL: {
		{Label: "Kansas City Chiefs", Stats: map[string]float64{"passing_yards": 4183, "rushing_yards": 1938, "receptions": 417, "sacks": 57}},
		{Label: "San Francisco 49ers", Stats: map[string]float64{"passing_yards": 4355, "rushing_yards": 2389, "receptions": 389, "sacks": 48}},
		{Label: "Baltimore Ravens", Stats: map[string]float64{"passing_yards": 3698, "rushing_yards": 2661, "receptions": 344, "sacks": 60}},
		{Label: "Buffalo Bills", Stats: map[string]float64{"passing_yards": 4306, "rushing_yards": 2230, "receptions": 404, "sacks": 54}},
	},
	SportF1: {
		{Label: "Red Bull", Stats: map[string]float64{"points": 860, "wins": 21, "lap_times_avg": 92.4, "top_speed": 342.1}},
		{Label: "Mercedes", Stats: map[string]float64{"points": 409, "wins": 0, "lap_times_avg": 93.1, "top_speed": 339.6}},
		{Label: "Ferrari", Stats: map[string]float64{"points": 406, "wins": 1, "lap_times_avg": 93.0, "top_speed": 341.8}},
		{Label: "McLaren", Stats: map[string]float64{"points": 302, "wins": 0, "lap_times_avg": 93.3, "top_speed": 338.9}},
	},
}

// MockDataset returns the fixed fallback entities for a sport. The
// result is a copy; callers may mutate it freely.
func MockDataset(sport Sport) []EntityRecord {
	src := mockDatasets[sport]
	records := make([]EntityRecord, len(src))
	for i, r := range src {
		stats := make(map[string]float64, len(r.Stats))
		for k, v := range r.Stats {
			stats[k] = v
		}
		records[i] = EntityRecord{Label: r.Label, Stats: stats}
	}
	return records
}
