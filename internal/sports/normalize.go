package sports

import (
	"strconv"
	"strings"
)

// labelPaths are the candidate name fields per raw record, tried in
// order. Providers disagree: api-sports nests the team object, Ergast
// capitalizes Constructor.
var labelPaths = []string{"team.name", "Constructor.name", "player.name", "name"}

// Normalize reshapes a raw upstream payload into the canonical record
// list for a sport. Every metric path the sport defines is populated;
// values that are absent or non-numeric upstream default to 0. Records
// without any resolvable label are dropped.
func Normalize(sport Sport, raw []map[string]any) []EntityRecord {
	records := make([]EntityRecord, 0, len(raw))
	for _, item := range raw {
		label := extractLabel(item)
		if label == "" {
			continue
		}

		stats := make(map[string]float64, len(MetricsFor(sport)))
		for _, m := range MetricsFor(sport) {
			stats[m.Key] = extractMetric(item, m.Key)
		}

		records = append(records, EntityRecord{Label: label, Stats: stats})
	}
	return records
}

func extractLabel(item map[string]any) string {
	for _, path := range labelPaths {
		if v, ok := lookupPath(item, path); ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

// extractMetric resolves a dotted metric path against the record,
// checking the nested statistics object first and then the record
// root, mirroring how the chart mapped fields.
func extractMetric(item map[string]any, path string) float64 {
	if stats, ok := item["statistics"]; ok {
		if statsMap, ok := stats.(map[string]any); ok {
			if v, ok := lookupPath(statsMap, path); ok {
				return coerceNumber(v)
			}
		}
	}
	if v, ok := lookupPath(item, path); ok {
		return coerceNumber(v)
	}
	return 0
}

// lookupPath walks a dotted path through nested JSON objects
func lookupPath(obj map[string]any, path string) (any, bool) {
	parts := strings.Split(path, ".")
	var current any = obj
	for _, part := range parts {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// coerceNumber converts JSON values to float64. Ergast returns points
// and wins as strings, so numeric strings are parsed too.
func coerceNumber(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case string:
		if f, err := strconv.ParseFloat(n, 64); err == nil {
			return f
		}
	}
	return 0
}
