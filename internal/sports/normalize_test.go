package sports

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeBaseball(t *testing.T) {
	raw := []map[string]any{
		{
			"team": map[string]any{"name": "New York Yankees"},
			"statistics": map[string]any{
				"batting":  map[string]any{"ops": 0.768, "avg": 0.254, "hr": 237.0},
				"pitching": map[string]any{"era": 3.74},
			},
		},
	}

	records := Normalize(SportBaseball, raw)
	require.Len(t, records, 1)

	assert.Equal(t, "New York Yankees", records[0].Label)
	assert.Equal(t, 0.768, records[0].Stats["batting.ops"])
	assert.Equal(t, 3.74, records[0].Stats["pitching.era"])

	// Fields absent upstream default to 0, never an error
	assert.Equal(t, 0.0, records[0].Stats["batting.rbi"])
	assert.Equal(t, 0.0, records[0].Stats["pitching.wins"])
}

func TestNormalizeF1CoercesStringNumbers(t *testing.T) {
	// Ergast returns points and wins as strings
	raw := []map[string]any{
		{
			"points":      "860",
			"wins":        "21",
			"Constructor": map[string]any{"name": "Red Bull"},
		},
	}

	records := Normalize(SportF1, raw)
	require.Len(t, records, 1)

	assert.Equal(t, "Red Bull", records[0].Label)
	assert.Equal(t, 860.0, records[0].Stats["points"])
	assert.Equal(t, 21.0, records[0].Stats["wins"])
	assert.Equal(t, 0.0, records[0].Stats["top_speed"])
}

func TestNormalizeEveryMetricIsNumeric(t *testing.T) {
	raw := []map[string]any{
		{"name": "Some Team", "ppg": "not a number", "rpg": nil},
	}

	records := Normalize(SportBasketball, raw)
	require.Len(t, records, 1)

	for _, m := range MetricsFor(SportBasketball) {
		v, ok := records[0].Stats[m.Key]
		assert.True(t, ok, "metric %s missing", m.Key)
		assert.False(t, v != v, "metric %s is NaN", m.Key)
	}
}

func TestNormalizeDropsRecordsWithoutLabel(t *testing.T) {
	raw := []map[string]any{
		{"points": 10.0},
		{"name": "Kept", "points": 20.0},
	}

	records := Normalize(SportF1, raw)
	require.Len(t, records, 1)
	assert.Equal(t, "Kept", records[0].Label)
}

func TestNormalizeLabelFallbackOrder(t *testing.T) {
	raw := []map[string]any{
		{"team": map[string]any{"name": "Nested Team"}, "name": "Flat Name"},
		{"name": "Flat Only"},
	}

	records := Normalize(SportFootball, raw)
	require.Len(t, records, 2)
	assert.Equal(t, "Nested Team", records[0].Label)
	assert.Equal(t, "Flat Only", records[1].Label)
}

func TestAvailableMetricsFiltersToSample(t *testing.T) {
	sample := map[string]any{
		"team": map[string]any{"name": "Arsenal"},
		"statistics": map[string]any{
			"goals": map[string]any{"for": 91.0, "against": 29.0},
		},
	}

	metrics := AvailableMetrics(SportFootball, sample)

	keys := make([]string, 0, len(metrics))
	for _, m := range metrics {
		keys = append(keys, m.Key)
	}
	assert.ElementsMatch(t, []string{"goals.for", "goals.against"}, keys)
}

func TestAvailableMetricsNilSample(t *testing.T) {
	assert.Empty(t, AvailableMetrics(SportBaseball, nil))
}

func TestMockDatasetCoversAllMetrics(t *testing.T) {
	for _, sport := range Supported() {
		records := MockDataset(sport)
		require.NotEmpty(t, records, "mock dataset for %s", sport)
		assert.GreaterOrEqual(t, len(records), 3)
		assert.LessOrEqual(t, len(records), 5)

		for _, r := range records {
			assert.NotEmpty(t, r.Label)
			for _, m := range MetricsFor(sport) {
				_, ok := r.Stats[m.Key]
				assert.True(t, ok, "%s mock missing %s", sport, m.Key)
			}
		}
	}
}

func TestMockDatasetReturnsCopy(t *testing.T) {
	first := MockDataset(SportF1)
	first[0].Stats["points"] = -1

	second := MockDataset(SportF1)
	assert.NotEqual(t, -1.0, second[0].Stats["points"])
}

func TestIsSupported(t *testing.T) {
	assert.True(t, IsSupported(SportBaseball))
	assert.True(t, IsSupported(SportF1))
	assert.False(t, IsSupported(Sport("cricket")))
}
