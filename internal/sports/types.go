package sports

// Sport identifies which upstream schema and metric set apply
type Sport string

const (
	SportBaseball   Sport = "baseball"
	SportBasketball Sport = "basketball"
	SportFootball   Sport = "football"
	SportNFL        Sport = "nfl"
	SportF1         Sport = "f1"
)

// Supported returns the fixed set of sports the dashboard can chart
func Supported() []Sport {
	return []Sport{SportBaseball, SportBasketball, SportFootball, SportNFL, SportF1}
}

// IsSupported reports whether s is one of the enumerated sports
func IsSupported(s Sport) bool {
	for _, sport := range Supported() {
		if s == sport {
			return true
		}
	}
	return false
}

// SupportedNames returns the sport identifiers as plain strings,
// used in "sport not supported" error payloads
func SupportedNames() []string {
	supported := Supported()
	names := make([]string, 0, len(supported))
	for _, s := range supported {
		names = append(names, string(s))
	}
	return names
}

// EntityRecord is the normalized charting unit: a team, driver or
// constructor with its metric values addressed by dotted path
// (e.g. "batting.ops"). Missing upstream fields are defaulted to 0,
// so every metric key a sport defines is safe to read.
type EntityRecord struct {
	Label string             `json:"label"`
	Stats map[string]float64 `json:"stats"`
}

// Metric describes one selectable axis for the chart UI
type Metric struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}
