package providers

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/statsight/sportsdash/internal/sports"
)

// Provider base URLs. Overridable for tests via ChainConfig.
const (
	baseballBaseURL   = "https://v1.baseball.api-sports.io"
	basketballBaseURL = "https://v3.basketball.api-sports.io"
	footballBaseURL   = "https://v3.football.api-sports.io"
	nflBaseURL        = "https://v1.american-football.api-sports.io"
	ergastBaseURL     = "https://ergast.com/api/f1"
)

// League IDs on api-sports: MLB, NBA, Premier League, NFL
const (
	baseballLeagueID   = "1"
	basketballLeagueID = "12"
	footballLeagueID   = "39"
	footballTeamID     = "33"
	nflLeagueID        = "1"
)

// ChainConfig carries what source construction needs. Base URLs
// default to the real providers and exist so tests can point chains at
// a local server.
type ChainConfig struct {
	APIKey string

	BaseballBaseURL   string
	BasketballBaseURL string
	FootballBaseURL   string
	NFLBaseURL        string
	ErgastBaseURL     string
}

func (c ChainConfig) withDefaults() ChainConfig {
	if c.BaseballBaseURL == "" {
		c.BaseballBaseURL = baseballBaseURL
	}
	if c.BasketballBaseURL == "" {
		c.BasketballBaseURL = basketballBaseURL
	}
	if c.FootballBaseURL == "" {
		c.FootballBaseURL = footballBaseURL
	}
	if c.NFLBaseURL == "" {
		c.NFLBaseURL = nflBaseURL
	}
	if c.ErgastBaseURL == "" {
		c.ErgastBaseURL = ergastBaseURL
	}
	return c
}

// RequiresAPIKey reports whether the sport's providers need the
// api-sports key. Ergast is unauthenticated.
func RequiresAPIKey(sport sports.Sport) bool {
	return sport != sports.SportF1
}

// ChainFor builds the ordered fallback chain for a sport and season:
// primary endpoint, then an alternate endpoint on the same provider,
// then the previous season on the primary. Candidates are attempted
// strictly in this order with early exit on the first non-empty
// success.
func ChainFor(sport sports.Sport, season string, cfg ChainConfig) []Source {
	cfg = cfg.withDefaults()
	headers := map[string]string{"x-apisports-key": cfg.APIKey}

	switch sport {
	case sports.SportBaseball:
		return []Source{
			apiSportsSource("baseball", cfg.BaseballBaseURL+"/teams/statistics", headers, url.Values{
				"league": {baseballLeagueID}, "season": {season},
			}),
			apiSportsSource("baseball", cfg.BaseballBaseURL+"/standings", headers, url.Values{
				"league": {baseballLeagueID}, "season": {season},
			}),
			apiSportsSource("baseball", cfg.BaseballBaseURL+"/teams/statistics", headers, url.Values{
				"league": {baseballLeagueID}, "season": {previousSeason(season)},
			}),
		}
	case sports.SportBasketball:
		return []Source{
			apiSportsSource("basketball", cfg.BasketballBaseURL+"/teams/statistics", headers, url.Values{
				"league": {basketballLeagueID}, "season": {season},
			}),
			apiSportsSource("basketball", cfg.BasketballBaseURL+"/standings", headers, url.Values{
				"league": {basketballLeagueID}, "season": {season},
			}),
			apiSportsSource("basketball", cfg.BasketballBaseURL+"/teams/statistics", headers, url.Values{
				"league": {basketballLeagueID}, "season": {previousSeason(season)},
			}),
		}
	case sports.SportFootball:
		return []Source{
			apiSportsSource("football", cfg.FootballBaseURL+"/teams/statistics", headers, url.Values{
				"league": {footballLeagueID}, "season": {season}, "team": {footballTeamID},
			}),
			apiSportsSource("football", cfg.FootballBaseURL+"/standings", headers, url.Values{
				"league": {footballLeagueID}, "season": {season},
			}),
			apiSportsSource("football", cfg.FootballBaseURL+"/teams/statistics", headers, url.Values{
				"league": {footballLeagueID}, "season": {previousSeason(season)}, "team": {footballTeamID},
			}),
		}
	case sports.SportNFL:
		return []Source{
			apiSportsSource("nfl", cfg.NFLBaseURL+"/teams", headers, url.Values{
				"league": {nflLeagueID}, "season": {season},
			}),
			apiSportsSource("nfl", cfg.NFLBaseURL+"/standings", headers, url.Values{
				"league": {nflLeagueID}, "season": {season},
			}),
			apiSportsSource("nfl", cfg.NFLBaseURL+"/teams", headers, url.Values{
				"league": {nflLeagueID}, "season": {previousSeason(season)},
			}),
		}
	case sports.SportF1:
		return []Source{
			{
				Name:   "ergast",
				URL:    cfg.ErgastBaseURL + "/current/constructorStandings.json",
				Unwrap: UnwrapErgast,
			},
			{
				Name:   "ergast",
				URL:    fmt.Sprintf("%s/%s/constructorStandings.json", cfg.ErgastBaseURL, season),
				Unwrap: UnwrapErgast,
			},
		}
	default:
		return nil
	}
}

func apiSportsSource(name, rawURL string, headers map[string]string, query url.Values) Source {
	return Source{
		Name:    name,
		URL:     rawURL,
		Query:   query,
		Headers: headers,
		Unwrap:  UnwrapResponse,
	}
}

func previousSeason(season string) string {
	year, err := strconv.Atoi(season)
	if err != nil {
		return season
	}
	return strconv.Itoa(year - 1)
}
