package services

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/statsight/sportsdash/internal/providers"
	"github.com/statsight/sportsdash/internal/sports"
)

// Envelope source values
const (
	SourceAPI   = "api"
	SourceCache = "cache"
	SourceMock  = "mock"
)

var (
	// ErrUnsupportedSport means the caller asked for a sport outside
	// the enumerated set; handlers surface it with the supported list
	ErrUnsupportedSport = errors.New("sport not supported")
	// ErrMissingAPIKey means the sports provider key is not configured
	// for a sport that needs one
	ErrMissingAPIKey = errors.New("sports API key not configured")
)

// Envelope is the uniform result of a data request. Source records
// whether the payload came from a live fetch, the disk cache, or the
// mock fallback, so synthetic data is distinguishable downstream.
type Envelope struct {
	Data   []sports.EntityRecord `json:"data"`
	Cached bool                  `json:"cached"`
	Count  int                   `json:"count"`
	Source string                `json:"source"`
}

// DataService is the dispatcher: cache lookup, then the ordered
// upstream fallback chain, then mock substitution. Rate limiting
// happens in middleware before any of this runs.
type DataService struct {
	client   *providers.Client
	cache    *FileCache
	chainCfg providers.ChainConfig
	logger   *logrus.Logger
}

// NewDataService wires the dispatcher from its owned collaborators
func NewDataService(client *providers.Client, cache *FileCache, chainCfg providers.ChainConfig, logger *logrus.Logger) *DataService {
	return &DataService{
		client:   client,
		cache:    cache,
		chainCfg: chainCfg,
		logger:   logger,
	}
}

// GetData returns the normalized payload for a sport and season.
// Repeated calls within the freshness window are served from cache
// without touching upstream. When every candidate source fails the
// fixed mock dataset is substituted, never an error and never an
// empty list.
func (s *DataService) GetData(ctx context.Context, sport sports.Sport, season string) (*Envelope, error) {
	if !sports.IsSupported(sport) {
		return nil, ErrUnsupportedSport
	}
	if providers.RequiresAPIKey(sport) && s.chainCfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	if records, ok := s.cache.Get(sport, season); ok {
		return &Envelope{Data: records, Cached: true, Count: len(records), Source: SourceCache}, nil
	}

	records, _, ok := s.fetchUpstream(ctx, sport, season)
	if !ok {
		s.logger.Warnf("All sources exhausted for %s/%s, serving mock dataset", sport, season)
		mock := sports.MockDataset(sport)
		return &Envelope{Data: mock, Count: len(mock), Source: SourceMock}, nil
	}

	s.cache.Put(sport, season, records)
	return &Envelope{Data: records, Count: len(records), Source: SourceAPI}, nil
}

// GetMetrics returns the metric selectors available for the sport's
// current payload: the canonical list filtered to paths present in the
// first raw sample. When upstream is exhausted the full canonical list
// is returned, matching the mock dataset.
func (s *DataService) GetMetrics(ctx context.Context, sport sports.Sport, season string) ([]sports.Metric, error) {
	if !sports.IsSupported(sport) {
		return nil, ErrUnsupportedSport
	}
	if providers.RequiresAPIKey(sport) && s.chainCfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	_, sample, ok := s.fetchUpstream(ctx, sport, season)
	if !ok {
		return sports.MetricsFor(sport), nil
	}
	return sports.AvailableMetrics(sport, sample), nil
}

// fetchUpstream walks the fallback chain strictly in order, one
// attempt per candidate, exiting on the first source that yields a
// non-empty normalized list. Individual failures are logged, never
// surfaced.
func (s *DataService) fetchUpstream(ctx context.Context, sport sports.Sport, season string) ([]sports.EntityRecord, map[string]any, bool) {
	for _, src := range providers.ChainFor(sport, season, s.chainCfg) {
		outcome := s.client.Fetch(ctx, src)
		if !outcome.OK {
			s.logger.WithFields(logrus.Fields{
				"sport":    sport,
				"season":   season,
				"provider": src.Name,
				"status":   outcome.Status,
			}).Warnf("Source attempt failed: %s", outcome.Message)
			continue
		}
		if len(outcome.Records) == 0 {
			s.logger.Debugf("Source %s returned empty payload for %s/%s, trying next", src.Name, sport, season)
			continue
		}

		records := sports.Normalize(sport, outcome.Records)
		if len(records) == 0 {
			s.logger.Debugf("Source %s payload for %s/%s produced no usable records", src.Name, sport, season)
			continue
		}

		return records, outcome.Records[0], true
	}

	return nil, nil, false
}
