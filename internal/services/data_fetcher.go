package services

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/statsight/sportsdash/internal/sports"
)

// DataFetcherService keeps the cache warm in the background: it
// re-fetches the configured sports for the current season on an
// interval, sweeps expired cache files daily, and prunes stale
// rate-limiter windows hourly. Everything it does is an optimization;
// the request path works identically without it.
type DataFetcherService struct {
	dataService   *DataService
	cache         *FileCache
	limiters      []*RateLimiter
	logger        *logrus.Logger
	cron          *cron.Cron
	mu            sync.Mutex
	isRunning     bool
	fetchInterval time.Duration
	sportsToWarm  []sports.Sport
}

// NewDataFetcherService creates a data fetcher for the given sports
func NewDataFetcherService(
	dataService *DataService,
	cache *FileCache,
	limiters []*RateLimiter,
	logger *logrus.Logger,
	fetchInterval time.Duration,
	sportsToWarm []sports.Sport,
) *DataFetcherService {
	return &DataFetcherService{
		dataService:   dataService,
		cache:         cache,
		limiters:      limiters,
		logger:        logger,
		cron:          cron.New(),
		fetchInterval: fetchInterval,
		sportsToWarm:  sportsToWarm,
	}
}

// Start begins the scheduled jobs and runs an initial warm pass
func (s *DataFetcherService) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("data fetcher is already running")
	}

	schedule := fmt.Sprintf("@every %s", s.fetchInterval.String())
	if _, err := s.cron.AddFunc(schedule, s.warmCache); err != nil {
		return fmt.Errorf("failed to schedule cache warmer: %w", err)
	}

	if _, err := s.cron.AddFunc("0 3 * * *", s.sweepCache); err != nil {
		return fmt.Errorf("failed to schedule cache sweep: %w", err)
	}

	if _, err := s.cron.AddFunc("@hourly", s.sweepLimiters); err != nil {
		return fmt.Errorf("failed to schedule limiter sweep: %w", err)
	}

	s.cron.Start()
	s.isRunning = true

	go s.warmCache()

	s.logger.Info("Data fetcher service started")
	return nil
}

// Stop halts the scheduled jobs
func (s *DataFetcherService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	s.logger.Info("Data fetcher service stopped")
}

// warmCache refreshes the current season for each configured sport.
// GetData itself decides whether the cache is still fresh, so a warm
// pass on a fresh cache is a no-op against upstream.
func (s *DataFetcherService) warmCache() {
	season := currentSeason()
	s.logger.Infof("Starting cache warm pass for season %s", season)

	for _, sport := range s.sportsToWarm {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		envelope, err := s.dataService.GetData(ctx, sport, season)
		cancel()

		if err != nil {
			s.logger.Warnf("Cache warm failed for %s: %v", sport, err)
			continue
		}
		s.logger.Debugf("Warmed %s/%s: %d records from %s", sport, season, envelope.Count, envelope.Source)
	}

	s.logger.Info("Completed cache warm pass")
}

func (s *DataFetcherService) sweepCache() {
	removed := s.cache.Sweep()
	s.logger.Infof("Daily cache sweep complete, removed %d entries", removed)
}

func (s *DataFetcherService) sweepLimiters() {
	total := 0
	for _, limiter := range s.limiters {
		total += limiter.SweepExpired()
	}
	if total > 0 {
		s.logger.Debugf("Pruned %d expired rate-limit windows", total)
	}
}

// GetFetchStatus returns the current scheduler state
func (s *DataFetcherService) GetFetchStatus() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.cron.Entries()
	nextRuns := make([]time.Time, 0, len(entries))
	for _, entry := range entries {
		nextRuns = append(nextRuns, entry.Next)
	}

	return map[string]interface{}{
		"is_running":     s.isRunning,
		"fetch_interval": s.fetchInterval.String(),
		"next_runs":      nextRuns,
		"cron_jobs":      len(entries),
	}
}

func currentSeason() string {
	return strconv.Itoa(time.Now().Year())
}
