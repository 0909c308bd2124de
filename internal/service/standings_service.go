package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/yourusername/race-ledger/internal/config"
	"github.com/yourusername/race-ledger/internal/logger"
	"github.com/yourusername/race-ledger/internal/metrics"
	"github.com/yourusername/race-ledger/internal/models"
	"github.com/yourusername/race-ledger/internal/repository"
	"github.com/yourusername/race-ledger/internal/standings"
)

// Mode selects which championship a series set is built for
type Mode string

// Aggregation modes
const (
	ModeDrivers Mode = "drivers"
	ModeTeams   Mode = "teams"
)

// StandingsService builds cumulative points series from stored results and
// caches them per league and mode. Callers own the sets they receive.
type StandingsService struct {
	events      repository.EventRepository
	results     repository.RaceResultRepository
	snapshots   repository.StandingsRepository
	cache       *cache.Cache
	topDrivers  int
	matchByID   bool
	concurrency int
	logger      *logrus.Logger
	standingLog *logger.StandingsLogger
	warm        atomic.Bool
}

// NewStandingsService creates a new standings service
func NewStandingsService(repos *repository.Repositories, cfg config.StandingsConfig, log *logrus.Logger) *StandingsService {
	ttl := cfg.CacheTTL()
	return &StandingsService{
		events:      repos.Event,
		results:     repos.RaceResult,
		snapshots:   repos.Standings,
		cache:       cache.New(ttl, 2*ttl),
		topDrivers:  cfg.TopDrivers,
		matchByID:   cfg.MatchByID,
		concurrency: cfg.FetchConcurrency,
		logger:      log,
		standingLog: logger.NewStandingsLogger(log),
	}
}

// DriverSeries returns the cumulative series of the top drivers. A non-zero
// asOf drops events dated after it; such queries bypass the cache.
func (s *StandingsService) DriverSeries(ctx context.Context, leagueID uuid.UUID, asOf time.Time) (standings.SeriesSet, error) {
	return s.series(ctx, leagueID, ModeDrivers, asOf)
}

// TeamSeries returns the cumulative series of every team in the snapshot
func (s *StandingsService) TeamSeries(ctx context.Context, leagueID uuid.UUID, asOf time.Time) (standings.SeriesSet, error) {
	return s.series(ctx, leagueID, ModeTeams, asOf)
}

// Series dispatches on mode
func (s *StandingsService) Series(ctx context.Context, leagueID uuid.UUID, mode Mode, asOf time.Time) (standings.SeriesSet, error) {
	switch mode {
	case ModeDrivers, ModeTeams:
		return s.series(ctx, leagueID, mode, asOf)
	default:
		return nil, fmt.Errorf("unknown standings mode %q", mode)
	}
}

// Invalidate drops both cached series sets of a league
func (s *StandingsService) Invalidate(leagueID uuid.UUID) {
	s.cache.Delete(cacheKey(leagueID, ModeDrivers))
	s.cache.Delete(cacheKey(leagueID, ModeTeams))
	s.standingLog.LogCacheInvalidated(leagueID.String(), "results_saved")
}

// Refresh rebuilds and caches both series sets of a league
func (s *StandingsService) Refresh(ctx context.Context, leagueID uuid.UUID) error {
	s.cache.Delete(cacheKey(leagueID, ModeDrivers))
	s.cache.Delete(cacheKey(leagueID, ModeTeams))

	_, err := s.series(ctx, leagueID, ModeDrivers, time.Time{})
	if err == nil {
		_, err = s.series(ctx, leagueID, ModeTeams, time.Time{})
	}
	s.standingLog.LogRefresh(leagueID.String(), err)
	if err == nil {
		s.warm.Store(true)
	}
	return err
}

// IsWarm reports whether any league has been refreshed successfully
func (s *StandingsService) IsWarm() bool {
	return s.warm.Load()
}

func (s *StandingsService) series(ctx context.Context, leagueID uuid.UUID, mode Mode, asOf time.Time) (standings.SeriesSet, error) {
	start := time.Now()
	cacheable := asOf.IsZero()
	key := cacheKey(leagueID, mode)

	if cacheable {
		if cached, ok := s.cache.Get(key); ok {
			set := cached.(standings.SeriesSet).Clone()
			metrics.RecordCacheLookup(string(mode), true)
			s.standingLog.LogAggregation(leagueID.String(), string(mode), len(set), seriesLength(set), true, msSince(start))
			return set, nil
		}
		metrics.RecordCacheLookup(string(mode), false)
	}

	events, err := s.events.GetByLeague(ctx, leagueID)
	if err != nil {
		return nil, s.fetchFailure("load_events", leagueID, err)
	}
	completed := standings.EventsAsOf(standings.CompletedEvents(events), asOf)

	var (
		drivers []models.DriverStanding
		teams   []models.TeamStanding
	)
	eventResults := make([]standings.EventResults, len(completed))

	g, gctx := errgroup.WithContext(ctx)
	if s.concurrency > 0 {
		g.SetLimit(s.concurrency)
	}

	g.Go(func() error {
		var err error
		if mode == ModeDrivers {
			drivers, err = s.snapshots.GetDriverStandings(gctx, leagueID)
		} else {
			teams, err = s.snapshots.GetTeamStandings(gctx, leagueID)
		}
		return err
	})
	for i, e := range completed {
		g.Go(func() error {
			res, err := s.results.GetByEventID(gctx, e.ID)
			if err != nil {
				return fmt.Errorf("event %s: %w", e.ID, err)
			}
			eventResults[i] = standings.EventResults{Event: e, Results: res}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, s.fetchFailure("load_standings", leagueID, err)
	}

	var set standings.SeriesSet
	if mode == ModeDrivers {
		top := standings.TopDrivers(drivers, s.topDrivers)
		set = standings.DriverSeries(top, eventResults, standings.AggregateOptions{MatchByID: s.matchByID})
	} else {
		set = standings.TeamSeries(teams, eventResults)
	}

	if cacheable {
		s.cache.SetDefault(key, set.Clone())
	}

	metrics.RecordAggregation(string(mode), time.Since(start).Seconds(), len(set))
	s.standingLog.LogAggregation(leagueID.String(), string(mode), len(set), len(completed), false, msSince(start))
	return set, nil
}

func (s *StandingsService) fetchFailure(operation string, leagueID uuid.UUID, err error) error {
	s.logger.WithFields(logrus.Fields{
		"component": "standings",
		"operation": operation,
		"league_id": leagueID.String(),
	}).WithError(err).Error("Standings fetch failed")
	metrics.RecordCollaboratorFailure(operation)
	return fmt.Errorf("%s: %w", operation, ErrOperationFailed)
}

func cacheKey(leagueID uuid.UUID, mode Mode) string {
	return leagueID.String() + ":" + string(mode)
}

func seriesLength(set standings.SeriesSet) int {
	if len(set) == 0 {
		return 0
	}
	return len(set[0].Samples)
}

func msSince(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000
}
