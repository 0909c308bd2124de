// Package logger provides standings-specific logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// StandingsLogger provides dedicated logging for standings aggregation.
type StandingsLogger struct {
	*logrus.Entry
}

// NewStandingsLogger creates a new standings logger.
func NewStandingsLogger(baseLogger *logrus.Logger) *StandingsLogger {
	return &StandingsLogger{
		Entry: baseLogger.WithField("component", "standings"),
	}
}

// LogAggregation logs a completed standings aggregation.
func (sl *StandingsLogger) LogAggregation(leagueID, mode string, entities, events int, cacheHit bool, durationMs float64) {
	sl.WithFields(logrus.Fields{
		"league_id":   leagueID,
		"mode":        mode,
		"entities":    entities,
		"events":      events,
		"cache_hit":   cacheHit,
		"duration_ms": durationMs,
	}).Info("Standings aggregation completed")
}

// LogCacheInvalidated logs cached series being dropped for a league.
func (sl *StandingsLogger) LogCacheInvalidated(leagueID, reason string) {
	sl.WithFields(logrus.Fields{
		"league_id": leagueID,
		"reason":    reason,
	}).Debug("Standings cache invalidated")
}

// LogRefresh logs a scheduled refresh of a league's standings.
func (sl *StandingsLogger) LogRefresh(leagueID string, err error) {
	entry := sl.WithField("league_id", leagueID)
	if err != nil {
		entry.WithError(err).Error("Standings refresh failed")
		return
	}
	entry.Info("Standings refreshed")
}
