// Package scheduler runs periodic standings refreshes on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Refresher rebuilds the cached standings of a league
type Refresher interface {
	Refresh(ctx context.Context, leagueID uuid.UUID) error
}

// Scheduler manages scheduled standings refresh jobs
type Scheduler struct {
	cron       *cron.Cron
	refresher  Refresher
	logger     *logrus.Entry
	mu         sync.RWMutex
	isRunning  bool
	jobIDs     []cron.EntryID
	jobTimeout time.Duration
}

// NewScheduler creates a new scheduler
func NewScheduler(refresher Refresher, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:       cron.New(cron.WithLocation(time.UTC)),
		refresher:  refresher,
		logger:     logger.WithField("component", "scheduler"),
		jobIDs:     make([]cron.EntryID, 0),
		jobTimeout: 2 * time.Minute,
	}
}

// ScheduleStandingsRefresh refreshes every league on the given cron expression
func (s *Scheduler) ScheduleStandingsRefresh(cronExpression string, leagues []uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}
	if len(leagues) == 0 {
		return fmt.Errorf("no leagues to refresh")
	}

	entryID, err := s.cron.AddFunc(cronExpression, func() {
		s.RefreshAll(context.Background(), leagues)
	})
	if err != nil {
		return fmt.Errorf("failed to add job: %w", err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.WithFields(logrus.Fields{
		"schedule": cronExpression,
		"leagues":  len(leagues),
	}).Info("Scheduled standings refresh")

	return nil
}

// RefreshAll refreshes each league in turn and returns how many failed.
// One league failing does not stop the others.
func (s *Scheduler) RefreshAll(ctx context.Context, leagues []uuid.UUID) int {
	failed := 0
	for _, leagueID := range leagues {
		jobCtx, cancel := context.WithTimeout(ctx, s.jobTimeout)
		err := s.refresher.Refresh(jobCtx, leagueID)
		cancel()
		if err != nil {
			failed++
			s.logger.WithError(err).WithField("league_id", leagueID.String()).Warn("Standings refresh failed")
		}
	}
	return failed
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("scheduler is already running")
	}

	if len(s.jobIDs) == 0 {
		return fmt.Errorf("no jobs scheduled")
	}

	s.cron.Start()
	s.isRunning = true
	s.logger.WithField("jobs", len(s.jobIDs)).Info("Scheduler started")

	return nil
}

// Stop stops the scheduler and waits for running jobs to finish
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	<-s.cron.Stop().Done()
	s.isRunning = false
	s.logger.Info("Scheduler stopped")
}

// IsRunning returns whether the scheduler is currently running
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRun returns the time of the next scheduled job run
func (s *Scheduler) GetNextRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning || len(s.jobIDs) == 0 {
		return time.Time{}
	}

	nextRun := time.Time{}
	for _, jobID := range s.jobIDs {
		entry := s.cron.Entry(jobID)
		if entry.Valid() {
			if nextRun.IsZero() || entry.Next.Before(nextRun) {
				nextRun = entry.Next
			}
		}
	}

	return nextRun
}
