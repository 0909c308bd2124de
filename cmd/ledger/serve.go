package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/yourusername/race-ledger/internal/health"
	"github.com/yourusername/race-ledger/internal/metrics"
	"github.com/yourusername/race-ledger/internal/scheduler"
	"github.com/yourusername/race-ledger/internal/service"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the health server and the scheduled standings refresh",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx)
		},
	}
}

func serve(ctx context.Context) error {
	appLog.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"version":     Version,
		"commit":      GitCommit,
	}).Info("Race ledger starting")

	db, repos, err := connect(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	leagues, err := parseLeagues(cfg.Standings.Leagues)
	if err != nil {
		return err
	}

	standingsSvc := service.NewStandingsService(repos, cfg.Standings, appLog)

	healthCfg := health.Config{
		ServiceName: cfg.App.Name,
		Version:     Version,
		Port:        cfg.Health.Port,
		Logger:      appLog,
		DB:          db,
	}
	if len(leagues) > 0 {
		healthCfg.Standings = standingsSvc
	}
	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
		healthCfg.Metrics = metrics.Handler()
		healthCfg.MetricsPath = cfg.Metrics.Path
	}

	if cfg.Standings.RefreshSchedule != "" {
		sched := scheduler.NewScheduler(standingsSvc, appLog)
		if err := sched.ScheduleStandingsRefresh(cfg.Standings.RefreshSchedule, leagues); err != nil {
			return fmt.Errorf("failed to schedule standings refresh: %w", err)
		}

		// warm the cache before the first tick
		sched.RefreshAll(ctx, leagues)

		if err := sched.Start(); err != nil {
			return fmt.Errorf("failed to start scheduler: %w", err)
		}
		defer sched.Stop()
		healthCfg.Scheduler = sched
		appLog.WithField("next_run", sched.GetNextRun()).Debug("Standings refresh scheduled")
	} else {
		for _, leagueID := range leagues {
			if err := standingsSvc.Refresh(ctx, leagueID); err != nil {
				appLog.WithError(err).WithField("league_id", leagueID).Warn("Initial standings refresh failed")
			}
		}
	}

	healthServer := health.NewServer(healthCfg)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return healthServer.Run(gctx) })

	appLog.Info("Race ledger ready")
	err = g.Wait()
	appLog.Info("Race ledger shutting down")
	return err
}

func parseLeagues(ids []string) ([]uuid.UUID, error) {
	leagues := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		leagueID, err := uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("invalid league id %q: %w", id, err)
		}
		leagues = append(leagues, leagueID)
	}
	return leagues, nil
}
