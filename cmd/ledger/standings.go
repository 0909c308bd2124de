package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/yourusername/race-ledger/internal/export"
	"github.com/yourusername/race-ledger/internal/service"
	"github.com/yourusername/race-ledger/internal/standings"
)

type standingsOptions struct {
	league string
	mode   string
	format string
	asOf   string
	output string
	s3     bool
}

func newStandingsCmd() *cobra.Command {
	opts := &standingsOptions{}

	cmd := &cobra.Command{
		Use:   "standings",
		Short: "Print round-by-round cumulative championship points",
		Example: `  ledger standings --league 3f1c... --mode teams --format csv
  ledger standings --league 3f1c... --as-of "March 16, 2025" --format json --output drivers.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStandings(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.league, "league", "", "League ID")
	cmd.Flags().StringVar(&opts.mode, "mode", string(service.ModeDrivers), "Championship: drivers or teams")
	cmd.Flags().StringVar(&opts.format, "format", "table", "Output format: table, csv or json")
	cmd.Flags().StringVar(&opts.asOf, "as-of", "", "Only count events on or before this date (any common date format)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write csv or json output to this file instead of stdout")
	cmd.Flags().BoolVar(&opts.s3, "s3", false, "Publish csv or json output to the configured S3 bucket")
	_ = cmd.MarkFlagRequired("league")

	return cmd
}

func runStandings(cmd *cobra.Command, opts *standingsOptions) error {
	leagueID, err := uuid.Parse(opts.league)
	if err != nil {
		return fmt.Errorf("invalid league id %q: %w", opts.league, err)
	}

	asOf, err := parseAsOf(opts.asOf)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	db, repos, err := connect(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	svc := service.NewStandingsService(repos, cfg.Standings, appLog)
	set, err := svc.Series(ctx, leagueID, service.Mode(opts.mode), asOf)
	if err != nil {
		return err
	}

	if opts.format == "table" {
		if opts.output != "" || opts.s3 {
			return fmt.Errorf("--output and --s3 need --format csv or json")
		}
		printTable(cmd.OutOrStdout(), set)
		return nil
	}

	format, err := export.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	switch {
	case opts.s3:
		publisher, err := export.NewS3Publisher(ctx, cfg.Export, appLog)
		if err != nil {
			return err
		}
		key, err := publisher.Publish(ctx, leagueID.String(), opts.mode, set, format)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Published s3://%s/%s\n", cfg.Export.S3Bucket, key)
	case opts.output != "":
		if err := export.WriteFile(opts.output, set, format); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", opts.output)
	default:
		data, err := export.Encode(set, format)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(string(data), "\n"))
	}
	return nil
}

// parseAsOf accepts any layout dateparse recognises. A bare date means the
// end of that day.
func parseAsOf(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --as-of date %q: %w", s, err)
	}
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}

func printTable(w io.Writer, set standings.SeriesSet) {
	if len(set) == 0 {
		fmt.Fprintln(w, "No standings available")
		return
	}

	fmt.Fprintf(w, "%-24s", "")
	for _, sample := range set[0].Samples {
		fmt.Fprintf(w, "%6s", sample.Label)
	}
	fmt.Fprintln(w)

	for _, series := range set {
		fmt.Fprintf(w, "%-24s", series.Name)
		for _, sample := range series.Samples {
			fmt.Fprintf(w, "%6d", sample.Points)
		}
		fmt.Fprintln(w)
	}
}
