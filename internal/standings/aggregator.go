// Package standings aggregates per-event results into cumulative season
// points series for drivers and teams.
//
// Drivers and teams are matched to result rows by display name, so two
// entities sharing a name are indistinguishable. AggregateOptions.MatchByID
// switches driver matching to participant ids where the snapshot has them.
package standings

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/race-ledger/internal/models"
)

// EventResults pairs a completed event with its finalized result rows
type EventResults struct {
	Event   models.Event
	Results []models.RaceResult
}

// AggregateOptions tunes how result rows are matched to drivers
type AggregateOptions struct {
	MatchByID bool
}

// CompletedEvents keeps only completed events, ordered by date ascending.
// Events on the same date keep their input order.
func CompletedEvents(events []models.Event) []models.Event {
	completed := make([]models.Event, 0, len(events))
	for _, e := range events {
		if e.IsCompleted() {
			completed = append(completed, e)
		}
	}
	sort.SliceStable(completed, func(i, j int) bool {
		return completed[i].Date.Before(completed[j].Date)
	})
	return completed
}

// EventsAsOf drops events dated after asOf. A zero asOf keeps everything.
func EventsAsOf(events []models.Event, asOf time.Time) []models.Event {
	if asOf.IsZero() {
		return events
	}
	kept := make([]models.Event, 0, len(events))
	for _, e := range events {
		if !e.Date.After(asOf) {
			kept = append(kept, e)
		}
	}
	return kept
}

// TopDrivers returns the first n entries of a ranked snapshot. n <= 0 keeps
// the whole snapshot.
func TopDrivers(snapshot []models.DriverStanding, n int) []models.DriverStanding {
	if n <= 0 || n >= len(snapshot) {
		return snapshot
	}
	return snapshot[:n]
}

// DriverSeries returns one cumulative series per driver, one sample per
// event. Each driver is credited with race plus sprint points from the
// first row that matches it in each event.
func DriverSeries(drivers []models.DriverStanding, events []EventResults, opts ...AggregateOptions) SeriesSet {
	var opt AggregateOptions
	if len(opts) > 0 {
		opt = opts[0]
	}

	set := make(SeriesSet, len(drivers))
	totals := make([]int, len(drivers))
	for i, d := range drivers {
		set[i] = Series{Name: d.DriverName, Samples: make([]Sample, 0, len(events))}
	}

	for _, er := range events {
		for i, d := range drivers {
			if row, ok := findDriverRow(d, er.Results, opt); ok {
				totals[i] += nonNegative(row.TotalPoints())
			}
			set[i].Samples = append(set[i].Samples, sample(er.Event, totals[i]))
		}
	}
	return set
}

// TeamSeries returns one cumulative series per team, one sample per event.
// A team's event score is the sum over every row carrying its name.
func TeamSeries(teams []models.TeamStanding, events []EventResults) SeriesSet {
	set := make(SeriesSet, len(teams))
	totals := make([]int, len(teams))
	for i, t := range teams {
		set[i] = Series{Name: t.TeamName, Samples: make([]Sample, 0, len(events))}
	}

	for _, er := range events {
		eventTotals := TeamEventTotals(er.Results)
		for i, t := range teams {
			totals[i] += eventTotals[t.TeamName]
			set[i].Samples = append(set[i].Samples, sample(er.Event, totals[i]))
		}
	}
	return set
}

// TeamEventTotals sums race plus sprint points per team name for one event.
// Rows without a team are skipped.
func TeamEventTotals(results []models.RaceResult) map[string]int {
	totals := make(map[string]int)
	for i := range results {
		team := results[i].GetTeamName()
		if team == "" {
			continue
		}
		totals[team] += nonNegative(results[i].TotalPoints())
	}
	return totals
}

func findDriverRow(d models.DriverStanding, results []models.RaceResult, opt AggregateOptions) (*models.RaceResult, bool) {
	byID := opt.MatchByID && d.ParticipantID != uuid.Nil
	for i := range results {
		if byID {
			if results[i].ParticipantID == d.ParticipantID {
				return &results[i], true
			}
			continue
		}
		if results[i].ParticipantName == d.DriverName {
			return &results[i], true
		}
	}
	return nil, false
}

func sample(e models.Event, total int) Sample {
	return Sample{Round: e.Round, Label: e.Label(), Points: total}
}

func nonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
