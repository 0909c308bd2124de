package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/yourusername/race-ledger/internal/models"
	"github.com/yourusername/race-ledger/internal/results"
	"github.com/yourusername/race-ledger/internal/service"
)

// resultEntry is one line of a results file
type resultEntry struct {
	ParticipantID   string `json:"participant_id"`
	ParticipantName string `json:"participant_name,omitempty"`
	TeamName        string `json:"team_name,omitempty"`
	Position        *int   `json:"position,omitempty"`
	FastestLap      bool   `json:"fastest_lap,omitempty"`
	DNF             bool   `json:"dnf,omitempty"`
	DNFReason       string `json:"dnf_reason,omitempty"`
	SprintPosition  *int   `json:"sprint_position,omitempty"`
}

func newResultsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "results",
		Short: "Inspect, check and save event results",
	}
	cmd.AddCommand(newResultsShowCmd(), newResultsCheckCmd(), newResultsSaveCmd())
	return cmd
}

func newResultsShowCmd() *cobra.Command {
	var eventID string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the stored results of an event",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(eventID)
			if err != nil {
				return fmt.Errorf("invalid event id %q: %w", eventID, err)
			}

			ctx := cmd.Context()
			db, repos, err := connect(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			editor, err := service.NewResultsService(repos, nil, appLog).OpenEditor(ctx, id)
			if err != nil {
				return err
			}
			printRows(cmd.OutOrStdout(), editor)
			return nil
		},
	}
	cmd.Flags().StringVar(&eventID, "event", "", "Event ID")
	_ = cmd.MarkFlagRequired("event")
	return cmd
}

func newResultsCheckCmd() *cobra.Command {
	var (
		file      string
		hasSprint bool
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate a results file and print the derived points without saving",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := readEntries(file)
			if err != nil {
				return err
			}

			editor, err := checkEntries(entries, hasSprint)
			if editor != nil {
				printRows(cmd.OutOrStdout(), editor)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Results are valid")
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Results file (JSON array)")
	cmd.Flags().BoolVar(&hasSprint, "sprint", false, "The event has a sprint race")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newResultsSaveCmd() *cobra.Command {
	var (
		eventID string
		file    string
	)

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Replace the stored results of an event with a results file",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(eventID)
			if err != nil {
				return fmt.Errorf("invalid event id %q: %w", eventID, err)
			}
			entries, err := readEntries(file)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			db, repos, err := connect(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			standingsSvc := service.NewStandingsService(repos, cfg.Standings, appLog)
			resultsSvc := service.NewResultsService(repos, standingsSvc, appLog)

			editor, err := resultsSvc.OpenEditor(ctx, id)
			if err != nil {
				return err
			}
			editor.Initialize(nil)
			if err := applyEntries(editor, entries); err != nil {
				return err
			}
			if err := resultsSvc.Save(ctx, editor); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %d results for round %d\n", editor.Len(), editor.Event().Round)
			return nil
		},
	}
	cmd.Flags().StringVar(&eventID, "event", "", "Event ID")
	cmd.Flags().StringVarP(&file, "file", "f", "", "Results file (JSON array)")
	_ = cmd.MarkFlagRequired("event")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func readEntries(file string) ([]resultEntry, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read results file: %w", err)
	}
	var entries []resultEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse results file: %w", err)
	}
	return entries, nil
}

// checkEntries builds an offline editor whose roster is the participants
// named in the file, then validates it
func checkEntries(entries []resultEntry, hasSprint bool) (*results.Editor, error) {
	eligible := make([]models.Participant, 0, len(entries))
	for i, entry := range entries {
		id, err := uuid.Parse(entry.ParticipantID)
		if err != nil {
			return nil, fmt.Errorf("entry %d: invalid participant id %q", i+1, entry.ParticipantID)
		}
		p := models.Participant{ID: id, Name: entry.ParticipantName, Role: models.RolePrimaryDriver}
		if entry.TeamName != "" {
			team := entry.TeamName
			p.TeamName = &team
		}
		eligible = append(eligible, p)
	}

	editor := results.NewEditor(models.Event{HasSprint: hasSprint}, eligible)
	if err := applyEntries(editor, entries); err != nil {
		return nil, err
	}
	return editor, editor.Validate()
}

type fieldEdit struct {
	field results.Field
	value interface{}
}

// applyEntries appends one row per entry. DNF is applied last so it clears
// any position or fastest lap given alongside it.
func applyEntries(editor *results.Editor, entries []resultEntry) error {
	for i, entry := range entries {
		row, ok := editor.AddRow()
		if !ok {
			return fmt.Errorf("entry %d: %w", i+1, results.ErrNoParticipant)
		}

		edits := []fieldEdit{
			{results.FieldParticipantID, entry.ParticipantID},
			{results.FieldPosition, entry.Position},
			{results.FieldSprintPosition, entry.SprintPosition},
			{results.FieldFastestLap, entry.FastestLap},
			{results.FieldDNFReason, entry.DNFReason},
			{results.FieldDNF, entry.DNF},
		}
		if entry.TeamName != "" {
			edits = append(edits, fieldEdit{results.FieldTeamName, entry.TeamName})
		}

		for _, edit := range edits {
			if _, err := editor.SetField(row.ID, edit.field, edit.value); err != nil {
				return fmt.Errorf("entry %d: %w", i+1, err)
			}
		}
	}
	return nil
}

func printRows(w io.Writer, editor *results.Editor) {
	fmt.Fprintf(w, "%-4s %-24s %-16s %4s %6s %4s\n", "POS", "DRIVER", "TEAM", "PTS", "SPRINT", "FL")
	for _, row := range editor.Rows() {
		pos := "-"
		switch {
		case row.DNF:
			pos = "DNF"
		case row.Position != nil:
			pos = fmt.Sprintf("%d", *row.Position)
		}
		fl := ""
		if row.FastestLap {
			fl = "*"
		}
		fmt.Fprintf(w, "%-4s %-24s %-16s %4d %6d %4s\n", pos, row.ParticipantName, row.TeamName, row.Points, row.SprintPoints, fl)
	}
}
