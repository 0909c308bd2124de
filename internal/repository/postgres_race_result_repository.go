package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yourusername/race-ledger/internal/database"
	"github.com/yourusername/race-ledger/internal/models"
)

// PostgresRaceResultRepository implements RaceResultRepository for PostgreSQL
type PostgresRaceResultRepository struct {
	db *database.DB
}

// NewPostgresRaceResultRepository creates a new race result repository
func NewPostgresRaceResultRepository(db *database.DB) RaceResultRepository {
	return &PostgresRaceResultRepository{db: db}
}

// GetByEventID retrieves the stored result rows of an event
func (r *PostgresRaceResultRepository) GetByEventID(ctx context.Context, eventID uuid.UUID) ([]models.RaceResult, error) {
	query := `
		SELECT rr.id, rr.event_id, rr.participant_id, p.name, rr.team_name, rr.position,
		       rr.points, rr.fastest_lap, rr.dnf, rr.dnf_reason, rr.sprint_position,
		       rr.sprint_points, rr.created_at, rr.updated_at
		FROM race_results rr
		JOIN participants p ON p.id = rr.participant_id
		WHERE rr.event_id = $1
		ORDER BY rr.position ASC NULLS LAST, p.name ASC
	`

	rows, err := r.db.GetPool().Query(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query race results: %w", err)
	}
	defer rows.Close()

	var results []models.RaceResult
	for rows.Next() {
		var res models.RaceResult
		err := rows.Scan(
			&res.ID, &res.EventID, &res.ParticipantID, &res.ParticipantName, &res.TeamName, &res.Position,
			&res.Points, &res.FastestLap, &res.DNF, &res.DNFReason, &res.SprintPosition,
			&res.SprintPoints, &res.CreatedAt, &res.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan race result: %w", err)
		}
		results = append(results, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating race results: %w", err)
	}

	return results, nil
}

// ReplaceForEvent deletes the event's rows and bulk inserts records in one transaction
func (r *PostgresRaceResultRepository) ReplaceForEvent(ctx context.Context, eventID uuid.UUID, records []models.ResultRecord) error {
	columns := []string{
		"id", "event_id", "participant_id", "team_name", "position", "points",
		"fastest_lap", "dnf", "dnf_reason", "sprint_position", "sprint_points",
	}

	copyFromSource := make([][]interface{}, len(records))
	for i, rec := range records {
		copyFromSource[i] = []interface{}{
			uuid.New(), eventID, rec.ParticipantID, rec.TeamName, rec.Position, rec.Points,
			rec.FastestLap, rec.DNF, rec.DNFReason, rec.SprintPosition, rec.SprintPoints,
		}
	}

	return r.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM race_results WHERE event_id = $1`, eventID); err != nil {
			return fmt.Errorf("failed to clear race results: %w", err)
		}

		if len(records) == 0 {
			return nil
		}

		copyCount, err := tx.CopyFrom(ctx, pgx.Identifier{"race_results"}, columns, pgx.CopyFromRows(copyFromSource))
		if err != nil {
			return fmt.Errorf("failed to batch insert race results: %w", err)
		}

		if copyCount != int64(len(records)) {
			return fmt.Errorf("inserted %d rows, expected %d", copyCount, len(records))
		}

		_, err = tx.Exec(ctx, `UPDATE events SET status = $1, updated_at = NOW() WHERE id = $2`, models.EventStatusCompleted, eventID)
		if err != nil {
			return fmt.Errorf("failed to mark event completed: %w", err)
		}

		return nil
	})
}
