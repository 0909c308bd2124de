package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yourusername/race-ledger/internal/database"
	"github.com/yourusername/race-ledger/internal/models"
)

const (
	errScanEvent = "failed to scan event: %w"
	eventColumns = "id, league_id, round, track, status, event_date, has_sprint, created_at, updated_at"
)

// PostgresEventRepository implements EventRepository for PostgreSQL
type PostgresEventRepository struct {
	db *database.DB
}

// NewPostgresEventRepository creates a new event repository
func NewPostgresEventRepository(db *database.DB) EventRepository {
	return &PostgresEventRepository{db: db}
}

// GetByID retrieves an event by ID
func (r *PostgresEventRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	event := &models.Event{}
	err := scanEvent(r.db.GetPool().QueryRow(ctx, query, id), event)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	return event, nil
}

// GetByLeague retrieves all events of a league ordered by date
func (r *PostgresEventRepository) GetByLeague(ctx context.Context, leagueID uuid.UUID) ([]models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE league_id = $1 ORDER BY event_date ASC, round ASC`

	rows, err := r.db.GetPool().Query(ctx, query, leagueID)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var event models.Event
		if err := scanEvent(rows, &event); err != nil {
			return nil, fmt.Errorf(errScanEvent, err)
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}

	return events, nil
}

func scanEvent(row pgx.Row, e *models.Event) error {
	return row.Scan(
		&e.ID, &e.LeagueID, &e.Round, &e.Track, &e.Status, &e.Date, &e.HasSprint,
		&e.CreatedAt, &e.UpdatedAt,
	)
}
