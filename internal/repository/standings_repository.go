package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yourusername/race-ledger/internal/database"
	"github.com/yourusername/race-ledger/internal/models"
)

// PostgresStandingsRepository implements StandingsRepository for PostgreSQL
type PostgresStandingsRepository struct {
	db *database.DB
}

// NewPostgresStandingsRepository creates a new standings repository
func NewPostgresStandingsRepository(db *database.DB) StandingsRepository {
	return &PostgresStandingsRepository{db: db}
}

// GetDriverStandings retrieves the driver snapshot ordered by rank
func (sr *PostgresStandingsRepository) GetDriverStandings(ctx context.Context, leagueID uuid.UUID) ([]models.DriverStanding, error) {
	query := `
		SELECT rank, participant_id, driver_name, team_name, total_points,
		       wins, podiums, fastest_laps, dnfs, races_completed
		FROM driver_standings
		WHERE league_id = $1
		ORDER BY rank ASC
	`

	rows, err := sr.db.GetPool().Query(ctx, query, leagueID)
	if err != nil {
		return nil, fmt.Errorf("failed to query driver standings: %w", err)
	}

	standings, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.DriverStanding])
	if err != nil {
		return nil, fmt.Errorf("failed to scan driver standing: %w", err)
	}

	return standings, nil
}

// GetTeamStandings retrieves the team snapshot ordered by rank
func (sr *PostgresStandingsRepository) GetTeamStandings(ctx context.Context, leagueID uuid.UUID) ([]models.TeamStanding, error) {
	query := `
		SELECT rank, team_name, total_points, wins, podiums
		FROM team_standings
		WHERE league_id = $1
		ORDER BY rank ASC
	`

	rows, err := sr.db.GetPool().Query(ctx, query, leagueID)
	if err != nil {
		return nil, fmt.Errorf("failed to query team standings: %w", err)
	}

	standings, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.TeamStanding])
	if err != nil {
		return nil, fmt.Errorf("failed to scan team standing: %w", err)
	}

	return standings, nil
}
