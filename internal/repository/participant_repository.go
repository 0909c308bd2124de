package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yourusername/race-ledger/internal/database"
	"github.com/yourusername/race-ledger/internal/models"
)

// PostgresParticipantRepository implements ParticipantRepository for PostgreSQL
type PostgresParticipantRepository struct {
	db *database.DB
}

// NewPostgresParticipantRepository creates a new participant repository
func NewPostgresParticipantRepository(db *database.DB) ParticipantRepository {
	return &PostgresParticipantRepository{db: db}
}

// GetDriversByLeague retrieves primary and reserve drivers of a league
func (r *PostgresParticipantRepository) GetDriversByLeague(ctx context.Context, leagueID uuid.UUID) ([]models.Participant, error) {
	query := `
		SELECT p.id, p.league_id, p.name, t.name, p.role, p.created_at, p.updated_at
		FROM participants p
		LEFT JOIN teams t ON t.id = p.team_id
		WHERE p.league_id = $1 AND p.role IN ($2, $3)
		ORDER BY p.name
	`

	rows, err := r.db.GetPool().Query(ctx, query, leagueID, models.RolePrimaryDriver, models.RoleReserveDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to query drivers: %w", err)
	}

	participants, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Participant, error) {
		var p models.Participant
		err := row.Scan(&p.ID, &p.LeagueID, &p.Name, &p.TeamName, &p.Role, &p.CreatedAt, &p.UpdatedAt)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan driver: %w", err)
	}

	return participants, nil
}

// PostgresTeamRepository implements TeamRepository for PostgreSQL
type PostgresTeamRepository struct {
	db *database.DB
}

// NewPostgresTeamRepository creates a new team repository
func NewPostgresTeamRepository(db *database.DB) TeamRepository {
	return &PostgresTeamRepository{db: db}
}

// GetByLeague retrieves the teams of a league ordered by name
func (r *PostgresTeamRepository) GetByLeague(ctx context.Context, leagueID uuid.UUID) ([]models.Team, error) {
	query := `
		SELECT id, league_id, name, created_at
		FROM teams
		WHERE league_id = $1
		ORDER BY name
	`

	rows, err := r.db.GetPool().Query(ctx, query, leagueID)
	if err != nil {
		return nil, fmt.Errorf("failed to query teams: %w", err)
	}

	teams, err := pgx.CollectRows(rows, pgx.RowToStructByPos[models.Team])
	if err != nil {
		return nil, fmt.Errorf("failed to scan team: %w", err)
	}

	return teams, nil
}
