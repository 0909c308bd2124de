package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/yourusername/race-ledger/internal/models"
)

// ParticipantRepository supplies the drivers of a league
type ParticipantRepository interface {
	// GetDriversByLeague returns participants holding a primary or reserve
	// driver role, ordered by name
	GetDriversByLeague(ctx context.Context, leagueID uuid.UUID) ([]models.Participant, error)
}

// TeamRepository supplies the teams valid for a league
type TeamRepository interface {
	GetByLeague(ctx context.Context, leagueID uuid.UUID) ([]models.Team, error)
}

// EventRepository supplies the rounds of a league season
type EventRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error)
	// GetByLeague returns every event of a league ordered by date ascending
	GetByLeague(ctx context.Context, leagueID uuid.UUID) ([]models.Event, error)
}

// RaceResultRepository reads and writes the result rows of an event
type RaceResultRepository interface {
	// GetByEventID returns the stored rows of an event, ordered by position
	// with unplaced rows last
	GetByEventID(ctx context.Context, eventID uuid.UUID) ([]models.RaceResult, error)

	// ReplaceForEvent atomically replaces an event's rows with records
	ReplaceForEvent(ctx context.Context, eventID uuid.UUID, records []models.ResultRecord) error
}

// StandingsRepository supplies the pre-ranked championship snapshot
type StandingsRepository interface {
	GetDriverStandings(ctx context.Context, leagueID uuid.UUID) ([]models.DriverStanding, error)
	GetTeamStandings(ctx context.Context, leagueID uuid.UUID) ([]models.TeamStanding, error)
}
