package repository

import (
	"fmt"

	"github.com/yourusername/race-ledger/internal/database"
)

// Repositories holds all repository implementations
type Repositories struct {
	Participant ParticipantRepository
	Team        TeamRepository
	Event       EventRepository
	RaceResult  RaceResultRepository
	Standings   StandingsRepository
}

// NewRepositories creates and returns all repository implementations
func NewRepositories(db *database.DB) (*Repositories, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	return &Repositories{
		Participant: NewPostgresParticipantRepository(db),
		Team:        NewPostgresTeamRepository(db),
		Event:       NewPostgresEventRepository(db),
		RaceResult:  NewPostgresRaceResultRepository(db),
		Standings:   NewPostgresStandingsRepository(db),
	}, nil
}
