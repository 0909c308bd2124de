package models

import (
	"time"

	"github.com/google/uuid"
)

// Participant roles within a league
const (
	RolePrimaryDriver = "primary_driver"
	RoleReserveDriver = "reserve_driver"
	RoleTeamManager   = "team_manager"
	RoleSteward       = "steward"
)

// Participant represents a league member who may be entered in results
type Participant struct {
	ID        uuid.UUID `db:"id" json:"id" validate:"required"`
	LeagueID  uuid.UUID `db:"league_id" json:"league_id" validate:"required"`
	Name      string    `db:"name" json:"name" validate:"required"`
	TeamName  *string   `db:"team_name" json:"team_name,omitempty"`
	Role      string    `db:"role" json:"role" validate:"oneof=primary_driver reserve_driver team_manager steward"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// IsDriver reports whether the participant holds a driver-class role
func (p *Participant) IsDriver() bool {
	return p.Role == RolePrimaryDriver || p.Role == RoleReserveDriver
}

// GetTeamName returns the team name or an empty string if unassigned
func (p *Participant) GetTeamName() string {
	if p.TeamName == nil {
		return ""
	}
	return *p.TeamName
}

// Team represents a constructor entry within a league
type Team struct {
	ID        uuid.UUID `db:"id" json:"id"`
	LeagueID  uuid.UUID `db:"league_id" json:"league_id"`
	Name      string    `db:"name" json:"name" validate:"required"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
