package models

import (
	"time"

	"github.com/google/uuid"
)

// RaceResult is a stored result row for one participant in one event
type RaceResult struct {
	ID              uuid.UUID `db:"id" json:"id"`
	EventID         uuid.UUID `db:"event_id" json:"event_id" validate:"required"`
	ParticipantID   uuid.UUID `db:"participant_id" json:"participant_id" validate:"required"`
	ParticipantName string    `db:"participant_name" json:"participant_name"`
	TeamName        *string   `db:"team_name" json:"team_name"`
	Position        *int      `db:"position" json:"position"`
	Points          int       `db:"points" json:"points" validate:"gte=0"`
	FastestLap      bool      `db:"fastest_lap" json:"fastest_lap"`
	DNF             bool      `db:"dnf" json:"dnf"`
	DNFReason       *string   `db:"dnf_reason" json:"dnf_reason"`
	SprintPosition  *int      `db:"sprint_position" json:"sprint_position"`
	SprintPoints    int       `db:"sprint_points" json:"sprint_points" validate:"gte=0"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// GetTeamName returns the team name or an empty string if unset
func (rr *RaceResult) GetTeamName() string {
	if rr.TeamName == nil {
		return ""
	}
	return *rr.TeamName
}

// TotalPoints returns race plus sprint points
func (rr *RaceResult) TotalPoints() int {
	return rr.Points + rr.SprintPoints
}

// ResultRecord is the finalized write shape for one result row. Optional
// fields are nil when unset so they are left out of the request.
type ResultRecord struct {
	ParticipantID  uuid.UUID `json:"participant_id" validate:"required"`
	TeamName       *string   `json:"team_name,omitempty" validate:"omitempty,min=1"`
	Position       *int      `json:"position,omitempty" validate:"omitempty,gt=0"`
	Points         int       `json:"points" validate:"gte=0"`
	FastestLap     bool      `json:"fastest_lap"`
	DNF            bool      `json:"dnf"`
	DNFReason      *string   `json:"dnf_reason,omitempty" validate:"omitempty,min=1"`
	SprintPosition *int      `json:"sprint_position,omitempty" validate:"omitempty,gt=0"`
	SprintPoints   int       `json:"sprint_points" validate:"gte=0"`
}
