package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Event statuses
const (
	EventStatusScheduled  = "scheduled"
	EventStatusInProgress = "in_progress"
	EventStatusCompleted  = "completed"
	EventStatusCancelled  = "cancelled"
)

// Event represents one round of a league season
type Event struct {
	ID        uuid.UUID `db:"id" json:"id" validate:"required"`
	LeagueID  uuid.UUID `db:"league_id" json:"league_id" validate:"required"`
	Round     int       `db:"round" json:"round" validate:"required,gt=0"`
	Track     string    `db:"track" json:"track" validate:"required"`
	Status    string    `db:"status" json:"status" validate:"oneof=scheduled in_progress completed cancelled"`
	Date      time.Time `db:"event_date" json:"date"`
	HasSprint bool      `db:"has_sprint" json:"has_sprint"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// IsCompleted checks if the event has finished and its results count
// towards the standings
func (e *Event) IsCompleted() bool {
	return e.Status == EventStatusCompleted
}

// Label returns the short round label used on charts, e.g. "R3"
func (e *Event) Label() string {
	return RoundLabel(e.Round)
}

// RoundLabel formats a round number as a chart label.
func RoundLabel(round int) string {
	return fmt.Sprintf("R%d", round)
}
