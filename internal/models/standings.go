package models

import (
	"github.com/google/uuid"
)

// DriverStanding is one pre-ranked entry of the driver championship snapshot
type DriverStanding struct {
	Rank           int       `db:"rank" json:"rank"`
	ParticipantID  uuid.UUID `db:"participant_id" json:"participant_id"`
	DriverName     string    `db:"driver_name" json:"driver_name"`
	TeamName       string    `db:"team_name" json:"team_name"`
	TotalPoints    int       `db:"total_points" json:"total_points"`
	Wins           int       `db:"wins" json:"wins"`
	Podiums        int       `db:"podiums" json:"podiums"`
	FastestLaps    int       `db:"fastest_laps" json:"fastest_laps"`
	DNFs           int       `db:"dnfs" json:"dnfs"`
	RacesCompleted int       `db:"races_completed" json:"races_completed"`
}

// TeamStanding is one pre-ranked entry of the team championship snapshot
type TeamStanding struct {
	Rank        int    `db:"rank" json:"rank"`
	TeamName    string `db:"team_name" json:"team_name"`
	TotalPoints int    `db:"total_points" json:"total_points"`
	Wins        int    `db:"wins" json:"wins"`
	Podiums     int    `db:"podiums" json:"podiums"`
}
