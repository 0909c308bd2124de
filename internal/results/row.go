// Package results implements the per-event results editor: row editing with
// derived points, participant assignment and first-failure validation.
package results

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/yourusername/race-ledger/internal/models"
	"github.com/yourusername/race-ledger/internal/scoring"
)

// Field identifies an editable column of a result row
type Field string

// Editable and derived fields
const (
	FieldParticipantID  Field = "participant_id"
	FieldTeamName       Field = "team_name"
	FieldPosition       Field = "position"
	FieldPoints         Field = "points"
	FieldFastestLap     Field = "fastest_lap"
	FieldDNF            Field = "dnf"
	FieldDNFReason      Field = "dnf_reason"
	FieldSprintPosition Field = "sprint_position"
	FieldSprintPoints   Field = "sprint_points"
)

// Edit errors
var (
	ErrRowNotFound   = errors.New("result row not found")
	ErrDerivedField  = errors.New("field is derived and cannot be edited")
	ErrUnknownField  = errors.New("unknown result field")
	ErrInvalidValue  = errors.New("invalid value for field")
	ErrNoParticipant = errors.New("no participant left to assign")
)

// Row is one editable result line. Points and SprintPoints are always
// derived from the other fields.
type Row struct {
	ID              string `json:"row_id"`
	ParticipantID   string `json:"participant_id"`
	ParticipantName string `json:"participant_name"`
	TeamName        string `json:"team_name"`
	Position        *int   `json:"position"`
	Points          int    `json:"points"`
	FastestLap      bool   `json:"fastest_lap"`
	DNF             bool   `json:"dnf"`
	DNFReason       string `json:"dnf_reason"`
	SprintPosition  *int   `json:"sprint_position"`
	SprintPoints    int    `json:"sprint_points"`
}

// Complete reports whether a participant has been assigned to the row
func (r Row) Complete() bool {
	return r.ParticipantID != ""
}

// Roster resolves participant ids to participants
type Roster map[string]models.Participant

// NewRoster indexes participants by id
func NewRoster(participants []models.Participant) Roster {
	roster := make(Roster, len(participants))
	for _, p := range participants {
		roster[p.ID.String()] = p
	}
	return roster
}

// Lookup returns the participant for an id
func (r Roster) Lookup(id string) (models.Participant, bool) {
	p, ok := r[id]
	return p, ok
}

// ApplyEdit sets one field on a copy of row and re-derives the dependent
// fields. The input row is never modified.
func ApplyEdit(row Row, field Field, value interface{}, roster Roster) (Row, error) {
	switch field {
	case FieldParticipantID:
		id, err := asParticipantID(value)
		if err != nil {
			return row, fmt.Errorf("%s: %w", field, err)
		}
		row.ParticipantID = id
		row.ParticipantName = ""
		row.TeamName = ""
		if p, ok := roster.Lookup(id); ok {
			row.ParticipantName = p.Name
			row.TeamName = p.GetTeamName()
		}

	case FieldTeamName:
		s, ok := value.(string)
		if !ok {
			return row, fmt.Errorf("%s: %w", field, ErrInvalidValue)
		}
		row.TeamName = s

	case FieldPosition:
		pos, err := asPosition(value)
		if err != nil {
			return row, fmt.Errorf("%s: %w", field, err)
		}
		row.Position = pos

	case FieldDNF:
		b, ok := value.(bool)
		if !ok {
			return row, fmt.Errorf("%s: %w", field, ErrInvalidValue)
		}
		row.DNF = b

	case FieldFastestLap:
		b, ok := value.(bool)
		if !ok {
			return row, fmt.Errorf("%s: %w", field, ErrInvalidValue)
		}
		row.FastestLap = b

	case FieldDNFReason:
		s, ok := value.(string)
		if !ok {
			return row, fmt.Errorf("%s: %w", field, ErrInvalidValue)
		}
		row.DNFReason = s

	case FieldSprintPosition:
		pos, err := asPosition(value)
		if err != nil {
			return row, fmt.Errorf("%s: %w", field, err)
		}
		row.SprintPosition = pos

	case FieldPoints, FieldSprintPoints:
		return row, fmt.Errorf("%s: %w", field, ErrDerivedField)

	default:
		return row, fmt.Errorf("%q: %w", field, ErrUnknownField)
	}

	return derive(row), nil
}

// derive enforces the DNF rules and recomputes both points columns
func derive(row Row) Row {
	if row.DNF {
		row.Position = nil
		row.FastestLap = false
	}
	row.Points = scoring.RacePoints(row.Position, row.DNF)
	row.SprintPoints = scoring.SprintPoints(row.SprintPosition)
	return row
}

func asParticipantID(value interface{}) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case uuid.UUID:
		if v == uuid.Nil {
			return "", nil
		}
		return v.String(), nil
	default:
		return "", ErrInvalidValue
	}
}

// asPosition accepts nil, int or *int. Positions start at 1.
func asPosition(value interface{}) (*int, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case int:
		if v < 1 {
			return nil, ErrInvalidValue
		}
		p := v
		return &p, nil
	case *int:
		if v == nil {
			return nil, nil
		}
		if *v < 1 {
			return nil, ErrInvalidValue
		}
		p := *v
		return &p, nil
	default:
		return nil, ErrInvalidValue
	}
}
