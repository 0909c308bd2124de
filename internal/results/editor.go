package results

import (
	"github.com/google/uuid"
	"github.com/yourusername/race-ledger/internal/models"
)

// Editor holds the result rows of one event while they are being edited.
// It is not safe for concurrent use; edits are applied one at a time.
type Editor struct {
	event    models.Event
	eligible []models.Participant
	roster   Roster
	rows     []Row
	newRowID func() string
}

// Option configures an Editor
type Option func(*Editor)

// WithRowIDGenerator overrides how row ids are generated
func WithRowIDGenerator(fn func() string) Option {
	return func(e *Editor) {
		e.newRowID = fn
	}
}

// NewEditor creates an empty editor for an event. eligible is the set of
// driver-class participants that may be assigned to rows.
func NewEditor(event models.Event, eligible []models.Participant, opts ...Option) *Editor {
	e := &Editor{
		event:    event,
		eligible: eligible,
		roster:   NewRoster(eligible),
		rows:     make([]Row, 0, len(eligible)),
		newRowID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Event returns the event being edited
func (e *Editor) Event() models.Event {
	return e.event
}

// Initialize replaces the rows with previously stored results. Stored values
// are taken as-is and are not validated here.
func (e *Editor) Initialize(existing []models.RaceResult) {
	e.rows = make([]Row, 0, len(existing))
	for _, rr := range existing {
		row := Row{
			ID:              e.newRowID(),
			ParticipantID:   participantIDString(rr.ParticipantID),
			ParticipantName: rr.ParticipantName,
			TeamName:        rr.GetTeamName(),
			Position:        copyInt(rr.Position),
			Points:          rr.Points,
			FastestLap:      rr.FastestLap,
			DNF:             rr.DNF,
			SprintPosition:  copyInt(rr.SprintPosition),
			SprintPoints:    rr.SprintPoints,
		}
		if rr.DNFReason != nil {
			row.DNFReason = *rr.DNFReason
		}
		if p, ok := e.roster.Lookup(row.ParticipantID); ok {
			if row.ParticipantName == "" {
				row.ParticipantName = p.Name
			}
			if row.TeamName == "" {
				row.TeamName = p.GetTeamName()
			}
		}
		e.rows = append(e.rows, row)
	}
}

// Rows returns a copy of the current rows in display order
func (e *Editor) Rows() []Row {
	out := make([]Row, len(e.rows))
	copy(out, e.rows)
	return out
}

// Len returns the number of rows
func (e *Editor) Len() int {
	return len(e.rows)
}

// Row returns the row with the given id
func (e *Editor) Row(rowID string) (Row, bool) {
	i := e.indexOf(rowID)
	if i < 0 {
		return Row{}, false
	}
	return e.rows[i], true
}

// CanAddRow reports whether another participant is left to assign
func (e *Editor) CanAddRow() bool {
	return len(e.rows) < len(e.eligible)
}

// AddRow appends an empty row. It returns false and adds nothing when every
// eligible participant already has a row.
func (e *Editor) AddRow() (Row, bool) {
	if !e.CanAddRow() {
		return Row{}, false
	}
	row := Row{ID: e.newRowID()}
	e.rows = append(e.rows, row)
	return row, true
}

// RemoveRow deletes a row. Other rows are left untouched.
func (e *Editor) RemoveRow(rowID string) bool {
	i := e.indexOf(rowID)
	if i < 0 {
		return false
	}
	e.rows = append(e.rows[:i], e.rows[i+1:]...)
	return true
}

// SetField updates one field of a row and re-derives its dependent fields
func (e *Editor) SetField(rowID string, field Field, value interface{}) (Row, error) {
	i := e.indexOf(rowID)
	if i < 0 {
		return Row{}, ErrRowNotFound
	}
	updated, err := ApplyEdit(e.rows[i], field, value, e.roster)
	if err != nil {
		return e.rows[i], err
	}
	e.rows[i] = updated
	return updated, nil
}

// AvailableParticipants returns the eligible participants not assigned to
// any row other than excludingRowID, in roster order.
func (e *Editor) AvailableParticipants(excludingRowID string) []models.Participant {
	taken := make(map[string]struct{}, len(e.rows))
	for _, row := range e.rows {
		if row.ID == excludingRowID || row.ParticipantID == "" {
			continue
		}
		taken[row.ParticipantID] = struct{}{}
	}

	available := make([]models.Participant, 0, len(e.eligible))
	for _, p := range e.eligible {
		if _, ok := taken[p.ID.String()]; ok {
			continue
		}
		available = append(available, p)
	}
	return available
}

func (e *Editor) indexOf(rowID string) int {
	for i := range e.rows {
		if e.rows[i].ID == rowID {
			return i
		}
	}
	return -1
}

func participantIDString(id uuid.UUID) string {
	if id == uuid.Nil {
		return ""
	}
	return id.String()
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
