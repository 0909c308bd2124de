package results

import (
	"github.com/yourusername/race-ledger/internal/models"
)

// Validation failures, in the order they are checked
var (
	ErrEmptyResultSet          = models.NewValidationError("empty_result_set", "Add at least one result before saving")
	ErrMissingParticipant      = models.NewValidationError("missing_participant", "Every result must have a driver selected")
	ErrDuplicatePosition       = models.NewValidationError("duplicate_position", "Two or more drivers share the same finishing position")
	ErrDuplicateSprintPosition = models.NewValidationError("duplicate_sprint_position", "Two or more drivers share the same sprint position")
	ErrTooManyFastestLaps      = models.NewValidationError("too_many_fastest_laps", "Only one driver can have the fastest lap")
	ErrDuplicateParticipant    = models.NewValidationError("duplicate_participant", "A driver appears in more than one result")
)

type rule struct {
	err      *models.ValidationError
	violated func(rows []Row, hasSprint bool) bool
}

var rules = []rule{
	{ErrEmptyResultSet, func(rows []Row, _ bool) bool {
		return len(rows) == 0
	}},
	{ErrMissingParticipant, func(rows []Row, _ bool) bool {
		for _, r := range rows {
			if !r.Complete() {
				return true
			}
		}
		return false
	}},
	{ErrDuplicatePosition, func(rows []Row, _ bool) bool {
		return hasDuplicate(rows, func(r Row) *int { return r.Position })
	}},
	{ErrDuplicateSprintPosition, func(rows []Row, hasSprint bool) bool {
		return hasSprint && hasDuplicate(rows, func(r Row) *int { return r.SprintPosition })
	}},
	{ErrTooManyFastestLaps, func(rows []Row, _ bool) bool {
		count := 0
		for _, r := range rows {
			if r.FastestLap {
				count++
			}
		}
		return count > 1
	}},
	{ErrDuplicateParticipant, func(rows []Row, _ bool) bool {
		seen := make(map[string]struct{}, len(rows))
		for _, r := range rows {
			if _, ok := seen[r.ParticipantID]; ok {
				return true
			}
			seen[r.ParticipantID] = struct{}{}
		}
		return false
	}},
}

// Validate runs the checks in order and returns the first failure, or nil.
// Sprint positions are only checked for events with a sprint.
func (e *Editor) Validate() error {
	return validateRows(e.rows, e.event.HasSprint)
}

func validateRows(rows []Row, hasSprint bool) error {
	for _, r := range rules {
		if r.violated(rows, hasSprint) {
			return r.err
		}
	}
	return nil
}

func hasDuplicate(rows []Row, get func(Row) *int) bool {
	seen := make(map[int]struct{}, len(rows))
	for _, r := range rows {
		v := get(r)
		if v == nil {
			continue
		}
		if _, ok := seen[*v]; ok {
			return true
		}
		seen[*v] = struct{}{}
	}
	return false
}
