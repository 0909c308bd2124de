package results

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/race-ledger/internal/models"
)

func TestValidateOrderedChecks(t *testing.T) {
	tests := []struct {
		name      string
		hasSprint bool
		rows      []Row
		expected  error
	}{
		{
			name:     "empty result set",
			rows:     nil,
			expected: ErrEmptyResultSet,
		},
		{
			name: "missing participant",
			rows: []Row{
				{ID: "a", ParticipantID: "p1", Position: intPtr(1)},
				{ID: "b", Position: intPtr(2)},
			},
			expected: ErrMissingParticipant,
		},
		{
			name: "missing participant wins over duplicate position",
			rows: []Row{
				{ID: "a", ParticipantID: "p1", Position: intPtr(3)},
				{ID: "b", Position: intPtr(3)},
			},
			expected: ErrMissingParticipant,
		},
		{
			name: "duplicate position",
			rows: []Row{
				{ID: "a", ParticipantID: "p1", Position: intPtr(3)},
				{ID: "b", ParticipantID: "p2", Position: intPtr(3)},
			},
			expected: ErrDuplicatePosition,
		},
		{
			name: "unset positions are not duplicates",
			rows: []Row{
				{ID: "a", ParticipantID: "p1"},
				{ID: "b", ParticipantID: "p2", DNF: true},
			},
			expected: nil,
		},
		{
			name:      "duplicate sprint position in sprint event",
			hasSprint: true,
			rows: []Row{
				{ID: "a", ParticipantID: "p1", Position: intPtr(1), SprintPosition: intPtr(2)},
				{ID: "b", ParticipantID: "p2", Position: intPtr(2), SprintPosition: intPtr(2)},
			},
			expected: ErrDuplicateSprintPosition,
		},
		{
			name:      "duplicate sprint position ignored without sprint",
			hasSprint: false,
			rows: []Row{
				{ID: "a", ParticipantID: "p1", Position: intPtr(1), SprintPosition: intPtr(2)},
				{ID: "b", ParticipantID: "p2", Position: intPtr(2), SprintPosition: intPtr(2)},
			},
			expected: nil,
		},
		{
			name:      "duplicate position reported before sprint duplicate",
			hasSprint: true,
			rows: []Row{
				{ID: "a", ParticipantID: "p1", Position: intPtr(1), SprintPosition: intPtr(1)},
				{ID: "b", ParticipantID: "p2", Position: intPtr(1), SprintPosition: intPtr(1)},
			},
			expected: ErrDuplicatePosition,
		},
		{
			name: "too many fastest laps",
			rows: []Row{
				{ID: "a", ParticipantID: "p1", Position: intPtr(1), FastestLap: true},
				{ID: "b", ParticipantID: "p2", Position: intPtr(2), FastestLap: true},
			},
			expected: ErrTooManyFastestLaps,
		},
		{
			name: "duplicate participant",
			rows: []Row{
				{ID: "a", ParticipantID: "p1", Position: intPtr(1)},
				{ID: "b", ParticipantID: "p1", Position: intPtr(2)},
			},
			expected: ErrDuplicateParticipant,
		},
		{
			name:      "valid sprint weekend",
			hasSprint: true,
			rows: []Row{
				{ID: "a", ParticipantID: "p1", Position: intPtr(1), FastestLap: true, SprintPosition: intPtr(2)},
				{ID: "b", ParticipantID: "p2", Position: intPtr(2), SprintPosition: intPtr(1)},
				{ID: "c", ParticipantID: "p3", DNF: true},
			},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateRows(tt.rows, tt.hasSprint)
			if tt.expected == nil {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.expected, err)
			assert.True(t, models.IsValidationError(err))
		})
	}
}

func TestValidateEmptyOnlyWhenNoRows(t *testing.T) {
	editor := newTestEditor(false, testDriver("Alice", teamRed))
	assert.ErrorIs(t, editor.Validate(), ErrEmptyResultSet)

	editor.AddRow()
	err := editor.Validate()
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrEmptyResultSet)
}

func TestValidateDuplicatePositionScenario(t *testing.T) {
	alice := testDriver("Alice", teamRed)
	bob := testDriver("Bob", teamBlue)
	editor := newTestEditor(false, alice, bob)

	r1, _ := editor.AddRow()
	r2, _ := editor.AddRow()
	for id, p := range map[string]models.Participant{r1.ID: alice, r2.ID: bob} {
		_, err := editor.SetField(id, FieldParticipantID, p.ID.String())
		require.NoError(t, err)
		_, err = editor.SetField(id, FieldPosition, 3)
		require.NoError(t, err)
	}

	assert.ErrorIs(t, editor.Validate(), ErrDuplicatePosition)
}

func TestValidationErrorCodes(t *testing.T) {
	codes := map[string]bool{}
	for _, r := range rules {
		assert.NotEmpty(t, r.err.Message)
		assert.False(t, codes[r.err.Code], "duplicate code %s", r.err.Code)
		codes[r.err.Code] = true
	}
	assert.Len(t, codes, 6)
}
