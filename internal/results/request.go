package results

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/yourusername/race-ledger/internal/models"
)

// ToPersistRequest validates the rows and maps them to write records. Empty
// optional fields are left nil, and the DNF reason is only sent for DNFs.
func (e *Editor) ToPersistRequest() ([]models.ResultRecord, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}

	records := make([]models.ResultRecord, 0, len(e.rows))
	for _, row := range e.rows {
		participantID, err := uuid.Parse(row.ParticipantID)
		if err != nil {
			return nil, fmt.Errorf("row %s participant %q: %w", row.ID, row.ParticipantID, models.ErrInvalidID)
		}

		rec := models.ResultRecord{
			ParticipantID:  participantID,
			TeamName:       optionalString(row.TeamName),
			Position:       copyInt(row.Position),
			Points:         row.Points,
			FastestLap:     row.FastestLap,
			DNF:            row.DNF,
			SprintPosition: copyInt(row.SprintPosition),
			SprintPoints:   row.SprintPoints,
		}
		if row.DNF {
			rec.DNFReason = optionalString(row.DNFReason)
		}
		records = append(records, rec)
	}
	return records, nil
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
