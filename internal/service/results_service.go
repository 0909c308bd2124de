// Package service wires the results editor and standings aggregator to
// storage, caching, logging and metrics.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/race-ledger/internal/logger"
	"github.com/yourusername/race-ledger/internal/metrics"
	"github.com/yourusername/race-ledger/internal/models"
	"github.com/yourusername/race-ledger/internal/repository"
	"github.com/yourusername/race-ledger/internal/results"
)

const invalidParticipantCode = "invalid_participant_id"

// StandingsInvalidator drops cached standings for a league
type StandingsInvalidator interface {
	Invalidate(leagueID uuid.UUID)
}

// ResultsService loads events into result editors and saves them back
type ResultsService struct {
	events       repository.EventRepository
	participants repository.ParticipantRepository
	teams        repository.TeamRepository
	results      repository.RaceResultRepository
	invalidator  StandingsInvalidator
	validate     *validator.Validate
	editorOpts   []results.Option
	logger       *logrus.Logger
	resultsLog   *logger.ResultsLogger
	auditLog     *logger.AuditLogger
	now          func() time.Time
}

// NewResultsService creates a new results service. invalidator may be nil.
func NewResultsService(
	repos *repository.Repositories,
	invalidator StandingsInvalidator,
	log *logrus.Logger,
	editorOpts ...results.Option,
) *ResultsService {
	return &ResultsService{
		events:       repos.Event,
		participants: repos.Participant,
		teams:        repos.Team,
		results:      repos.RaceResult,
		invalidator:  invalidator,
		validate:     validator.New(),
		editorOpts:   editorOpts,
		logger:       log,
		resultsLog:   logger.NewResultsLogger(log),
		auditLog:     logger.NewAuditLogger(log),
		now:          time.Now,
	}
}

// OpenEditor loads an event with its eligible drivers and stored results
// into a fresh editor
func (s *ResultsService) OpenEditor(ctx context.Context, eventID uuid.UUID) (*results.Editor, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, fmt.Errorf("event %s: %w", eventID, err)
		}
		return nil, s.collaboratorFailure("load_event", eventID, err)
	}

	drivers, err := s.participants.GetDriversByLeague(ctx, event.LeagueID)
	if err != nil {
		return nil, s.collaboratorFailure("load_drivers", eventID, err)
	}

	stored, err := s.results.GetByEventID(ctx, eventID)
	if err != nil {
		return nil, s.collaboratorFailure("load_results", eventID, err)
	}

	editor := results.NewEditor(*event, drivers, s.editorOpts...)
	editor.Initialize(stored)

	s.resultsLog.LogEditorOpened(eventID.String(), event.Round, len(stored), len(drivers), event.HasSprint)
	return editor, nil
}

// TeamNames returns the names of the teams valid for a league
func (s *ResultsService) TeamNames(ctx context.Context, leagueID uuid.UUID) ([]string, error) {
	teams, err := s.teams.GetByLeague(ctx, leagueID)
	if err != nil {
		return nil, s.collaboratorFailure("load_teams", leagueID, err)
	}

	names := make([]string, 0, len(teams))
	for _, t := range teams {
		names = append(names, t.Name)
	}
	return names, nil
}

// Save validates the editor and replaces the event's stored results.
// A validation failure is returned as is. A storage failure is returned as
// ErrOperationFailed and the editor is left untouched so the save can be
// retried.
func (s *ResultsService) Save(ctx context.Context, editor *results.Editor) error {
	event := editor.Event()
	eventID := event.ID.String()

	records, err := editor.ToPersistRequest()
	if err != nil {
		code := invalidParticipantCode
		var ve *models.ValidationError
		if errors.As(err, &ve) {
			code = ve.Code
		}
		s.resultsLog.LogValidationFailure(eventID, code, editor.Len())
		metrics.RecordValidationFailure(code)
		return err
	}

	for i := range records {
		if err := s.validate.Struct(records[i]); err != nil {
			s.resultsLog.LogValidationFailure(eventID, "invalid_record", len(records))
			metrics.RecordValidationFailure("invalid_record")
			return fmt.Errorf("result record %d: %w", i, err)
		}
	}

	if err := s.results.ReplaceForEvent(ctx, event.ID, records); err != nil {
		s.auditLog.LogResultsSaveFailed(eventID, event.Round, len(records), err)
		return s.collaboratorFailure("save_results", event.ID, err)
	}

	dnfCount, fastestLap := summarize(records)
	s.auditLog.LogResultsSaved(eventID, event.Round, len(records), dnfCount, fastestLap, s.now())
	metrics.RecordResultsSaved(len(records))

	if s.invalidator != nil {
		s.invalidator.Invalidate(event.LeagueID)
	}
	return nil
}

func (s *ResultsService) collaboratorFailure(operation string, id uuid.UUID, err error) error {
	s.resultsLog.LogCollaboratorFailure(operation, id.String(), err)
	metrics.RecordCollaboratorFailure(operation)
	return fmt.Errorf("%s: %w", operation, ErrOperationFailed)
}

func summarize(records []models.ResultRecord) (dnfCount int, fastestLap string) {
	for _, rec := range records {
		if rec.DNF {
			dnfCount++
		}
		if rec.FastestLap {
			fastestLap = rec.ParticipantID.String()
		}
	}
	return dnfCount, fastestLap
}
