// Package logger provides results-editor logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// ResultsLogger provides dedicated logging for result editing sessions.
type ResultsLogger struct {
	*logrus.Entry
}

// NewResultsLogger creates a new results logger.
func NewResultsLogger(baseLogger *logrus.Logger) *ResultsLogger {
	return &ResultsLogger{
		Entry: baseLogger.WithField("component", "results"),
	}
}

// LogEditorOpened logs an editor session being seeded for an event.
func (rl *ResultsLogger) LogEditorOpened(eventID string, round, storedRows, eligibleDrivers int, hasSprint bool) {
	rl.WithFields(logrus.Fields{
		"event_id":         eventID,
		"round":            round,
		"stored_rows":      storedRows,
		"eligible_drivers": eligibleDrivers,
		"has_sprint":       hasSprint,
	}).Debug("Results editor opened")
}

// LogValidationFailure logs a result set rejected by validation.
func (rl *ResultsLogger) LogValidationFailure(eventID, code string, rowCount int) {
	rl.WithFields(logrus.Fields{
		"event_id":  eventID,
		"reason":    code,
		"row_count": rowCount,
	}).Warn("Results validation failed")
}

// LogCollaboratorFailure logs a failed fetch or save against a data source.
func (rl *ResultsLogger) LogCollaboratorFailure(operation, eventID string, err error) {
	rl.WithFields(logrus.Fields{
		"operation": operation,
		"event_id":  eventID,
	}).WithError(err).Error("Results operation failed")
}
