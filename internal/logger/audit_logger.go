// Package logger provides audit logging.
package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// AuditLogger provides dedicated audit trail logging.
type AuditLogger struct {
	*logrus.Entry
}

// NewAuditLogger creates a new audit logger.
func NewAuditLogger(baseLogger *logrus.Logger) *AuditLogger {
	return &AuditLogger{
		Entry: baseLogger.WithField("component", "audit"),
	}
}

// LogResultsSaved logs a finalized result set being written for an event.
func (al *AuditLogger) LogResultsSaved(eventID string, round, rowCount, dnfCount int, fastestLapHolder string, timestamp time.Time) {
	al.WithFields(logrus.Fields{
		"event_id":           eventID,
		"round":              round,
		"row_count":          rowCount,
		"dnf_count":          dnfCount,
		"fastest_lap_holder": fastestLapHolder,
		"timestamp":          timestamp.Unix(),
	}).Info("Event results saved")
}

// LogResultsSaveFailed logs a failed write of an event's results.
func (al *AuditLogger) LogResultsSaveFailed(eventID string, round, rowCount int, err error) {
	al.WithFields(logrus.Fields{
		"event_id":  eventID,
		"round":     round,
		"row_count": rowCount,
	}).WithError(err).Error("Event results save failed")
}
