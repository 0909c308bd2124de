package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestLogger() (*logrus.Logger, *bytes.Buffer) {
	log := logrus.New()
	buf := &bytes.Buffer{}
	log.SetOutput(buf)
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.DebugLevel)
	return log, buf
}

func parseLogOutput(buf *bytes.Buffer) map[string]interface{} {
	var logEntry map[string]interface{}
	err := json.Unmarshal(buf.Bytes(), &logEntry)
	if err != nil {
		return nil
	}
	return logEntry
}

func TestNewLoggerInvalidLevelDefaultsToInfo(t *testing.T) {
	buf := &bytes.Buffer{}
	log := newLogger(buf, "chatty", true)

	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)
	assert.Contains(t, buf.String(), "Invalid log level")
}

func TestNewLoggerTextFormatOutsideProduction(t *testing.T) {
	log := NewLoggerForEnvironment("debug", "development")

	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, log.Formatter)
}

func TestResultsLoggerValidationFailure(t *testing.T) {
	log, buf := setupTestLogger()
	resultsLogger := NewResultsLogger(log)

	resultsLogger.LogValidationFailure("event_123", "duplicate_position", 12)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "results", logEntry["component"])
	assert.Equal(t, "duplicate_position", logEntry["reason"])
	assert.Equal(t, float64(12), logEntry["row_count"])
	assert.Equal(t, "warning", logEntry["level"])
}

func TestResultsLoggerEditorOpened(t *testing.T) {
	log, buf := setupTestLogger()
	resultsLogger := NewResultsLogger(log)

	resultsLogger.LogEditorOpened("event_123", 4, 18, 20, true)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, float64(4), logEntry["round"])
	assert.Equal(t, true, logEntry["has_sprint"])
}

func TestResultsLoggerCollaboratorFailure(t *testing.T) {
	log, buf := setupTestLogger()
	resultsLogger := NewResultsLogger(log)

	resultsLogger.LogCollaboratorFailure("save", "event_123", errors.New("connection reset"))

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "save", logEntry["operation"])
	assert.Equal(t, "connection reset", logEntry["error"])
}

func TestAuditLoggerResultsSaved(t *testing.T) {
	log, buf := setupTestLogger()
	auditLogger := NewAuditLogger(log)

	auditLogger.LogResultsSaved(
		"event_123",
		7,
		20,
		2,
		"participant_9",
		time.Date(2025, 6, 1, 15, 0, 0, 0, time.UTC),
	)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "audit", logEntry["component"])
	assert.Equal(t, "event_123", logEntry["event_id"])
	assert.Equal(t, float64(2), logEntry["dnf_count"])
}

func TestAuditLoggerResultsSaveFailed(t *testing.T) {
	log, buf := setupTestLogger()
	auditLogger := NewAuditLogger(log)

	auditLogger.LogResultsSaveFailed("event_123", 7, 20, errors.New("deadlock detected"))

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "error", logEntry["level"])
	assert.Equal(t, "deadlock detected", logEntry["error"])
}

func TestStandingsLoggerAggregation(t *testing.T) {
	log, buf := setupTestLogger()
	standingsLogger := NewStandingsLogger(log)

	standingsLogger.LogAggregation("league_1", "drivers", 10, 6, false, 3.2)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "standings", logEntry["component"])
	assert.Equal(t, "drivers", logEntry["mode"])
	assert.Equal(t, false, logEntry["cache_hit"])
}

func TestStandingsLoggerRefresh(t *testing.T) {
	log, buf := setupTestLogger()
	standingsLogger := NewStandingsLogger(log)

	standingsLogger.LogRefresh("league_1", nil)
	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "info", logEntry["level"])

	buf.Reset()
	standingsLogger.LogRefresh("league_1", errors.New("timeout"))
	logEntry = parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "error", logEntry["level"])
}

func BenchmarkStandingsLoggerAggregation(b *testing.B) {
	log := logrus.New()
	log.SetOutput(&bytes.Buffer{})
	standingsLogger := NewStandingsLogger(log)

	for i := 0; i < b.N; i++ {
		standingsLogger.LogAggregation("league_1", "teams", 10, 22, true, 0.4)
	}
}
