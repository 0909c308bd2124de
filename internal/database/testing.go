package database

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/yourusername/race-ledger/internal/config"
)

// SetupTestDB connects to the database named by RACE_LEDGER_TEST_CONFIG and
// skips the test when it is not set
func SetupTestDB(t *testing.T) *DB {
	t.Helper()

	path := os.Getenv("RACE_LEDGER_TEST_CONFIG")
	if path == "" {
		t.Skip("Integration test - set RACE_LEDGER_TEST_CONFIG to run")
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("failed to load test config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	db, err := Initialize(ctx, cfg)
	if err != nil {
		t.Fatalf("failed to create test database connection: %v", err)
	}

	t.Cleanup(db.Close)
	return db
}
