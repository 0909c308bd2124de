package database

import (
	"context"
	"fmt"

	"github.com/yourusername/race-ledger/internal/config"
)

// requiredTables are created by the migrations under migrations/
var requiredTables = []string{"participants", "teams", "events", "race_results", "driver_standings", "team_standings"}

// Initialize creates a database connection pool and verifies the schema is in place
func Initialize(ctx context.Context, cfg *config.Config) (*DB, error) {
	db, err := NewDB(ctx, &cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := db.verifySchema(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func (db *DB) verifySchema(ctx context.Context) error {
	for _, table := range requiredTables {
		var exists bool
		err := db.pool.QueryRow(ctx, "SELECT to_regclass($1) IS NOT NULL", table).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check table %s: %w", table, err)
		}
		if !exists {
			return fmt.Errorf("table %s not found, run database migrations first", table)
		}
	}
	return nil
}
