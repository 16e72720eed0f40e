package storage

import (
	"context"
	"database/sql"
	"fmt"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS slots (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at DATETIME NOT NULL
		);`,
		// Audit trail of every XP / calm point grant.
		`CREATE TABLE IF NOT EXISTS rewards (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			source TEXT NOT NULL,
			xp INTEGER NOT NULL DEFAULT 0,
			calm_points INTEGER NOT NULL DEFAULT 0,
			level_after INTEGER NOT NULL DEFAULT 1,
			granted_at DATETIME NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_rewards_source ON rewards(source);`,
		`CREATE INDEX IF NOT EXISTS idx_rewards_granted_at ON rewards(granted_at);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
