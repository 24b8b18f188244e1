package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

type migration struct {
	Version int
	Name    string
	SQL     string
}

// The DDL is restricted to the subset sqlite and postgres both accept.
var migrations = []migration{
	{
		Version: 1,
		Name:    "initial_schema",
		SQL: `
			CREATE TABLE profiles (
				id TEXT PRIMARY KEY,
				email TEXT NOT NULL UNIQUE,
				password_hash TEXT NOT NULL,
				role TEXT NOT NULL CHECK (role IN ('client', 'helper')),
				full_name TEXT NOT NULL,
				phone TEXT,
				city TEXT NOT NULL,
				state TEXT,
				description TEXT,
				skills TEXT,
				hourly_rate DOUBLE PRECISION,
				rating DOUBLE PRECISION NOT NULL DEFAULT 0,
				reviews_count INTEGER NOT NULL DEFAULT 0,
				member_since INTEGER NOT NULL,
				created_at TEXT NOT NULL
			);

			CREATE TABLE availabilities (
				id TEXT PRIMARY KEY,
				helper_id TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
				days TEXT NOT NULL,
				start_time TEXT NOT NULL,
				end_time TEXT NOT NULL
			);

			CREATE TABLE reviews (
				id TEXT PRIMARY KEY,
				reviewer_id TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
				reviewee_id TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
				rating DOUBLE PRECISION NOT NULL,
				comment TEXT,
				created_at TEXT NOT NULL
			);

			-- client_id and helper_id are deliberately not foreign keys
			CREATE TABLE jobs (
				id TEXT PRIMARY KEY,
				client_id TEXT NOT NULL,
				helper_id TEXT NOT NULL,
				scheduled_date TEXT NOT NULL,
				scheduled_start TEXT NOT NULL,
				scheduled_end TEXT,
				agreed_hourly_rate DOUBLE PRECISION NOT NULL,
				total_amount DOUBLE PRECISION NOT NULL,
				status TEXT NOT NULL CHECK (status IN ('requested', 'accepted', 'rejected', 'completed', 'cancelled')),
				details TEXT NOT NULL,
				created_at TEXT NOT NULL
			);
		`,
	},
	{
		Version: 2,
		Name:    "lookup_indexes",
		SQL: `
			CREATE INDEX idx_profiles_role ON profiles(role);
			CREATE INDEX idx_availabilities_helper ON availabilities(helper_id);
			CREATE INDEX idx_reviews_reviewee ON reviews(reviewee_id);
			CREATE INDEX idx_jobs_helper ON jobs(helper_id);
		`,
	},
}

// Migrate applies every migration newer than the recorded schema version.
func (db *DB) Migrate(ctx context.Context) error {
	db.logger.Info().Str("driver", db.driver).Msg("running database migrations")

	_, err := db.exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at TEXT NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("create migrations table: %w", err)
	}

	current, err := db.SchemaVersion(ctx)
	if err != nil {
		return err
	}
	db.logger.Debug().Int("current_version", current).Msg("current schema version")

	for _, m := range migrations {
		if m.Version <= current {
			continue
		}
		db.logger.Info().Int("version", m.Version).Str("name", m.Name).Msg("applying migration")

		err := db.Transaction(ctx, func(tx *sql.Tx) error {
			for i, stmt := range splitSQLStatements(m.SQL) {
				if _, err := tx.ExecContext(ctx, stmt); err != nil {
					return fmt.Errorf("migration %d statement %d: %w", m.Version, i+1, err)
				}
			}
			_, err := tx.ExecContext(ctx,
				db.rebind("INSERT INTO schema_migrations (version, applied_at) VALUES (?, ?)"),
				m.Version, formatTime(time.Now()))
			if err != nil {
				return fmt.Errorf("record migration %d: %w", m.Version, err)
			}
			return nil
		})
		if err != nil {
			return err
		}
	}

	db.logger.Info().Msg("database migrations complete")
	return nil
}

// SchemaVersion returns the highest applied migration, 0 for an empty store.
func (db *DB) SchemaVersion(ctx context.Context) (int, error) {
	var v int
	if err := db.queryRow(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&v); err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return v, nil
}

// splitSQLStatements splits a migration into statements, skipping blank
// lines and full-line comments.
func splitSQLStatements(src string) []string {
	var statements []string
	var current strings.Builder

	for _, line := range strings.Split(src, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}
		current.WriteString(line)
		current.WriteString("\n")

		if strings.HasSuffix(trimmed, ";") {
			if stmt := strings.TrimSuffix(strings.TrimSpace(current.String()), ";"); stmt != "" {
				statements = append(statements, stmt)
			}
			current.Reset()
		}
	}

	if remaining := strings.TrimSpace(current.String()); remaining != "" {
		statements = append(statements, remaining)
	}
	return statements
}
