package db

import (
	"database/sql"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"
)

// schemaVersionTable records which migrations have been applied
const schemaVersionTable = "linkintel_schema_version"

// migrationLockKey is the advisory lock held while a migration runs, so
// replicas starting together apply each version once.
const migrationLockKey = 0x6c6e6b69

// Migration is one versioned change to the product library schema
type Migration struct {
	Version     int
	Name        string
	Description string   // recorded with the version when applied
	Tables      []string // tables the migration changes
	Up          string
	Down        string
}

// MigrationStatus represents the status of a migration
type MigrationStatus struct {
	Version     int
	Name        string
	Description string
	Applied     bool
	AppliedAt   *time.Time
}

// sortedMigrations returns the migration list ordered by version
func sortedMigrations() []Migration {
	sorted := make([]Migration, len(postgresMigrations))
	copy(sorted, postgresMigrations)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Version < sorted[j].Version
	})
	return sorted
}

// validateMigrations rejects duplicate or non-positive versions, missing SQL
// and migrations that touch tables outside the linkintel_ namespace
func validateMigrations(migrations []Migration) error {
	seen := make(map[int]string, len(migrations))
	for _, m := range migrations {
		if m.Version <= 0 {
			return fmt.Errorf("migration %q has invalid version %d", m.Name, m.Version)
		}
		if prev, ok := seen[m.Version]; ok {
			return fmt.Errorf("migrations %q and %q share version %d", prev, m.Name, m.Version)
		}
		seen[m.Version] = m.Name
		if strings.TrimSpace(m.Up) == "" || strings.TrimSpace(m.Down) == "" {
			return fmt.Errorf("migration %d (%s) is missing SQL", m.Version, m.Name)
		}
		if m.Description == "" || len(m.Tables) == 0 {
			return fmt.Errorf("migration %d (%s) needs a description and its tables", m.Version, m.Name)
		}
		for _, table := range m.Tables {
			if !strings.HasPrefix(table, "linkintel_") {
				return fmt.Errorf("migration %d (%s) touches foreign table %q", m.Version, m.Name, table)
			}
		}
	}
	return nil
}

// pendingMigrations returns the migrations not in applied, in version order.
// A gap left by a migration added below the current maximum is filled.
func pendingMigrations(migrations []Migration, applied map[int]time.Time) []Migration {
	var pending []Migration
	for _, m := range migrations {
		if _, ok := applied[m.Version]; !ok {
			pending = append(pending, m)
		}
	}
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].Version < pending[j].Version
	})
	return pending
}

// Migrate applies every pending migration
func Migrate(db *sql.DB) error {
	if err := validateMigrations(postgresMigrations); err != nil {
		return err
	}
	if err := ensureVersionTable(db); err != nil {
		return fmt.Errorf("failed to create %s: %w", schemaVersionTable, err)
	}

	applied, err := appliedMigrations(db)
	if err != nil {
		return fmt.Errorf("failed to read applied migrations: %w", err)
	}
	pending := pendingMigrations(postgresMigrations, applied)
	slog.Default().Info("checked product library schema", "applied", len(applied), "pending", len(pending))

	for _, m := range pending {
		if err := runMigration(db, m); err != nil {
			return fmt.Errorf("failed to run migration %d (%s): %w", m.Version, m.Name, err)
		}
	}
	return nil
}

// ensureVersionTable creates the version table, adding the description
// column to tables created before it existed
func ensureVersionTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS ` + schemaVersionTable + ` (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			applied_at TIMESTAMPTZ DEFAULT NOW()
		);
		ALTER TABLE ` + schemaVersionTable + ` ADD COLUMN IF NOT EXISTS description TEXT NOT NULL DEFAULT '';
	`)
	return err
}

// appliedMigrations returns the applied versions and when each was applied
func appliedMigrations(db *sql.DB) (map[int]time.Time, error) {
	rows, err := db.Query("SELECT version, applied_at FROM " + schemaVersionTable)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[int]time.Time)
	for rows.Next() {
		var version int
		var at sql.NullTime
		if err := rows.Scan(&version, &at); err != nil {
			return nil, err
		}
		applied[version] = at.Time
	}
	return applied, rows.Err()
}

// runMigration applies m under the advisory lock. A version another
// replica applied while this one waited is skipped.
func runMigration(db *sql.DB, m Migration) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("SELECT pg_advisory_xact_lock($1)", migrationLockKey); err != nil {
		return fmt.Errorf("failed to acquire migration lock: %w", err)
	}

	var done bool
	if err := tx.QueryRow("SELECT EXISTS(SELECT 1 FROM "+schemaVersionTable+" WHERE version = $1)", m.Version).Scan(&done); err != nil {
		return fmt.Errorf("failed to check migration: %w", err)
	}
	if done {
		slog.Default().Debug("migration applied concurrently", "version", m.Version)
		return nil
	}

	slog.Default().Info("applying migration", "version", m.Version, "name", m.Name, "tables", m.Tables)
	if _, err := tx.Exec(m.Up); err != nil {
		return fmt.Errorf("failed to execute migration SQL: %w", err)
	}
	if _, err := tx.Exec(
		"INSERT INTO "+schemaVersionTable+" (version, name, description) VALUES ($1, $2, $3)",
		m.Version, m.Name, m.Description,
	); err != nil {
		return fmt.Errorf("failed to record migration: %w", err)
	}
	return tx.Commit()
}

// Rollback reverts the most recently applied migration
func Rollback(db *sql.DB) error {
	applied, err := appliedMigrations(db)
	if err != nil {
		return fmt.Errorf("failed to read applied migrations: %w", err)
	}
	if len(applied) == 0 {
		return fmt.Errorf("no migrations to rollback")
	}

	latest := 0
	for version := range applied {
		if version > latest {
			latest = version
		}
	}
	var target *Migration
	for i := range postgresMigrations {
		if postgresMigrations[i].Version == latest {
			target = &postgresMigrations[i]
			break
		}
	}
	if target == nil {
		return fmt.Errorf("migration %d not found", latest)
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("SELECT pg_advisory_xact_lock($1)", migrationLockKey); err != nil {
		return fmt.Errorf("failed to acquire migration lock: %w", err)
	}
	if _, err := tx.Exec(target.Down); err != nil {
		return fmt.Errorf("failed to rollback migration: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM "+schemaVersionTable+" WHERE version = $1", latest); err != nil {
		return fmt.Errorf("failed to remove migration record: %w", err)
	}

	slog.Default().Info("rolled back migration", "version", target.Version, "name", target.Name, "tables", target.Tables)
	return tx.Commit()
}

// GetMigrationStatus lists every known migration with its applied state
func GetMigrationStatus(db *sql.DB) ([]MigrationStatus, error) {
	applied, err := appliedMigrations(db)
	if err != nil {
		return nil, err
	}
	return migrationStatus(sortedMigrations(), applied), nil
}

func migrationStatus(migrations []Migration, applied map[int]time.Time) []MigrationStatus {
	status := make([]MigrationStatus, 0, len(migrations))
	for _, m := range migrations {
		s := MigrationStatus{Version: m.Version, Name: m.Name, Description: m.Description}
		if at, ok := applied[m.Version]; ok {
			s.Applied = true
			s.AppliedAt = &at
		}
		status = append(status, s)
	}
	return status
}
