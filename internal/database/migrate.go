package database

import (
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"sort"
	"strings"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate applies any pending .up.sql migrations in version order. Each
// migration runs in its own transaction together with the row that records
// it, so a failed migration leaves the version table consistent.
func Migrate(database *sql.DB) error {
	if _, err := database.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("creating migrations table: %w", err)
	}

	pending, err := pendingMigrations(database)
	if err != nil {
		return err
	}

	for _, filename := range pending {
		if err := applyMigration(database, filename); err != nil {
			return err
		}
		slog.Info("applied migration", "file", filename)
	}

	return nil
}

func pendingMigrations(database *sql.DB) ([]string, error) {
	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return nil, fmt.Errorf("reading migrations directory: %w", err)
	}

	var pending []string
	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), ".up.sql") {
			continue
		}

		var applied int
		err := database.QueryRow(
			"SELECT COUNT(*) FROM schema_migrations WHERE version = ?",
			extractVersion(entry.Name()),
		).Scan(&applied)
		if err != nil {
			return nil, fmt.Errorf("checking migration %s: %w", entry.Name(), err)
		}
		if applied == 0 {
			pending = append(pending, entry.Name())
		}
	}

	sort.Strings(pending)
	return pending, nil
}

func applyMigration(database *sql.DB, filename string) error {
	content, err := migrationsFS.ReadFile("migrations/" + filename)
	if err != nil {
		return fmt.Errorf("reading migration %s: %w", filename, err)
	}

	transaction, err := database.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction for %s: %w", filename, err)
	}
	defer transaction.Rollback()

	if _, err := transaction.Exec(string(content)); err != nil {
		return fmt.Errorf("executing migration %s: %w", filename, err)
	}
	if _, err := transaction.Exec(
		"INSERT INTO schema_migrations (version) VALUES (?)", extractVersion(filename),
	); err != nil {
		return fmt.Errorf("recording migration %s: %w", filename, err)
	}

	return transaction.Commit()
}

func extractVersion(filename string) int {
	var version int
	fmt.Sscanf(filename, "%d_", &version)
	return version
}
