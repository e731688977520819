package storage

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// MigrateUp brings the settings schema to the latest version. Every
// migration is idempotent, so re-running on an existing database is safe.
func MigrateUp(db *sql.DB) error {
	return runMigrations(db, "up")
}

// MigrateDown tears the schema back down, newest first.
func MigrateDown(db *sql.DB) error {
	return runMigrations(db, "down")
}

func runMigrations(db *sql.DB, direction string) error {
	names, err := fs.Glob(migrationFS, "migrations/*."+direction+".sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(names)
	if direction == "down" {
		for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
			names[i], names[j] = names[j], names[i]
		}
	}
	for _, name := range names {
		stmt, err := migrationFS.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		if _, err := db.Exec(string(stmt)); err != nil {
			return fmt.Errorf("run %s: %w", name, err)
		}
	}
	return nil
}
