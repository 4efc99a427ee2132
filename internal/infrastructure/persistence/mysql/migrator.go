package mysql

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migrator handles database schema migrations with version tracking.
type Migrator struct {
	db *sql.DB
}

// NewMigrator creates a new migrator for the given database connection.
func NewMigrator(db *sql.DB) *Migrator {
	return &Migrator{db: db}
}

// Migration represents a single database migration.
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// Up runs all pending migrations to bring the database schema up to date.
// Applied migrations are tracked in the schema_migrations table.
func (m *Migrator) Up(ctx context.Context) error {
	currentVersion, err := m.currentVersion(ctx)
	if err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	migrations, err := m.loadMigrations()
	if err != nil {
		return fmt.Errorf("loading migrations: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}
		if err := m.applyMigration(ctx, migration); err != nil {
			return fmt.Errorf("applying migration %d (%s): %w", migration.Version, migration.Name, err)
		}
	}

	return nil
}

// currentVersion returns the latest applied migration version.
// Returns 0 if no migrations have been applied.
func (m *Migrator) currentVersion(ctx context.Context) (int, error) {
	var tableExists bool
	checkTableQuery := `
		SELECT COUNT(*) > 0
		FROM information_schema.tables
		WHERE table_schema = DATABASE()
		AND table_name = 'schema_migrations'
	`
	if err := m.db.QueryRowContext(ctx, checkTableQuery).Scan(&tableExists); err != nil {
		return 0, fmt.Errorf("checking schema_migrations table: %w", err)
	}
	if !tableExists {
		return 0, nil
	}

	var version sql.NullInt64
	if err := m.db.QueryRowContext(ctx, `SELECT MAX(version) FROM schema_migrations`).Scan(&version); err != nil {
		if err == sql.ErrNoRows {
			return 0, nil
		}
		return 0, fmt.Errorf("querying current version: %w", err)
	}
	if !version.Valid {
		return 0, nil
	}
	return int(version.Int64), nil
}

// applyMigration applies a single migration, one statement at a time.
// MySQL DDL autocommits, so a transaction would not make this atomic anyway;
// statements are idempotent (IF NOT EXISTS) to allow safe re-runs.
func (m *Migrator) applyMigration(ctx context.Context, migration Migration) error {
	for _, stmt := range splitStatements(migration.SQL) {
		if _, err := m.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("executing migration statement: %w", err)
		}
	}

	recordQuery := `
		INSERT INTO schema_migrations (version, applied_at)
		VALUES (?, ?)
		ON DUPLICATE KEY UPDATE applied_at = VALUES(applied_at)
	`
	if _, err := m.db.ExecContext(ctx, recordQuery, migration.Version, time.Now()); err != nil {
		return fmt.Errorf("recording migration version: %w", err)
	}
	return nil
}

// loadMigrations loads all migration files from the embedded filesystem.
// Filenames like "001_initial.sql" carry the version number.
func (m *Migrator) loadMigrations() ([]Migration, error) {
	entries, err := migrationFiles.ReadDir("migrations")
	if err != nil {
		return nil, fmt.Errorf("reading migrations directory: %w", err)
	}

	migrations := make([]Migration, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}

		parts := strings.SplitN(strings.TrimSuffix(entry.Name(), ".sql"), "_", 2)
		version, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, fmt.Errorf("parsing migration version from %s: %w", entry.Name(), err)
		}

		data, err := migrationFiles.ReadFile("migrations/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("reading migration %s: %w", entry.Name(), err)
		}

		name := ""
		if len(parts) > 1 {
			name = parts[1]
		}
		migrations = append(migrations, Migration{
			Version: version,
			Name:    name,
			SQL:     string(data),
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})
	return migrations, nil
}

// splitStatements breaks a migration file into individual statements.
func splitStatements(script string) []string {
	var statements []string
	for _, stmt := range strings.Split(script, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" || strings.HasPrefix(stmt, "--") && !strings.Contains(stmt, "\n") {
			continue
		}
		statements = append(statements, stmt)
	}
	return statements
}
