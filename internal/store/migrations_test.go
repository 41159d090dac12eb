package store

import (
	"database/sql"
	"path/filepath"
	"testing"
)

func openRaw(t *testing.T, path string) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open raw db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRunMigrationsFromScratch(t *testing.T) {
	db := openRaw(t, filepath.Join(t.TempDir(), "fresh.db"))

	if err := runMigrations(db); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	version, err := currentVersion(db)
	if err != nil {
		t.Fatalf("current version: %v", err)
	}
	if version != migrations[len(migrations)-1].Version {
		t.Fatalf("expected version %d, got %d", migrations[len(migrations)-1].Version, version)
	}

	// Re-running is a no-op.
	if err := runMigrations(db); err != nil {
		t.Fatalf("second run: %v", err)
	}
}

func TestDetectPreMigrationDB(t *testing.T) {
	db := openRaw(t, filepath.Join(t.TempDir(), "legacy.db"))

	// A schema created before the migration framework: the projects table
	// exists but schema_migrations does not.
	if _, err := db.Exec("CREATE TABLE projects (id TEXT PRIMARY KEY)"); err != nil {
		t.Fatalf("create legacy table: %v", err)
	}

	pre, err := detectPreMigrationDB(db)
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if !pre {
		t.Fatal("expected legacy schema to be detected")
	}

	if err := runMigrations(db); err != nil {
		t.Fatalf("migrate legacy db: %v", err)
	}

	// Migration 1 is stamped rather than re-applied; later migrations run.
	version, err := currentVersion(db)
	if err != nil {
		t.Fatalf("current version: %v", err)
	}
	if version != migrations[len(migrations)-1].Version {
		t.Fatalf("expected version %d after stamping, got %d", migrations[len(migrations)-1].Version, version)
	}
}

func TestMigrationPlanReportsPending(t *testing.T) {
	db := openRaw(t, filepath.Join(t.TempDir(), "plan.db"))

	plan, err := MigrationPlan(db)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if plan.CurrentVersion != 0 {
		t.Fatalf("expected version 0 on empty db, got %d", plan.CurrentVersion)
	}
	if len(plan.Pending) != len(migrations) {
		t.Fatalf("expected %d pending migrations, got %d", len(migrations), len(plan.Pending))
	}

	if err := runMigrations(db); err != nil {
		t.Fatalf("run: %v", err)
	}

	plan, err = MigrationPlan(db)
	if err != nil {
		t.Fatalf("plan after run: %v", err)
	}
	if len(plan.Pending) != 0 {
		t.Fatalf("expected no pending migrations, got %d", len(plan.Pending))
	}
}
