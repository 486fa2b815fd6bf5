package database

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestOpen(t *testing.T) {
	t.Run("creates file and nested directory", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "data", "nested", "locations.db")

		db, err := Open(context.Background(), Config{Path: dbPath, WALMode: true, BusyTimeout: 5})
		if err != nil {
			t.Fatalf("Open() error = %v", err)
		}
		defer db.Close() //nolint:errcheck // Test cleanup

		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			t.Error("database file was not created")
		}
		if db.Path() != dbPath {
			t.Errorf("Path() = %v, want %v", db.Path(), dbPath)
		}
		if got := db.Stats().MaxOpenConnections; got != maxFileConns {
			t.Errorf("MaxOpenConnections = %d, want %d", got, maxFileConns)
		}
	})

	t.Run("in-memory database", func(t *testing.T) {
		db, err := Open(context.Background(), Config{Path: MemoryPath, BusyTimeout: 1})
		if err != nil {
			t.Fatalf("Open(:memory:) error = %v", err)
		}
		defer db.Close() //nolint:errcheck // Test cleanup

		if db.Stats().MaxOpenConnections != 1 {
			t.Errorf("MaxOpenConnections = %d, want 1", db.Stats().MaxOpenConnections)
		}
	})

	t.Run("empty path rejected", func(t *testing.T) {
		if _, err := Open(context.Background(), Config{}); err == nil {
			t.Error("Open() with empty path should fail")
		}
	})
}

func TestBuildDSN(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		inMemory bool
		contains []string
		excludes []string
	}{
		{
			name:     "file with WAL",
			cfg:      Config{Path: "/tmp/x.db", WALMode: true, BusyTimeout: 5},
			contains: []string{"file:/tmp/x.db?", "_busy_timeout=5000", "_foreign_keys=on", "_txlock=immediate", "_journal_mode=WAL"},
		},
		{
			name:     "file without WAL",
			cfg:      Config{Path: "/tmp/x.db", BusyTimeout: 2},
			contains: []string{"_busy_timeout=2000", "_foreign_keys=on"},
			excludes: []string{"_journal_mode"},
		},
		{
			name:     "memory ignores WAL",
			cfg:      Config{Path: MemoryPath, WALMode: true},
			inMemory: true,
			contains: []string{"file::memory:?", "_foreign_keys=on"},
			excludes: []string{"_journal_mode", "_txlock"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dsn := buildDSN(tt.cfg, tt.inMemory)
			for _, want := range tt.contains {
				if !strings.Contains(dsn, want) {
					t.Errorf("dsn %q missing %q", dsn, want)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(dsn, unwanted) {
					t.Errorf("dsn %q should not contain %q", dsn, unwanted)
				}
			}
		})
	}
}

func TestForeignKeysEnforced(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	if _, err := db.ExecContext(ctx, `
		CREATE TABLE parents (id INTEGER PRIMARY KEY);
		CREATE TABLE children (id INTEGER PRIMARY KEY, parent_id INTEGER NOT NULL REFERENCES parents(id));
	`); err != nil {
		t.Fatalf("creating tables: %v", err)
	}

	if _, err := db.ExecContext(ctx, "INSERT INTO children (parent_id) VALUES (?)", 42); err == nil {
		t.Error("insert referencing a missing parent should fail")
	}
}

func TestHealthCheck(t *testing.T) {
	db := openTestDB(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.HealthCheck(ctx); err != nil {
		t.Errorf("HealthCheck() error = %v", err)
	}

	db.Close() //nolint:errcheck // Closing to force failure
	if err := db.HealthCheck(ctx); err == nil {
		t.Error("HealthCheck() on closed database should fail")
	}
}

func TestClose(t *testing.T) {
	db := openTestDB(t)

	if err := db.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}

	db.DB = nil
	if err := db.Close(); err != nil {
		t.Errorf("Close() on nil DB error = %v", err)
	}
}

func TestWithTx(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	if _, err := db.ExecContext(ctx, "CREATE TABLE tx_test (id INTEGER PRIMARY KEY, value TEXT)"); err != nil {
		t.Fatalf("CREATE TABLE error = %v", err)
	}

	t.Run("commits on success", func(t *testing.T) {
		err := db.WithTx(ctx, func(tx *sql.Tx) error {
			_, err := tx.ExecContext(ctx, "INSERT INTO tx_test (value) VALUES (?)", "committed")
			return err
		})
		if err != nil {
			t.Fatalf("WithTx() error = %v", err)
		}
		if got := countRows(t, db, "committed"); got != 1 {
			t.Errorf("expected 1 committed row, got %d", got)
		}
	})

	t.Run("rolls back on error", func(t *testing.T) {
		boom := errors.New("boom")
		err := db.WithTx(ctx, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, "INSERT INTO tx_test (value) VALUES (?)", "rolled_back"); err != nil {
				return err
			}
			return boom
		})
		if !errors.Is(err, boom) {
			t.Fatalf("WithTx() error = %v, want %v", err, boom)
		}
		if got := countRows(t, db, "rolled_back"); got != 0 {
			t.Errorf("expected 0 rolled back rows, got %d", got)
		}
	})
}

func TestConcurrentReaders(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	// Hold one connection with an open cursor.
	rows, err := db.QueryContext(ctx, "SELECT 1 UNION ALL SELECT 2")
	if err != nil {
		t.Fatalf("QueryContext() error = %v", err)
	}
	defer rows.Close()
	if !rows.Next() {
		t.Fatal("expected a row from the open cursor")
	}

	// A second reader must get its own connection instead of waiting.
	readCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	var n int
	if err := db.QueryRowContext(readCtx, "SELECT 42").Scan(&n); err != nil {
		t.Fatalf("second reader blocked behind the open cursor: %v", err)
	}
	if n != 42 {
		t.Errorf("second reader got %d, want 42", n)
	}
}

func countRows(t *testing.T, db *DB, value string) int {
	t.Helper()
	var count int
	if err := db.QueryRowContext(context.Background(),
		"SELECT COUNT(*) FROM tx_test WHERE value = ?", value).Scan(&count); err != nil {
		t.Fatalf("SELECT error = %v", err)
	}
	return count
}

// openTestDB creates a temporary file-backed database for testing.
func openTestDB(t *testing.T) *DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := Open(context.Background(), Config{
		Path:        dbPath,
		WALMode:     true,
		BusyTimeout: 5,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() }) //nolint:errcheck // Test cleanup

	return db
}
