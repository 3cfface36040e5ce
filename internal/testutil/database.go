package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // Test Package
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db := openMemoryDB(t)

	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	return db
}

// SetupTestHistoryDB creates an in-memory history cache database for testing.
func SetupTestHistoryDB(t *testing.T) *sql.DB {
	t.Helper()

	db := openMemoryDB(t)

	schema := `
		CREATE TABLE history_points (
			scope_type TEXT NOT NULL,
			scope_id   TEXT NOT NULL,
			date       DATE NOT NULL,
			close      FLOAT NOT NULL,
			pnl        FLOAT NOT NULL,
			mtm        FLOAT NOT NULL,
			cash_gic   FLOAT NOT NULL,
			PRIMARY KEY (scope_type, scope_id, date)
		)`
	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("Failed to create history cache schema: %v", err)
	}

	return db
}

func openMemoryDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestSchema creates all database tables for testing.
// Schema is synchronized with the production migrations.
func createTestSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE accounts (
		id VARCHAR(36) NOT NULL PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		base_currency VARCHAR(10) NOT NULL DEFAULT 'CAD',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE positions (
		id VARCHAR(36) NOT NULL PRIMARY KEY,
		account_id VARCHAR(36) NOT NULL,
		symbol VARCHAR(20) NOT NULL,
		category VARCHAR(10) NOT NULL,
		quantity FLOAT NOT NULL,
		cost_per_unit FLOAT NOT NULL,
		currency VARCHAR(10) NOT NULL DEFAULT 'USD',
		date_added DATE NOT NULL,
		yield_rate FLOAT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY(account_id) REFERENCES accounts(id) ON DELETE CASCADE
	);

	CREATE INDEX idx_positions_account ON positions(account_id);
	CREATE INDEX idx_positions_symbol ON positions(symbol);

	CREATE TABLE market_data (
		id VARCHAR(36) NOT NULL PRIMARY KEY,
		symbol VARCHAR(20) NOT NULL,
		last_price FLOAT,
		pe_ratio FLOAT,
		change_percent FLOAT,
		beta FLOAT,
		long_name VARCHAR(200) NOT NULL DEFAULT '',
		timestamp DATETIME NOT NULL
	);

	CREATE INDEX idx_market_data_symbol ON market_data(symbol);

	CREATE TABLE fx_rates (
		id VARCHAR(36) NOT NULL PRIMARY KEY,
		pair VARCHAR(20) NOT NULL,
		rate FLOAT NOT NULL,
		timestamp DATETIME NOT NULL
	);

	CREATE INDEX idx_fx_rates_pair ON fx_rates(pair);

	CREATE TABLE sector_mappings (
		symbol VARCHAR(20) NOT NULL PRIMARY KEY,
		sector VARCHAR(100) NOT NULL DEFAULT 'Unspecified'
	);

	CREATE TABLE industry_mappings (
		symbol VARCHAR(20) NOT NULL PRIMARY KEY,
		industry VARCHAR(100) NOT NULL DEFAULT 'Unspecified'
	);

	CREATE TABLE settings (
		key VARCHAR(100) NOT NULL PRIMARY KEY,
		value VARCHAR(500) NOT NULL
	);
	`

	_, err := db.Exec(schema)
	return err
}
