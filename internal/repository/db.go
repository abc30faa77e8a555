// Package repository persists imported rides in SQLite.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS rides (
	id             TEXT PRIMARY KEY,
	driver_id      TEXT NOT NULL,
	external_id    TEXT NOT NULL,
	source_ref     TEXT NOT NULL DEFAULT '',
	ride_date      TEXT NOT NULL DEFAULT '',
	ride_time      TEXT NOT NULL DEFAULT '',
	passenger      TEXT NOT NULL DEFAULT '',
	destination    TEXT NOT NULL DEFAULT '',
	status         TEXT NOT NULL,
	payment_method TEXT NOT NULL,
	fare           REAL NOT NULL DEFAULT 0,
	total_received REAL NOT NULL DEFAULT 0,
	commission     REAL NOT NULL DEFAULT 0,
	commission_pct REAL NOT NULL DEFAULT 0,
	tax            REAL NOT NULL DEFAULT 0,
	total_paid     REAL NOT NULL DEFAULT 0,
	net_income     REAL NOT NULL DEFAULT 0,
	confidence     REAL NOT NULL DEFAULT 0,
	imported_at    TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_rides_driver ON rides (driver_id);
`

// Open connects to the SQLite database at dsn and ensures the schema exists.
// Use ":memory:" for an ephemeral store in tests.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One connection keeps writes serialized and makes ":memory:" behave:
	// each pooled connection would otherwise see its own empty database.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return db, nil
}
