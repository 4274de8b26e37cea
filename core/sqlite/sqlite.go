// Package sqlite opens SQLite databases through either the pure Go
// (modernc.org/sqlite) or the CGO (mattn/go-sqlite3) driver.
//
// Build modes:
//   - Default (CGO_ENABLED=0): Uses pure Go modernc.org/sqlite
//   - CGO mode (CGO_ENABLED=1 -tags "cgo_sqlite sqlite_fts5"): Uses mattn/go-sqlite3
//
// The phrase index needs FTS5. modernc ships it; mattn only compiles it in
// with the sqlite_fts5 tag.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

// DriverName returns the SQL driver name to use.
func DriverName() string {
	return driverName
}

// DriverType returns "cgo" for mattn/go-sqlite3, "purego" for modernc.org/sqlite.
func DriverType() string {
	return driverType
}

// IsCGO returns true if the CGO implementation is being used.
func IsCGO() bool {
	return driverType == "cgo"
}

// Open opens a SQLite database with the linked driver. Use it instead of
// sql.Open.
func Open(dataSourceName string) (*sql.DB, error) {
	return sql.Open(driverName, dataSourceName)
}

// OpenReadOnly opens an existing database file in read-only mode.
func OpenReadOnly(path string) (*sql.DB, error) {
	return Open("file:" + path + "?mode=ro")
}

// HasFTS5 reports whether the linked SQLite was compiled with FTS5.
func HasFTS5(ctx context.Context, db *sql.DB) (bool, error) {
	var used int
	if err := db.QueryRowContext(ctx, `SELECT sqlite_compileoption_used('ENABLE_FTS5')`).Scan(&used); err != nil {
		return false, fmt.Errorf("checking fts5: %w", err)
	}
	return used == 1, nil
}

// FTS5Hint explains how to get FTS5 with the linked driver.
func FTS5Hint() string {
	if IsCGO() {
		return "rebuild with -tags \"cgo_sqlite sqlite_fts5\""
	}
	return "the linked SQLite lacks FTS5"
}
