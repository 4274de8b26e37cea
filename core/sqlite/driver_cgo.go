//go:build cgo_sqlite

// Build with: go build -tags "cgo_sqlite sqlite_fts5"
// Requires: CGO_ENABLED=1
package sqlite

import (
	_ "github.com/mattn/go-sqlite3" // CGO SQLite driver
)

const (
	driverName = "sqlite3"
	driverType = "cgo"
)
