//go:build !sqlite_cgo

package storage

// This file is compiled by default. It uses the pure Go SQLite
// implementation, so no C compiler is needed.
//
// Driver used: modernc.org/sqlite

import (
	"errors"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const (
	// DriverName is the SQLite driver to use
	DriverName = "sqlite"

	// BuildMode describes the current build configuration
	BuildMode = "purego"
)

// dataSourceName appends the pragmas every pooled connection needs
func dataSourceName(path string) string {
	return path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

func constraintOf(err error) constraint {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return constraintNone
	}
	switch sqliteErr.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return constraintUnique
	case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		return constraintForeignKey
	default:
		return constraintNone
	}
}
