//go:build sqlite_cgo

package storage

// This file is compiled when building with CGO and the sqlite_cgo tag.
//
// Build command:
//   CGO_ENABLED=1 go build -tags "sqlite_cgo" ./...
//
// Driver used: github.com/mattn/go-sqlite3

import (
	"errors"

	"github.com/mattn/go-sqlite3"
)

const (
	// DriverName is the SQLite driver to use
	DriverName = "sqlite3"

	// BuildMode describes the current build configuration
	BuildMode = "cgo"
)

// dataSourceName appends the pragmas every pooled connection needs
func dataSourceName(path string) string {
	return path + "?_foreign_keys=on&_busy_timeout=5000"
}

func constraintOf(err error) constraint {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return constraintNone
	}
	switch sqliteErr.ExtendedCode {
	case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
		return constraintUnique
	case sqlite3.ErrConstraintForeignKey:
		return constraintForeignKey
	default:
		return constraintNone
	}
}
