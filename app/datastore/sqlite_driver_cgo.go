//go:build !native_sqlite

package datastore

import (
	_ "github.com/mattn/go-sqlite3"
)

const SQLiteDriverName = "sqlite3"
