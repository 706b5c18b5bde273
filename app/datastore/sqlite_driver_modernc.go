//go:build native_sqlite

package datastore

import (
	_ "modernc.org/sqlite"
)

const SQLiteDriverName = "sqlite"
