package storage

import "database/sql"

// SetOpenDB swaps the sql opener for storage_test and returns a restore func.
// This file only compiles during `go test`.
func SetOpenDB(fn func(driver, dsn string) (*sql.DB, error)) func() {
	prev := openDB
	openDB = fn
	return func() { openDB = prev }
}
