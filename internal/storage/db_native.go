//go:build !cgo_sqlite

package storage

import (
	"database/sql"

	_ "modernc.org/sqlite"
)

func open(path string) (*sql.DB, error) {
	return sql.Open("sqlite", "file:"+path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
}
