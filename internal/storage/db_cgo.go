//go:build cgo_sqlite

package storage

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

func open(path string) (*sql.DB, error) {
	return sql.Open("sqlite3", "file:"+path+"?_foreign_keys=on&_busy_timeout=5000")
}
