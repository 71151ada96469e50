package db

import (
	"database/sql"
)

// Database owns a *sql.DB from Connect to Close.
// The SQLite implementation is memory backed, so Close also discards every
// row written through DB.
type Database interface {
	Connect() error
	Close() error
	DB() *sql.DB
}
