package sqlite

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/dfryer1193/postboard/shared/db"
	_ "modernc.org/sqlite"
)

const (
	// defaultName names the shared in-memory database
	defaultName = "postboard"
)

type SQLiteConfig struct {
	// Name identifies the in-memory database. Nothing is ever written to disk.
	Name string
}

func NewSQLiteConfig() *SQLiteConfig {
	name := os.Getenv("SQLITE_DB_NAME")
	if name == "" {
		name = defaultName
	}

	return &SQLiteConfig{
		Name: name,
	}
}

// DSN returns the data source name of the in-memory database.
func (c *SQLiteConfig) DSN() string {
	return fmt.Sprintf("file:%s?mode=memory&cache=shared", c.Name)
}

var _ db.Database = (*SQLiteDB)(nil)

// SQLiteDB implements the db.Database interface for an in-memory SQLite database
type SQLiteDB struct {
	dsn string
	db  *sql.DB
}

// NewSQLiteDB creates a new SQLite database instance.
// The database lives as long as its connection; Close discards all data.
func NewSQLiteDB(cfg *SQLiteConfig) *SQLiteDB {
	return &SQLiteDB{
		dsn: cfg.DSN(),
	}
}

// Connect opens the in-memory database and applies the schema
func (s *SQLiteDB) Connect() error {
	if s.db != nil {
		return fmt.Errorf("database already connected")
	}

	conn, err := sql.Open("sqlite", s.dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// An in-memory database disappears with its last connection, and a single
	// connection also serializes every statement issued against it.
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(0)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	pragmas := []string{
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}

	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return fmt.Errorf("failed to set pragma %q: %w", pragma, err)
		}
	}

	if err := createSchema(conn); err != nil {
		conn.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}

	s.db = conn
	return nil
}

// Close closes the database connection
func (s *SQLiteDB) Close() error {
	if s.db == nil {
		return nil
	}

	err := s.db.Close()
	s.db = nil
	return err
}

// DB returns the underlying *sql.DB instance
func (s *SQLiteDB) DB() *sql.DB {
	return s.db
}
