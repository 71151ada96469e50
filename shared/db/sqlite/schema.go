package sqlite

import (
	"database/sql"
	"fmt"
)

// schemaStep is a single DDL statement group applied on connect
type schemaStep struct {
	name string
	up   string
}

// The database never outlives the process, so the schema is applied in full
// on every connect and there is no version bookkeeping.
var schema = []schemaStep{
	{
		name: "create_posts_table",
		// seq records insertion order; id is the client-visible identifier and
		// may be handed out again once the highest post is deleted.
		up: `
			CREATE TABLE IF NOT EXISTS posts (
				seq INTEGER PRIMARY KEY AUTOINCREMENT,
				id INTEGER NOT NULL UNIQUE,
				title TEXT NOT NULL,
				content TEXT NOT NULL
			);
		`,
	},
}

func createSchema(conn *sql.DB) error {
	tx, err := conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin schema transaction: %w", err)
	}

	for _, step := range schema {
		if _, err := tx.Exec(step.up); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to execute schema step %s: %w", step.name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit schema: %w", err)
	}

	return nil
}
