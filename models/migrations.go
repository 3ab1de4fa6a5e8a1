package models

import (
	"database/sql"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
)

// migrateDB creates the tables the notes store needs.
// Every statement is idempotent so it is safe to run on each start.
func migrateDB(handle *sql.DB) error {
	if _, err := handle.Exec(CreateUsersTableSQL); err != nil {
		return serr.Wrap(err, "failed to create users table")
	}

	if _, err := handle.Exec(CreateNotesTableSQL); err != nil {
		return serr.Wrap(err, "failed to create notes table")
	}

	// Databases created before content encryption lack the IV column
	if _, err := handle.Exec("ALTER TABLE notes ADD COLUMN IF NOT EXISTS content_iv VARCHAR"); err != nil {
		return serr.Wrap(err, "failed to add content_iv column")
	}

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_notes_user ON notes(user_guid)",
		"CREATE INDEX IF NOT EXISTS idx_notes_created ON notes(created_at)",
	}

	for _, indexSQL := range indexes {
		if _, err := handle.Exec(indexSQL); err != nil {
			logger.LogErr(err, "failed to create index", "sql", indexSQL)
			// Continue with other indexes even if one fails
		}
	}

	logger.Debug("Database migration completed")
	return nil
}
