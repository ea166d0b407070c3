package database

import (
	"database/sql"
	"fmt"
)

// initDownloadsTable initializes the per-entry downloads ledger.
func initDownloadsTable(tx *sql.Tx) error {
	query := `
    CREATE TABLE IF NOT EXISTS downloads (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        run_id TEXT NOT NULL,
        entry_index INTEGER NOT NULL,
        url TEXT,
        title TEXT,
        status TEXT NOT NULL CHECK(status IN ('pending', 'active', 'done', 'failed', 'cancelled')),
        percent REAL DEFAULT 0,
        error TEXT,
        created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
        updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
    );
    CREATE UNIQUE INDEX IF NOT EXISTS idx_downloads_run_entry ON downloads(run_id, entry_index);
    CREATE INDEX IF NOT EXISTS idx_downloads_status ON downloads(status);
    CREATE INDEX IF NOT EXISTS idx_downloads_updated_at ON downloads(updated_at);
    `
	if _, err := tx.Exec(query); err != nil {
		return fmt.Errorf("failed to create downloads table: %w", err)
	}
	return nil
}
